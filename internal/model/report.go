package model

// RenderParams controls how the external renderer draws a stage.
type RenderParams struct {
	Renderer        string `json:"renderer" yaml:"renderer"`
	Width           int    `json:"width" yaml:"width"`
	Camera          string `json:"camera" yaml:"camera"`
	ColorCorrection string `json:"color_correction" yaml:"color_correction"`
	Complexity      string `json:"complexity" yaml:"complexity"`
}

// Report is the structured record of one check run.
type Report struct {
	RunID string `json:"run_id" yaml:"run_id"`

	ReviewStage Path `json:"review_stage" yaml:"review_stage"`
	FinalStage  Path `json:"final_stage" yaml:"final_stage"`

	ReviewImage Path `json:"review_img" yaml:"review_img"`
	FinalImage  Path `json:"final_img" yaml:"final_img"`
	DiffImage   Path `json:"diff_img" yaml:"diff_img"`

	Similarity        float64 `json:"ssim" yaml:"ssim"`
	RendererAvailable bool    `json:"usdrecord" yaml:"usdrecord"`
	SceneDiffs        DiffSet `json:"scene_diffs" yaml:"scene_diffs"`

	Render       RenderParams `json:"render" yaml:"render"`
	Threshold    float64      `json:"threshold" yaml:"threshold"`
	SessionLayer Path         `json:"session_layer,omitempty" yaml:"session_layer,omitempty"`

	FixedImage      Path     `json:"fixed_img,omitempty" yaml:"fixed_img,omitempty"`
	FixedDiffImage  Path     `json:"fixed_diff_img,omitempty" yaml:"fixed_diff_img,omitempty"`
	FixedSimilarity *float64 `json:"fixed_ssim,omitempty" yaml:"fixed_ssim,omitempty"`
	FixLayer        Path     `json:"fix_layer,omitempty" yaml:"fix_layer,omitempty"`
	Composition     Path     `json:"composition,omitempty" yaml:"composition,omitempty"`

	PassIfFixed bool    `json:"pass_if_fixed" yaml:"pass_if_fixed"`
	FixedOK     bool    `json:"fixed_ok" yaml:"fixed_ok"`
	Verdict     Verdict `json:"verdict" yaml:"verdict"`
}
