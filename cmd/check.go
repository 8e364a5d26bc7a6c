package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"truthcheck.dev/pkg/truthcheck/internal/domain"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

var (
	thresholdFlag       float64
	applyFixFlag        bool
	passIfFixedFlag     bool
	openReportFlag      bool
	sessionLayerFlag    string
	rendererFlag        string
	widthFlag           int
	cameraFlag          string
	colorCorrectionFlag string
	complexityFlag      string
	formatFlag          string
)

const checkLongDescription = `Render REVIEW and FINAL with usdrecord, score them with SSIM and diff their
scenegraphs (material binding, visibility, variant selections per imageable
prim). With --apply-fix, differences are restated from REVIEW in an override
layer that is stacked over the session layer and FINAL is rendered again.

Exit codes: 0 pass, 1 fail, 2 render failure, 3 stage load failure,
4 artifact write failure, 64 usage error.`

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check REVIEW FINAL",
		Short: "Compare a final USD stage against its approved review",
		Long:  checkLongDescription,
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkArgs, err := checkArgsFromConfig(args[0], args[1])
			if err != nil {
				return err
			}

			report, err := checker.Check(cmd.Context(), checkArgs)
			if err != nil {
				return err
			}

			if !report.Verdict.Passed {
				return errVerdictFailed
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func configureCheckFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.Float64Var(&thresholdFlag, thresholdFlagName, viper.GetFloat64(thresholdKey), "minimum SSIM for a pass")
	bindFlagToConfig(flags.Lookup(thresholdFlagName), thresholdKey)

	flags.BoolVar(&applyFixFlag, applyFixFlagName, viper.GetBool(applyFixKey), "author a fix layer for FINAL and re-render")
	bindFlagToConfig(flags.Lookup(applyFixFlagName), applyFixKey)

	flags.BoolVar(&passIfFixedFlag, passIfFixedFlagName, viper.GetBool(passIfFixedKey), "pass when the fixed render meets the threshold")
	bindFlagToConfig(flags.Lookup(passIfFixedFlagName), passIfFixedKey)

	flags.BoolVar(&openReportFlag, openReportFlagName, viper.GetBool(openReportKey), "open the HTML report when done")
	bindFlagToConfig(flags.Lookup(openReportFlagName), openReportKey)

	flags.StringVar(&sessionLayerFlag, sessionLayerFlagName, viper.GetString(sessionLayerKey), "session layer applied to every render (e.g. a camera override)")
	bindFlagToConfig(flags.Lookup(sessionLayerFlagName), sessionLayerKey)

	flags.StringVar(&rendererFlag, rendererFlagName, viper.GetString(rendererKey), "usdrecord --renderer")
	bindFlagToConfig(flags.Lookup(rendererFlagName), rendererKey)

	flags.IntVar(&widthFlag, widthFlagName, viper.GetInt(widthKey), "usdrecord --imageWidth")
	bindFlagToConfig(flags.Lookup(widthFlagName), widthKey)

	flags.StringVar(&cameraFlag, cameraFlagName, viper.GetString(cameraKey), "camera prim path")
	bindFlagToConfig(flags.Lookup(cameraFlagName), cameraKey)

	flags.StringVar(&colorCorrectionFlag, colorCorrectionFlagName, viper.GetString(colorCorrectionKey), "usdrecord --colorCorrectionMode (sRGB|disabled|openColorIO)")
	bindFlagToConfig(flags.Lookup(colorCorrectionFlagName), colorCorrectionKey)

	flags.StringVar(&complexityFlag, complexityFlagName, viper.GetString(complexityKey), "usdrecord --complexity (low|medium|high|veryhigh)")
	bindFlagToConfig(flags.Lookup(complexityFlagName), complexityKey)

	flags.StringVar(&formatFlag, formatFlagName, viper.GetString(reportFormatKey), "structured report format (json|yaml)")
	bindFlagToConfig(flags.Lookup(formatFlagName), reportFormatKey)
}

func checkArgsFromConfig(review, final string) (domain.CheckArgs, error) {
	threshold := viper.GetFloat64(thresholdKey)
	if threshold < 0 || threshold > 1 {
		return domain.CheckArgs{}, &usageError{err: fmt.Errorf("threshold %v outside [0, 1]", threshold)}
	}

	width := viper.GetInt(widthKey)
	if width <= 0 {
		return domain.CheckArgs{}, &usageError{err: fmt.Errorf("width must be positive, got %d", width)}
	}

	format := m.ReportFormat(viper.GetString(reportFormatKey))
	if format != m.ReportJSON && format != m.ReportYAML {
		return domain.CheckArgs{}, &usageError{err: fmt.Errorf("unknown report format %q", format)}
	}

	return domain.CheckArgs{
		Review:       m.Path(review),
		Final:        m.Path(final),
		SessionLayer: m.Path(viper.GetString(sessionLayerKey)),
		Workspace:    m.NewWorkspace(m.Path(viper.GetString(outputFlagName))),
		Render: m.RenderParams{
			Renderer:        viper.GetString(rendererKey),
			Width:           width,
			Camera:          viper.GetString(cameraKey),
			ColorCorrection: viper.GetString(colorCorrectionKey),
			Complexity:      viper.GetString(complexityKey),
		},
		Threshold:    threshold,
		ApplyFix:     viper.GetBool(applyFixKey),
		PassIfFixed:  viper.GetBool(passIfFixedKey),
		OpenReport:   viper.GetBool(openReportKey),
		ReportFormat: format,
	}, nil
}
