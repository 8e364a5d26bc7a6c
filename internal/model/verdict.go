package model

// VerdictStatus is the overall outcome label of a check.
type VerdictStatus int

const (
	// Fail means the final revision does not match the review revision.
	Fail VerdictStatus = iota
	// Pass means the revisions match without correction.
	Pass
	// PassFixed means the corrective layer brought the final render within threshold.
	PassFixed
)

func (s VerdictStatus) String() string {
	switch s {
	case Pass:
		return "PASS"
	case PassFixed:
		return "PASS (fixed)"
	case Fail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status label in reports.
func (s VerdictStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status label.
func (s *VerdictStatus) UnmarshalText(text []byte) error {
	for _, status := range []VerdictStatus{Fail, Pass, PassFixed} {
		if status.String() == string(text) {
			*s = status
			return nil
		}
	}

	*s = Fail

	return nil
}

// Verdict is the pass/fail decision for one check run.
type Verdict struct {
	Passed     bool          `json:"passed" yaml:"passed"`
	Status     VerdictStatus `json:"status" yaml:"status"`
	Reason     string        `json:"reason" yaml:"reason"`
	RawScore   float64       `json:"raw_score" yaml:"raw_score"`
	FixedScore *float64      `json:"fixed_score,omitempty" yaml:"fixed_score,omitempty"`
}
