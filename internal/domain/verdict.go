package domain

import (
	"math"
	"strings"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// VerdictArgs are the inputs of a verdict decision.
type VerdictArgs struct {
	RawScore    float64
	DiffCount   int
	FixedScore  *float64
	Threshold   float64
	PassIfFixed bool
}

// FixedOK reports whether a fixed render exists and meets the threshold.
func (a VerdictArgs) FixedOK() bool {
	return a.FixedScore != nil && !math.IsNaN(*a.FixedScore) && *a.FixedScore >= a.Threshold
}

// Decide computes the verdict from its inputs alone.
//
// A low raw similarity fails regardless of the diff count and so does any
// structural difference. Only the pass-if-fixed policy with a fixed render
// at or above the threshold flips a failure.
func Decide(args VerdictArgs) m.Verdict {
	lowScore := math.IsNaN(args.RawScore) || args.RawScore < args.Threshold
	hasDiffs := args.DiffCount > 0

	verdict := m.Verdict{
		Passed:   !lowScore && !hasDiffs,
		Status:   m.Pass,
		RawScore: args.RawScore,
	}

	if args.FixedScore != nil {
		fixed := *args.FixedScore
		verdict.FixedScore = &fixed
	}

	var reasons []string
	if lowScore {
		reasons = append(reasons, "similarity below threshold")
	}

	if hasDiffs {
		reasons = append(reasons, "scene differences")
	}

	switch {
	case args.PassIfFixed && args.FixedOK():
		verdict.Passed = true
		verdict.Status = m.PassFixed
		verdict.Reason = "fixed render meets threshold"
	case !verdict.Passed:
		verdict.Status = m.Fail
		verdict.Reason = strings.Join(reasons, " and ")
	default:
		verdict.Reason = "similarity meets threshold and no scene differences"
	}

	return verdict
}
