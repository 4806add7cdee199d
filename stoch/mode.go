package stoch

import "fmt"

// SampleMode selects how a registered item resolves a sample request.
type SampleMode int

const (
	// ModeNormal draws a real variate from the run's Sampler.
	ModeNormal SampleMode = iota

	// ModeCollapseMid substitutes a deterministic representative value
	// (mean, midpoint ordinal, ...) without touching the Sampler. Used for
	// reproducible mean-path runs in debugging and sensitivity analysis.
	ModeCollapseMid
)

// Mode tokens as they appear in override configuration files.
const (
	tokenNormal      = "NORMAL"
	tokenCollapseMid = "COLLAPSE_MID"
)

// ParseSampleMode converts an override-file token into a SampleMode.
func ParseSampleMode(token string) (SampleMode, error) {
	switch token {
	case tokenNormal:
		return ModeNormal, nil
	case tokenCollapseMid:
		return ModeCollapseMid, nil
	default:
		return ModeNormal, fmt.Errorf("%w: unknown sample mode token %q", ErrInvalidParam, token)
	}
}

// String returns the configuration token for the mode.
func (m SampleMode) String() string {
	switch m {
	case ModeNormal:
		return tokenNormal
	case ModeCollapseMid:
		return tokenCollapseMid
	default:
		return fmt.Sprintf("SampleMode(%d)", int(m))
	}
}
