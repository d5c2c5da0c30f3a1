package comments

import (
	"time"

	"github.com/iburimskiy/one137/internal/config"
)

// Policy sets the submission guards.
type Policy struct {
	// MinDwell is how long the form must be shown before a submission.
	MinDwell time.Duration
	// ResubmissionDelay keeps the submit control disabled after a success.
	ResubmissionDelay time.Duration
	// CooldownOnFailure also applies ResubmissionDelay after a failed POST.
	CooldownOnFailure bool
}

var (
	// StrictPolicy: 3s dwell, failures re-enable the form at once.
	StrictPolicy = Policy{MinDwell: 3 * time.Second, ResubmissionDelay: time.Second}
	// RelaxedPolicy: 2s dwell, failures wait out the cooldown too.
	RelaxedPolicy = Policy{MinDwell: 2 * time.Second, ResubmissionDelay: time.Second, CooldownOnFailure: true}
)

// PolicyFromConfig starts from the named policy and applies the non-zero
// overrides.
func PolicyFromConfig(cfg config.CommentsConfig) Policy {
	p := StrictPolicy
	if cfg.Policy == config.PolicyRelaxed {
		p = RelaxedPolicy
	}
	if cfg.MinDwell > 0 {
		p.MinDwell = cfg.MinDwell
	}
	if cfg.ResubmissionDelay > 0 {
		p.ResubmissionDelay = cfg.ResubmissionDelay
	}
	if cfg.CooldownOnFailure != nil {
		p.CooldownOnFailure = *cfg.CooldownOnFailure
	}
	return p
}

// TooSoon reports whether a submission at now comes before the dwell time of
// a form shown at shown.
func (p Policy) TooSoon(shown, now time.Time) bool {
	return now.Sub(shown) < p.MinDwell
}
