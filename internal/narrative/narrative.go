// Package narrative produces the display-only text shown on the review
// dashboard: a per-record insight and a roster-wide strategy summary.
// Callers use Resilient, which never returns an error: failures and
// timeouts degrade to fixed fallback text.
package narrative

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ohare93/onboard/internal/roster"
)

// ErrUnavailable is returned when no narrative backend is configured
var ErrUnavailable = errors.New("narrative generation unavailable")

// DefaultTimeout bounds a single narrative request
const DefaultTimeout = 60 * time.Second

// Insight is the per-record analysis
type Insight struct {
	TalentSummary    string `json:"talentSummary"`
	StrategicFit     string `json:"strategicFit"`
	OnboardingAdvice string `json:"onboardingAdvice"`
}

// Complete reports whether every field has text
func (i Insight) Complete() bool {
	return i.TalentSummary != "" && i.StrategicFit != "" && i.OnboardingAdvice != ""
}

// Collaborator is an external text-generation backend
type Collaborator interface {
	Analyze(ctx context.Context, e roster.Employee) (Insight, error)
	SummarizeMarket(ctx context.Context, employees []roster.Employee) (string, error)
}

// FallbackStrategy replaces a failed roster-wide summary
const FallbackStrategy = "Roster-wide strategic insight is unavailable right now."

// FallbackInsight replaces a failed per-record analysis
func FallbackInsight() Insight {
	return Insight{
		TalentSummary:    "Analysis could not be generated. Check the network or API settings.",
		StrategicFit:     "Waiting for the data to be recalculated...",
		OnboardingAdvice: "Refer to the internal standard talent development handbook.",
	}
}

// Resilient wraps a Collaborator with a timeout and fallback text
type Resilient struct {
	collab  Collaborator
	timeout time.Duration
	log     *slog.Logger
}

// WithFallback wraps c. A zero timeout uses DefaultTimeout; a nil logger
// uses slog.Default().
func WithFallback(c Collaborator, timeout time.Duration, log *slog.Logger) *Resilient {
	if c == nil {
		c = Offline{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resilient{collab: c, timeout: timeout, log: log}
}

// Analyze returns the insight for e, or the fallback insight. degraded is
// true when the fallback was used.
func (r *Resilient) Analyze(ctx context.Context, e roster.Employee) (insight Insight, degraded bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	insight, err := r.collab.Analyze(ctx, e)
	if err == nil && !insight.Complete() {
		err = errors.New("incomplete insight")
	}
	if err != nil {
		r.log.Warn("employee analysis failed", "email", e.Email, "err", err)
		return FallbackInsight(), true
	}
	return insight, false
}

// SummarizeMarket returns the roster-wide strategy, or the fallback sentence
func (r *Resilient) SummarizeMarket(ctx context.Context, employees []roster.Employee) (text string, degraded bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.collab.SummarizeMarket(ctx, employees)
	if err == nil && text == "" {
		err = errors.New("empty strategy")
	}
	if err != nil {
		r.log.Warn("market summary failed", "records", len(employees), "err", err)
		return FallbackStrategy, true
	}
	return text, false
}

// Offline is a Collaborator with no backend; every call fails
type Offline struct{}

// Analyze always fails
func (Offline) Analyze(context.Context, roster.Employee) (Insight, error) {
	return Insight{}, ErrUnavailable
}

// SummarizeMarket always fails
func (Offline) SummarizeMarket(context.Context, []roster.Employee) (string, error) {
	return "", ErrUnavailable
}
