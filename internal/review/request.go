package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/ohare93/onboard/internal/narrative"
	"github.com/ohare93/onboard/internal/roster"
)

// Narrator produces narrative text without failing; narrative.Resilient
// satisfies it
type Narrator interface {
	Analyze(ctx context.Context, e roster.Employee) (narrative.Insight, bool)
	SummarizeMarket(ctx context.Context, employees []roster.Employee) (string, bool)
}

// AnalysisRequest asks for the insight of one record
type AnalysisRequest struct {
	Seq      int
	Employee roster.Employee
}

// AnalysisResult answers an AnalysisRequest
type AnalysisResult struct {
	Seq      int
	Email    string
	Insight  narrative.Insight
	Degraded bool
}

// Run blocks until the narrator answers
func (r AnalysisRequest) Run(ctx context.Context, n Narrator) AnalysisResult {
	insight, degraded := n.Analyze(ctx, r.Employee)
	return AnalysisResult{Seq: r.Seq, Email: r.Employee.Email, Insight: insight, Degraded: degraded}
}

// StrategyRequest asks for the roster-wide strategy
type StrategyRequest struct {
	Seq       int
	Employees []roster.Employee
}

// StrategyResult answers a StrategyRequest
type StrategyResult struct {
	Seq      int
	Text     string
	Degraded bool
}

// Run blocks until the narrator answers
func (r StrategyRequest) Run(ctx context.Context, n Narrator) StrategyResult {
	text, degraded := n.SummarizeMarket(ctx, r.Employees)
	return StrategyResult{Seq: r.Seq, Text: text, Degraded: degraded}
}

// FormatInsight renders an insight as plain text for the clipboard
func FormatInsight(name string, i narrative.Insight) string {
	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s\n\n", name)
	}
	fmt.Fprintf(&b, "Talent summary:\n%s\n\n", i.TalentSummary)
	fmt.Fprintf(&b, "Strategic fit:\n%s\n\n", i.StrategicFit)
	fmt.Fprintf(&b, "Onboarding advice:\n%s\n", i.OnboardingAdvice)
	return b.String()
}
