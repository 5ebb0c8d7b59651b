package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ohare93/onboard/internal/roster"
)

const analysisSystemPrompt = `You are a senior HR strategy consultant. Reply with a single JSON object with exactly these string fields: "talentSummary", "strategicFit", "onboardingAdvice". No prose outside the JSON.`

const marketSystemPrompt = `You are the company's Chief Human Resources Officer. Write in a professional, forward-looking tone.`

// AnalysisPrompt builds the per-record prompt
func AnalysisPrompt(e roster.Employee) string {
	data, _ := json.Marshal(e)

	notes := e.Notes
	if notes == "" {
		notes = "no notes yet"
	}

	var b strings.Builder
	b.WriteString("Produce an in-depth potential analysis of the following employee.\n\n")
	fmt.Fprintf(&b, "Employee record: %s\n\n", data)
	fmt.Fprintf(&b, "Reviewer notes (weigh these heavily): %q\n\n", notes)
	b.WriteString("Provide:\n")
	fmt.Fprintf(&b, "1. talentSummary: combining MBTI (%s) and top skills (%s), describe their unique contribution to a team.\n",
		e.MBTI, strings.Join(e.TopSkills, ", "))
	fmt.Fprintf(&b, "2. strategicFit: the long-term fit of a %s in the %s department.\n", e.Position, e.Department)
	fmt.Fprintf(&b, "3. onboardingAdvice: concrete retention or training advice based on the notes and their expectations (%s).\n",
		e.Expectations)
	return b.String()
}

// MarketPrompt builds the roster-wide prompt
func MarketPrompt(employees []roster.Employee) string {
	data, _ := json.Marshal(employees)

	var b strings.Builder
	fmt.Fprintf(&b, "Analyse this talent pool: %s\n\n", data)
	b.WriteString("Goals:\n")
	b.WriteString("1. Team composition trends (for example MBTI preferences and language strengths).\n")
	b.WriteString("2. Using what reviewers wrote in \"notes\", point out organisational risks or opportunities.\n")
	b.WriteString("3. Recommend concrete talent development actions for the next quarter.\n")
	return b.String()
}

// parseInsight extracts an Insight from model output, tolerating code
// fences or text around the JSON object
func parseInsight(text string) (Insight, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return Insight{}, fmt.Errorf("no JSON object in response")
	}
	var insight Insight
	if err := json.Unmarshal([]byte(text[start:end+1]), &insight); err != nil {
		return Insight{}, fmt.Errorf("failed to parse insight: %w", err)
	}
	if !insight.Complete() {
		return Insight{}, fmt.Errorf("insight is missing fields")
	}
	return insight, nil
}
