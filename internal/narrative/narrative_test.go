package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/ohare93/onboard/internal/config"
	"github.com/ohare93/onboard/internal/roster"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCollaborator struct {
	insight  Insight
	strategy string
	err      error
	delay    time.Duration
	calls    int
}

func (f *fakeCollaborator) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeCollaborator) Analyze(ctx context.Context, _ roster.Employee) (Insight, error) {
	f.calls++
	if err := f.wait(ctx); err != nil {
		return Insight{}, err
	}
	return f.insight, f.err
}

func (f *fakeCollaborator) SummarizeMarket(ctx context.Context, _ []roster.Employee) (string, error) {
	f.calls++
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	return f.strategy, f.err
}

var sampleInsight = Insight{
	TalentSummary:    "Strong systems thinker",
	StrategicFit:     "Good long-term fit",
	OnboardingAdvice: "Pair with a mentor",
}

func TestResilientPassesThroughSuccess(t *testing.T) {
	fake := &fakeCollaborator{insight: sampleInsight, strategy: "Grow the platform team"}
	r := WithFallback(fake, time.Second, quietLogger())

	got, degraded := r.Analyze(context.Background(), roster.DefaultEmployees()[0])
	if degraded {
		t.Fatal("expected live insight")
	}
	if got != sampleInsight {
		t.Errorf("insight = %+v", got)
	}

	text, degraded := r.SummarizeMarket(context.Background(), roster.DefaultEmployees())
	if degraded || text != "Grow the platform team" {
		t.Errorf("strategy = %q, degraded = %v", text, degraded)
	}
}

func TestResilientFallsBackOnError(t *testing.T) {
	fake := &fakeCollaborator{err: errors.New("boom")}
	r := WithFallback(fake, time.Second, quietLogger())

	got, degraded := r.Analyze(context.Background(), roster.DefaultEmployees()[0])
	if !degraded {
		t.Fatal("expected degraded insight")
	}
	if got != FallbackInsight() {
		t.Errorf("insight = %+v, want fallback", got)
	}

	text, degraded := r.SummarizeMarket(context.Background(), nil)
	if !degraded || text != FallbackStrategy {
		t.Errorf("strategy = %q, degraded = %v", text, degraded)
	}
}

func TestResilientFallsBackOnIncompleteResult(t *testing.T) {
	fake := &fakeCollaborator{insight: Insight{TalentSummary: "only one"}, strategy: ""}
	r := WithFallback(fake, time.Second, quietLogger())

	if _, degraded := r.Analyze(context.Background(), roster.Employee{}); !degraded {
		t.Error("incomplete insight should degrade")
	}
	if _, degraded := r.SummarizeMarket(context.Background(), nil); !degraded {
		t.Error("empty strategy should degrade")
	}
}

func TestResilientTimesOut(t *testing.T) {
	fake := &fakeCollaborator{insight: sampleInsight, delay: 5 * time.Second}
	r := WithFallback(fake, 20*time.Millisecond, quietLogger())

	start := time.Now()
	got, degraded := r.Analyze(context.Background(), roster.Employee{})
	if !degraded || got != FallbackInsight() {
		t.Errorf("expected fallback after timeout, got %+v", got)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout was not applied")
	}
}

func TestWithFallbackNilIsOffline(t *testing.T) {
	r := WithFallback(nil, 0, nil)
	if r.timeout != DefaultTimeout {
		t.Errorf("timeout = %v", r.timeout)
	}
	if _, degraded := r.Analyze(context.Background(), roster.Employee{}); !degraded {
		t.Error("offline analysis should degrade")
	}
}

func TestParseInsight(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", `{"talentSummary":"a","strategicFit":"b","onboardingAdvice":"c"}`, false},
		{"fenced", "```json\n{\"talentSummary\":\"a\",\"strategicFit\":\"b\",\"onboardingAdvice\":\"c\"}\n```", false},
		{"missing field", `{"talentSummary":"a","strategicFit":"b"}`, true},
		{"no object", "sorry, I cannot help", true},
		{"broken", `{"talentSummary":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInsight(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (got.TalentSummary != "a" || got.OnboardingAdvice != "c") {
				t.Errorf("insight = %+v", got)
			}
		})
	}
}

func TestAnalysisPromptIncludesNotes(t *testing.T) {
	e := roster.DefaultEmployees()[0]
	e.Notes = "wants to lead the API team"
	prompt := AnalysisPrompt(e)
	if !strings.Contains(prompt, "wants to lead the API team") {
		t.Error("prompt should include reviewer notes")
	}
	if !strings.Contains(prompt, e.Department) {
		t.Error("prompt should include the department")
	}

	e.Notes = ""
	if !strings.Contains(AnalysisPrompt(e), "no notes yet") {
		t.Error("empty notes should be called out")
	}
}

func chatServer(t *testing.T, status int, content string) (*httptest.Server, http.Header) {
	t.Helper()
	captured := http.Header{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Set("Authorization", r.Header.Get("Authorization"))
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"bad key"}`))
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestOpenAIClientAnalyze(t *testing.T) {
	srv, headers := chatServer(t, http.StatusOK, `{"talentSummary":"a","strategicFit":"b","onboardingAdvice":"c"}`)
	c := NewOpenAIClient(OpenAIOpts{BaseURL: srv.URL + "/", APIKey: "sk-test"})

	got, err := c.Analyze(context.Background(), roster.DefaultEmployees()[0])
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.StrategicFit != "b" {
		t.Errorf("insight = %+v", got)
	}
	if auth := headers.Get("Authorization"); auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestOpenAIClientSummarizeMarket(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, "  Hire more designers.\n")
	c := NewOpenAIClient(OpenAIOpts{BaseURL: srv.URL, APIKey: "sk-test"})

	got, err := c.SummarizeMarket(context.Background(), roster.DefaultEmployees())
	if err != nil {
		t.Fatalf("SummarizeMarket: %v", err)
	}
	if got != "Hire more designers." {
		t.Errorf("strategy = %q", got)
	}
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	srv, _ := chatServer(t, http.StatusUnauthorized, "")
	c := NewOpenAIClient(OpenAIOpts{BaseURL: srv.URL, APIKey: "sk-bad"})

	_, err := c.SummarizeMarket(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("err = %v, want 401", err)
	}
}

func TestOpenAIClientWithoutKey(t *testing.T) {
	c := NewOpenAIClient(OpenAIOpts{BaseURL: "http://127.0.0.1:1"})
	if c.HasAPIKey() {
		t.Fatal("expected no key")
	}
	_, err := c.Analyze(context.Background(), roster.Employee{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestKeyGate(t *testing.T) {
	c := NewOpenAIClient(OpenAIOpts{})
	var saved string
	g := NewKeyGate(c, func(k string) error { saved = k; return nil })

	if g.Ready() {
		t.Fatal("gate should start closed")
	}
	if err := g.Provide("   "); err == nil {
		t.Error("blank key should be rejected")
	}
	if err := g.Provide(" sk-new "); err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if !g.Ready() || saved != "sk-new" {
		t.Errorf("ready = %v, saved = %q", g.Ready(), saved)
	}
}

func TestKeyGateSaveFailure(t *testing.T) {
	c := NewOpenAIClient(OpenAIOpts{})
	g := NewKeyGate(c, func(string) error { return errors.New("disk full") })
	if err := g.Provide("sk-new"); err == nil {
		t.Error("expected save error")
	}
}

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		ready    bool
		wantErr  bool
	}{
		{config.ProviderOpenAI, false, false},
		{config.ProviderClaude, true, false},
		{config.ProviderOffline, true, false},
		{"gemini", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			collab, gate, err := New(config.Narrative{Provider: tt.provider}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if tt.wantErr {
				return
			}
			if collab == nil {
				t.Fatal("nil collaborator")
			}
			if gate.Ready() != tt.ready {
				t.Errorf("ready = %v, want %v", gate.Ready(), tt.ready)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	if Timeout(config.Narrative{}) != DefaultTimeout {
		t.Error("zero should use default")
	}
	if Timeout(config.Narrative{TimeoutSeconds: 5}) != 5*time.Second {
		t.Error("configured timeout not applied")
	}
}

func TestCommandProvider(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	p := NewCommandProvider([]string{"sh", "-c", `cat >/dev/null; echo '{"talentSummary":"a","strategicFit":"b","onboardingAdvice":"c"}'`}, "")
	if !p.Available() {
		t.Fatal("sh should be available")
	}
	got, err := p.Analyze(context.Background(), roster.DefaultEmployees()[0])
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.TalentSummary != "a" {
		t.Errorf("insight = %+v", got)
	}

	failing := NewCommandProvider([]string{"sh", "-c", "cat >/dev/null; echo nope >&2; exit 3"}, "")
	if _, err := failing.SummarizeMarket(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("err = %v, want stderr in message", err)
	}
}

func TestCommandProviderDefaults(t *testing.T) {
	p := NewCommandProvider(nil, "")
	if p.argv[0] != DefaultCommand[0] {
		t.Errorf("argv = %v", p.argv)
	}
}
