package review

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ohare93/onboard/internal/intake"
	"github.com/ohare93/onboard/internal/narrative"
	"github.com/ohare93/onboard/internal/roster"
)

const (
	mingEmail    = "ming@company.com"
	meilingEmail = "meiling@company.com"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFlow(t *testing.T) *Flow {
	t.Helper()
	store := roster.NewStore(roster.NewMemoryBlobStore(), "")
	store.SetLogger(quietLogger())
	store.Initialize()
	return New(store)
}

type failingCollaborator struct{}

func (failingCollaborator) Analyze(context.Context, roster.Employee) (narrative.Insight, error) {
	return narrative.Insight{}, errors.New("model rejected the request")
}

func (failingCollaborator) SummarizeMarket(context.Context, []roster.Employee) (string, error) {
	return "", errors.New("model rejected the request")
}

type stubNarrator struct {
	insight  narrative.Insight
	strategy string
}

func (s stubNarrator) Analyze(context.Context, roster.Employee) (narrative.Insight, bool) {
	return s.insight, false
}

func (s stubNarrator) SummarizeMarket(context.Context, []roster.Employee) (string, bool) {
	return s.strategy, false
}

var liveInsight = narrative.Insight{
	TalentSummary:    "Builds reliable systems",
	StrategicFit:     "Core platform contributor",
	OnboardingAdvice: "Assign an architecture mentor",
}

func TestDefaultFilterShowsActive(t *testing.T) {
	f := newFlow(t)
	if got := f.Filter(); got.Department != roster.FilterAll || got.Status != "Active" {
		t.Errorf("default filter = %+v", got)
	}
	if len(f.Visible()) != 2 {
		t.Errorf("expected both default records visible, got %d", len(f.Visible()))
	}
}

func TestFiltersAndSummary(t *testing.T) {
	f := newFlow(t)
	f.SetDepartmentFilter("Marketing")
	visible := f.Visible()
	if len(visible) != 1 || visible[0].Email != meilingEmail {
		t.Fatalf("visible = %+v", visible)
	}

	sum := f.Summary()
	if sum.AverageExperience != 3 {
		t.Errorf("average = %v, want 3", sum.AverageExperience)
	}
	if sum.Active != 2 {
		t.Errorf("active count should use full roster, got %d", sum.Active)
	}

	f.SetDepartmentFilter("Sales")
	if got := f.Summary().AverageExperience; got != 0 {
		t.Errorf("empty filtered average = %v, want 0", got)
	}

	f.SetDepartmentFilter("")
	f.SetStatusFilter("")
	if f.Filter().Department != roster.FilterAll || f.Filter().Status != roster.FilterAll {
		t.Errorf("empty filters should mean All: %+v", f.Filter())
	}
}

func TestCycleFilters(t *testing.T) {
	f := newFlow(t)
	opts := f.DepartmentOptions()
	if len(opts) != 3 || opts[0] != roster.FilterAll {
		t.Fatalf("department options = %v", opts)
	}
	if got := f.CycleDepartment(1); got != opts[1] {
		t.Errorf("cycle forward = %q", got)
	}
	if got := f.CycleDepartment(-2); got != opts[2] {
		t.Errorf("cycle wraps backwards = %q", got)
	}

	if got := f.CycleStatus(1); got != "Resigned" {
		t.Errorf("status after Active = %q", got)
	}
	f.CycleStatus(1)
	if got := f.CycleStatus(1); got != roster.FilterAll {
		t.Errorf("status wraps to All, got %q", got)
	}
}

func TestSelectStartsAnalysis(t *testing.T) {
	f := newFlow(t)
	req, ok := f.Select(mingEmail)
	if !ok {
		t.Fatal("expected selection")
	}
	if !f.Busy() {
		t.Error("expected busy while analysis is pending")
	}
	if _, ok := f.Insight(); ok {
		t.Error("insight should be hidden while pending")
	}
	if req.Employee.Email != mingEmail {
		t.Errorf("request for %q", req.Employee.Email)
	}

	res := req.Run(context.Background(), stubNarrator{insight: liveInsight})
	if !f.ResolveInsight(res) {
		t.Fatal("expected result to apply")
	}
	got, ok := f.Insight()
	if !ok || got != liveInsight {
		t.Errorf("insight = %+v", got)
	}
	if f.Busy() || f.InsightDegraded() {
		t.Error("busy and degraded should be clear")
	}
}

func TestSelectUnknownEmail(t *testing.T) {
	f := newFlow(t)
	if _, ok := f.Select("nobody@x.com"); ok {
		t.Error("selecting a missing record should fail")
	}
	if _, ok := f.Selected(); ok {
		t.Error("nothing should be selected")
	}
}

func TestStaleInsightIgnored(t *testing.T) {
	f := newFlow(t)
	first, _ := f.Select(mingEmail)
	second, _ := f.Select(meilingEmail)

	if f.ResolveInsight(first.Run(context.Background(), stubNarrator{insight: liveInsight})) {
		t.Error("result for a previous selection must be discarded")
	}
	if !f.Busy() {
		t.Error("busy should remain until the current request resolves")
	}
	if !f.ResolveInsight(second.Run(context.Background(), stubNarrator{insight: liveInsight})) {
		t.Error("current result should apply")
	}
}

func TestReselectSameRecordIgnoresOlderRequest(t *testing.T) {
	f := newFlow(t)
	first, _ := f.Select(mingEmail)
	second, _ := f.Reanalyze()

	if f.ResolveInsight(first.Run(context.Background(), stubNarrator{insight: liveInsight})) {
		t.Error("older request for the same record must not apply")
	}
	if second.Seq <= first.Seq {
		t.Errorf("sequence not increasing: %d then %d", first.Seq, second.Seq)
	}
}

func TestReanalyzeUsesLatestData(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)
	f.Store().SetNotes(mingEmail, "promote soon")

	req, ok := f.Reanalyze()
	if !ok {
		t.Fatal("expected reanalysis")
	}
	if req.Employee.Notes != "promote soon" {
		t.Errorf("request uses stale notes %q", req.Employee.Notes)
	}
}

func TestReanalyzeWithoutSelection(t *testing.T) {
	f := newFlow(t)
	if _, ok := f.Reanalyze(); ok {
		t.Error("reanalyze needs a selection")
	}
}

func TestAnalysisFailureFallsBack(t *testing.T) {
	f := newFlow(t)
	n := narrative.WithFallback(failingCollaborator{}, time.Second, quietLogger())

	req, _ := f.Select(mingEmail)
	res := req.Run(context.Background(), n)
	if !res.Degraded {
		t.Error("expected degraded result")
	}
	if !f.ResolveInsight(res) {
		t.Fatal("fallback result should apply")
	}
	if f.Busy() {
		t.Error("busy flag should clear after failure")
	}
	got, _ := f.Insight()
	if got != narrative.FallbackInsight() {
		t.Errorf("insight = %+v, want fallback", got)
	}
	if !f.InsightDegraded() {
		t.Error("expected degraded insight")
	}
}

func TestStrategyOnCountChange(t *testing.T) {
	f := newFlow(t)
	req, ok := f.ObserveCount()
	if !ok {
		t.Fatal("first observation should request a strategy")
	}
	if _, ready := f.Strategy(); ready {
		t.Error("strategy should be a placeholder until resolved")
	}
	if _, again := f.ObserveCount(); again {
		t.Error("unchanged count should not request again")
	}

	f.ResolveStrategy(req.Run(context.Background(), stubNarrator{strategy: "Invest in mentoring"}))
	if text, ready := f.Strategy(); !ready || text != "Invest in mentoring" {
		t.Errorf("strategy = %q, %v", text, ready)
	}
}

func TestStrategyLaterIssuedWins(t *testing.T) {
	f := newFlow(t)
	older, _ := f.ObserveCount()
	f.Store().Append(roster.Employee{Email: "third@x.com", Status: roster.StatusActive})
	newer, ok := f.ObserveCount()
	if !ok {
		t.Fatal("count change should issue a request")
	}

	if !f.ResolveStrategy(StrategyResult{Seq: newer.Seq, Text: "newer"}) {
		t.Fatal("newer result should apply")
	}
	if f.ResolveStrategy(StrategyResult{Seq: older.Seq, Text: "older"}) {
		t.Error("older result must not overwrite a newer one")
	}
	if text, _ := f.Strategy(); text != "newer" {
		t.Errorf("strategy = %q", text)
	}
}

func TestStrategySkippedForEmptyRoster(t *testing.T) {
	f := newFlow(t)
	pending, _ := f.ObserveCount()
	for _, e := range f.Store().Employees() {
		f.Store().Remove(e.Email, roster.Answer(true))
	}
	if _, ok := f.ObserveCount(); ok {
		t.Error("empty roster should not request a strategy")
	}
	if f.ResolveStrategy(StrategyResult{Seq: pending.Seq, Text: "late"}) {
		t.Error("request issued before the roster emptied must be ignored")
	}
}

func TestStrategyFailureFallsBack(t *testing.T) {
	f := newFlow(t)
	n := narrative.WithFallback(failingCollaborator{}, time.Second, quietLogger())
	req, _ := f.ObserveCount()
	f.ResolveStrategy(req.Run(context.Background(), n))
	if text, _ := f.Strategy(); text != narrative.FallbackStrategy {
		t.Errorf("strategy = %q", text)
	}
	if !f.StrategyDegraded() {
		t.Error("expected degraded strategy")
	}
}

func TestNotesDraftLifecycle(t *testing.T) {
	f := newFlow(t)
	f.Store().SetNotes(mingEmail, "initial")
	f.Select(mingEmail)

	if f.Draft() != "initial" || f.SaveState() != SaveIdle {
		t.Fatalf("draft = %q, state = %s", f.Draft(), f.SaveState())
	}

	f.SetDraft("initial, plus more")
	if !f.DraftDirty() {
		t.Error("expected dirty draft")
	}

	token, ok := f.SaveNotes()
	if !ok {
		t.Fatal("expected save")
	}
	if f.SaveState() != SaveSaving {
		t.Errorf("state = %s, want saving", f.SaveState())
	}
	sel, _ := f.Selected()
	if sel.Notes != "initial, plus more" {
		t.Errorf("snapshot not refreshed: %q", sel.Notes)
	}
	stored, _ := f.Store().Find(mingEmail)
	if stored.Notes != "initial, plus more" {
		t.Errorf("store notes = %q", stored.Notes)
	}

	f.NotesSaved(token)
	if f.SaveState() != SaveSaved {
		t.Errorf("state = %s, want saved", f.SaveState())
	}

	f.SetDraft("changed again")
	if f.SaveState() != SaveIdle {
		t.Errorf("editing after save should reset to idle, got %s", f.SaveState())
	}
}

func TestNotesSavedStaleToken(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)
	f.SetDraft("one")
	first, _ := f.SaveNotes()
	f.SetDraft("two")
	f.SaveNotes()

	f.NotesSaved(first)
	if f.SaveState() != SaveSaving {
		t.Errorf("stale token should not complete the save, got %s", f.SaveState())
	}
}

func TestSelectResetsDraft(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)
	f.SetDraft("unsaved")
	f.Select(meilingEmail)
	if f.Draft() != "" {
		t.Errorf("draft should come from the new record, got %q", f.Draft())
	}
}

func TestMoveStatusUpdatesSnapshot(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)

	if n := f.MoveStatus(mingEmail, roster.StatusHidden); n != 1 {
		t.Fatalf("affected = %d", n)
	}
	sel, _ := f.Selected()
	if sel.Status != roster.StatusHidden {
		t.Errorf("snapshot status = %s", sel.Status)
	}

	f.MoveStatus(meilingEmail, roster.StatusResigned)
	sel, _ = f.Selected()
	if sel.Status != roster.StatusHidden {
		t.Error("moving another record must not touch the selection")
	}
}

func TestDeleteDeclined(t *testing.T) {
	f := newFlow(t)
	if n, ok := f.Delete(mingEmail, roster.Answer(false)); n != 0 || ok {
		t.Errorf("declined delete = %d, %v", n, ok)
	}
	if f.Store().Len() != 2 {
		t.Error("declined delete changed the roster")
	}
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	f := newFlow(t)
	req, _ := f.Select(mingEmail)

	if n, ok := f.Delete(mingEmail, roster.Answer(true)); n != 1 || !ok {
		t.Fatalf("delete = %d, %v", n, ok)
	}
	if _, ok := f.Selected(); ok {
		t.Error("selection should be cleared")
	}
	if f.Busy() {
		t.Error("busy should clear with the selection")
	}
	if f.ResolveInsight(req.Run(context.Background(), stubNarrator{insight: liveInsight})) {
		t.Error("insight for a deleted record must be discarded")
	}
}

func TestDeleteOtherKeepsSelection(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)
	f.Delete(meilingEmail, roster.Answer(true))
	if sel, ok := f.Selected(); !ok || sel.Email != mingEmail {
		t.Error("deleting another record should keep the selection")
	}
}

func TestResetClearsMissingSelection(t *testing.T) {
	f := newFlow(t)
	f.Store().Append(roster.Employee{Email: "new@x.com", Status: roster.StatusActive})
	f.Select("new@x.com")

	if f.Reset(roster.Answer(false)) {
		t.Fatal("declined reset should report false")
	}
	if !f.Reset(roster.Answer(true)) {
		t.Fatal("expected reset")
	}
	if _, ok := f.Selected(); ok {
		t.Error("selection of a record removed by reset should clear")
	}
	if f.Store().Len() != 2 {
		t.Errorf("len after reset = %d", f.Store().Len())
	}
}

func TestCopyAcknowledgement(t *testing.T) {
	f := newFlow(t)
	if _, ok := f.CopyText(CopyStrategy); ok {
		t.Error("nothing to copy before the strategy arrives")
	}

	req, _ := f.ObserveCount()
	f.ResolveStrategy(StrategyResult{Seq: req.Seq, Text: "Plan"})
	text, ok := f.CopyText(CopyStrategy)
	if !ok || text != "Plan" {
		t.Fatalf("copy text = %q, %v", text, ok)
	}

	first := f.MarkCopied(CopyStrategy)
	second := f.MarkCopied(CopyStrategy)
	f.ClearCopied(first)
	if f.Copied() != CopyStrategy {
		t.Error("stale clear should not hide a newer acknowledgement")
	}
	f.ClearCopied(second)
	if f.Copied() != CopyNone {
		t.Error("acknowledgement should clear")
	}
}

func TestCopyInsightText(t *testing.T) {
	f := newFlow(t)
	req, _ := f.Select(mingEmail)
	f.ResolveInsight(req.Run(context.Background(), stubNarrator{insight: liveInsight}))

	text, ok := f.CopyText(CopyInsight)
	if !ok {
		t.Fatal("expected insight text")
	}
	if want := FormatInsight(req.Employee.FullName, liveInsight); text != want {
		t.Errorf("copy text = %q", text)
	}
}

func TestSyncAfterExternalRemoval(t *testing.T) {
	f := newFlow(t)
	f.Select(mingEmail)
	f.Store().Remove(mingEmail, roster.Answer(true))
	f.Sync()
	if _, ok := f.Selected(); ok {
		t.Error("selection of a removed record should clear on sync")
	}
}

// TestEndToEndIntakeAndReview walks a record from intake through review
// to deletion
func TestEndToEndIntakeAndReview(t *testing.T) {
	f := newFlow(t)
	store := f.Store()

	w := intake.New(intake.Options{EmailTaken: store.Contains})
	steps := []map[intake.Field]string{
		{
			intake.FieldFullName:   "New Hire",
			intake.FieldBirthday:   "1999-01-01",
			intake.FieldNationalID: "Z000000000",
			intake.FieldEmail:      "new@x.com",
			intake.FieldPhone:      "0900-123-456",
			intake.FieldAddress:    "1 Main St",
		},
		{
			intake.FieldBankCode:                 "700",
			intake.FieldBankAccount:              "1234567890",
			intake.FieldEmergencyContactName:     "Parent",
			intake.FieldEmergencyContactRelation: "Mother",
			intake.FieldEmergencyContactPhone:    "0911-000-000",
		},
		{
			intake.FieldDepartment:      "Design",
			intake.FieldPosition:        "Designer",
			intake.FieldExperienceYears: "1",
			intake.FieldEducation:       "Art School",
			intake.FieldMajor:           "Design",
			intake.FieldStartDate:       "2026-11-01",
		},
	}
	for i, values := range steps {
		for field, v := range values {
			if err := w.Set(field, v); err != nil {
				t.Fatalf("Set(%s): %v", field, err)
			}
		}
		if !w.Next() {
			t.Fatalf("step %d did not advance: %v", i+1, w.Issues())
		}
	}
	record, err := w.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	store.Append(record)

	if store.Len() != 3 {
		t.Fatalf("len = %d, want 3", store.Len())
	}

	f.MoveStatus("new@x.com", roster.StatusResigned)
	if got := f.Summary().Resigned; got != 1 {
		t.Errorf("resigned count = %d, want 1", got)
	}

	if n, ok := f.Delete("new@x.com", roster.Answer(true)); n != 1 || !ok {
		t.Fatalf("delete = %d, %v", n, ok)
	}
	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
	if store.Contains("new@x.com") {
		t.Error("deleted record still present")
	}
}
