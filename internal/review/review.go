// Package review is the dashboard state container. It projects the roster
// through the department and status filters, tracks the selected record,
// and sequences the asynchronous narrative requests so that a response is
// only applied while its originating context is still current.
//
// Flow never calls the narrative backend itself: Select, Reanalyze and
// ObserveCount return request values that the caller runs off the main
// loop and feeds back through ResolveInsight and ResolveStrategy.
package review

import (
	"github.com/ohare93/onboard/internal/narrative"
	"github.com/ohare93/onboard/internal/roster"
)

// SaveState is the notes save indicator
type SaveState int

const (
	SaveIdle SaveState = iota
	SaveSaving
	SaveSaved
)

func (s SaveState) String() string {
	switch s {
	case SaveSaving:
		return "saving"
	case SaveSaved:
		return "saved"
	default:
		return "idle"
	}
}

// CopyTarget names what was last copied to the clipboard
type CopyTarget string

const (
	CopyNone     CopyTarget = ""
	CopyStrategy CopyTarget = "strategy"
	CopyInsight  CopyTarget = "insight"
)

// Flow is the review dashboard state. It is owned by a single goroutine.
type Flow struct {
	store  *roster.Store
	filter roster.Filter

	selected *roster.Employee

	insight         *narrative.Insight
	insightDegraded bool
	busy            bool
	analysisSeq     int

	strategy         string
	strategyReady    bool
	strategyDegraded bool
	strategySeq      int
	strategyApplied  int
	lastCount        int

	draft     string
	save      SaveState
	saveToken int

	copied  CopyTarget
	copySeq int
}

// New creates a flow over store with the default filter
func New(store *roster.Store) *Flow {
	return &Flow{
		store:     store,
		filter:    roster.DefaultFilter(),
		lastCount: -1,
	}
}

// Store returns the underlying roster
func (f *Flow) Store() *roster.Store {
	return f.store
}

// Filter returns the active filter
func (f *Flow) Filter() roster.Filter {
	return f.filter
}

// SetDepartmentFilter selects a department, or roster.FilterAll
func (f *Flow) SetDepartmentFilter(dept string) {
	if dept == "" {
		dept = roster.FilterAll
	}
	f.filter.Department = dept
}

// SetStatusFilter selects a status, or roster.FilterAll
func (f *Flow) SetStatusFilter(status string) {
	if status == "" {
		status = roster.FilterAll
	}
	f.filter.Status = status
}

// DepartmentOptions lists the department filter choices: All followed by
// every department in the full roster
func (f *Flow) DepartmentOptions() []string {
	sum := roster.Summarize(f.store.Employees(), nil)
	return append([]string{roster.FilterAll}, sum.Departments...)
}

// StatusOptions lists the status filter choices
func StatusOptions() []string {
	opts := []string{roster.FilterAll}
	for _, s := range roster.Statuses {
		opts = append(opts, string(s))
	}
	return opts
}

// CycleDepartment moves the department filter by delta through DepartmentOptions
func (f *Flow) CycleDepartment(delta int) string {
	f.filter.Department = cycle(f.DepartmentOptions(), f.filter.Department, delta)
	return f.filter.Department
}

// CycleStatus moves the status filter by delta through StatusOptions
func (f *Flow) CycleStatus(delta int) string {
	f.filter.Status = cycle(StatusOptions(), f.filter.Status, delta)
	return f.filter.Status
}

func cycle(options []string, current string, delta int) string {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

// Visible returns the filtered roster
func (f *Flow) Visible() []roster.Employee {
	return f.filter.Apply(f.store.Employees())
}

// Summary returns the dashboard aggregates for the current filter
func (f *Flow) Summary() roster.Summary {
	all := f.store.Employees()
	return roster.Summarize(all, f.filter.Apply(all))
}

// Selected returns the selected record snapshot
func (f *Flow) Selected() (roster.Employee, bool) {
	if f.selected == nil {
		return roster.Employee{}, false
	}
	return f.selected.Clone(), true
}

// Select makes the record with email the selection, resets the insight and
// notes draft, and returns the analysis request to run
func (f *Flow) Select(email string) (AnalysisRequest, bool) {
	e, err := f.store.Find(email)
	if err != nil {
		return AnalysisRequest{}, false
	}
	f.selected = &e
	f.draft = e.Notes
	f.save = SaveIdle
	return f.requestAnalysis(), true
}

// Reanalyze re-runs the analysis with the selected record's latest data
func (f *Flow) Reanalyze() (AnalysisRequest, bool) {
	if f.selected == nil {
		return AnalysisRequest{}, false
	}
	if !f.refreshSelected() {
		return AnalysisRequest{}, false
	}
	return f.requestAnalysis(), true
}

func (f *Flow) requestAnalysis() AnalysisRequest {
	f.insight = nil
	f.insightDegraded = false
	f.busy = true
	f.analysisSeq++
	return AnalysisRequest{Seq: f.analysisSeq, Employee: f.selected.Clone()}
}

// ResolveInsight applies an analysis result if it answers the most recent
// request for the record still selected. It reports whether it was applied.
func (f *Flow) ResolveInsight(res AnalysisResult) bool {
	if res.Seq != f.analysisSeq || f.selected == nil || f.selected.Email != res.Email {
		return false
	}
	insight := res.Insight
	f.insight = &insight
	f.insightDegraded = res.Degraded
	f.busy = false
	return true
}

// Busy reports whether an analysis is in flight
func (f *Flow) Busy() bool {
	return f.busy
}

// Insight returns the displayed insight, if any
func (f *Flow) Insight() (narrative.Insight, bool) {
	if f.insight == nil {
		return narrative.Insight{}, false
	}
	return *f.insight, true
}

// InsightDegraded reports whether the displayed insight is fallback text
func (f *Flow) InsightDegraded() bool {
	return f.insight != nil && f.insightDegraded
}

// ObserveCount compares the roster size with the last observed size and
// returns a strategy request when it changed. An empty roster clears the
// strategy without a request.
func (f *Flow) ObserveCount() (StrategyRequest, bool) {
	n := f.store.Len()
	if n == f.lastCount {
		return StrategyRequest{}, false
	}
	f.lastCount = n
	f.strategySeq++
	if n == 0 {
		f.strategy = ""
		f.strategyReady = false
		f.strategyDegraded = false
		f.strategyApplied = f.strategySeq
		return StrategyRequest{}, false
	}
	return StrategyRequest{Seq: f.strategySeq, Employees: f.store.Employees()}, true
}

// ResolveStrategy applies a strategy result unless a later-issued one has
// already been applied
func (f *Flow) ResolveStrategy(res StrategyResult) bool {
	if res.Seq <= f.strategyApplied || res.Seq > f.strategySeq {
		return false
	}
	f.strategyApplied = res.Seq
	f.strategy = res.Text
	f.strategyReady = true
	f.strategyDegraded = res.Degraded
	return true
}

// Strategy returns the latest strategy text and whether one has arrived
func (f *Flow) Strategy() (string, bool) {
	return f.strategy, f.strategyReady
}

// StrategyDegraded reports whether the strategy is fallback text
func (f *Flow) StrategyDegraded() bool {
	return f.strategyReady && f.strategyDegraded
}

// Draft returns the notes draft
func (f *Flow) Draft() string {
	return f.draft
}

// SetDraft replaces the notes draft. The indicator returns to idle when the
// draft differs from the stored notes.
func (f *Flow) SetDraft(s string) {
	f.draft = s
	if f.selected != nil && s != f.selected.Notes {
		f.save = SaveIdle
	}
}

// DraftDirty reports whether the draft differs from the stored notes
func (f *Flow) DraftDirty() bool {
	return f.selected != nil && f.draft != f.selected.Notes
}

// SaveState returns the notes save indicator
func (f *Flow) SaveState() SaveState {
	return f.save
}

// SaveNotes writes the draft to the store and refreshes the selected
// snapshot. It returns a token for NotesSaved.
func (f *Flow) SaveNotes() (int, bool) {
	if f.selected == nil {
		return 0, false
	}
	f.save = SaveSaving
	if f.store.SetNotes(f.selected.Email, f.draft) == 0 {
		f.clearSelection()
		return 0, false
	}
	f.refreshSelected()
	f.saveToken++
	return f.saveToken, true
}

// NotesSaved completes the save started with token
func (f *Flow) NotesSaved(token int) {
	if token == f.saveToken && f.save == SaveSaving {
		f.save = SaveSaved
	}
}

// MoveStatus sets the status of every record with email and mirrors it into
// the selected snapshot
func (f *Flow) MoveStatus(email string, status roster.Status) int {
	n := f.store.SetStatus(email, status)
	if n > 0 && f.selected != nil && f.selected.Email == email {
		f.selected.Status = status
	}
	return n
}

// Delete removes every record with email once gate confirms. Deleting the
// selected record clears the selection.
func (f *Flow) Delete(email string, gate roster.Confirmer) (int, bool) {
	n, ok := f.store.Remove(email, gate)
	if n > 0 && f.selected != nil && f.selected.Email == email {
		f.clearSelection()
	}
	return n, ok
}

// Reset restores the default dataset once gate confirms
func (f *Flow) Reset(gate roster.Confirmer) bool {
	if !f.store.ResetToDefaults(gate) {
		return false
	}
	f.Sync()
	return true
}

// Sync reconciles the selection after the roster changed underneath, e.g.
// on reload. A selection that no longer exists is cleared.
func (f *Flow) Sync() {
	if f.selected != nil {
		f.refreshSelected()
	}
}

// refreshSelected re-reads the selected record, clearing the selection
// when it is gone
func (f *Flow) refreshSelected() bool {
	e, err := f.store.Find(f.selected.Email)
	if err != nil {
		f.clearSelection()
		return false
	}
	f.selected = &e
	return true
}

func (f *Flow) clearSelection() {
	f.selected = nil
	f.insight = nil
	f.insightDegraded = false
	f.busy = false
	f.analysisSeq++
	f.draft = ""
	f.save = SaveIdle
}

// Deselect drops the selection
func (f *Flow) Deselect() {
	if f.selected != nil {
		f.clearSelection()
	}
}

// CopyText returns the text for target
func (f *Flow) CopyText(target CopyTarget) (string, bool) {
	switch target {
	case CopyStrategy:
		if !f.strategyReady {
			return "", false
		}
		return f.strategy, true
	case CopyInsight:
		if f.insight == nil || f.selected == nil {
			return "", false
		}
		return FormatInsight(f.selected.FullName, *f.insight), true
	}
	return "", false
}

// MarkCopied shows the copied acknowledgement for target and returns a
// token for ClearCopied
func (f *Flow) MarkCopied(target CopyTarget) int {
	f.copied = target
	f.copySeq++
	return f.copySeq
}

// ClearCopied hides the acknowledgement unless a newer copy replaced it
func (f *Flow) ClearCopied(token int) {
	if token == f.copySeq {
		f.copied = CopyNone
	}
}

// Copied returns the target of the visible acknowledgement
func (f *Flow) Copied() CopyTarget {
	return f.copied
}
