package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/review"
	"github.com/ohare93/onboard/internal/watcher"
)

const (
	notesAckDelay = 500 * time.Millisecond
	copyAckDelay  = 2 * time.Second
)

type insightMsg struct {
	result review.AnalysisResult
}

// runAnalysis runs the request off the update loop
func runAnalysis(n review.Narrator, req review.AnalysisRequest) tea.Cmd {
	return func() tea.Msg {
		return insightMsg{result: req.Run(context.Background(), n)}
	}
}

type strategyMsg struct {
	result review.StrategyResult
}

func runStrategy(n review.Narrator, req review.StrategyRequest) tea.Cmd {
	return func() tea.Msg {
		return strategyMsg{result: req.Run(context.Background(), n)}
	}
}

type notesSavedMsg struct {
	token int
}

// notesSavedCmd completes the saving indicator after a short delay
func notesSavedCmd(token int) tea.Cmd {
	return tea.Tick(notesAckDelay, func(time.Time) tea.Msg {
		return notesSavedMsg{token: token}
	})
}

type copiedMsg struct {
	target review.CopyTarget
	err    error
}

func copyCmd(clip func(string) error, text string, target review.CopyTarget) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{target: target, err: clip(text)}
	}
}

type clearCopiedMsg struct {
	token int
}

func clearCopiedCmd(token int) tea.Cmd {
	return tea.Tick(copyAckDelay, func(time.Time) tea.Msg {
		return clearCopiedMsg{token: token}
	})
}

// Watcher event messages
type watcherEventMsg struct {
	event watcher.Event
}

type watcherErrorMsg struct {
	err error
}

// listenForWatcherEvents creates a command that listens for watcher events
func listenForWatcherEvents(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-w.Events:
			return watcherEventMsg{event: event}
		case err := <-w.Errors:
			return watcherErrorMsg{err: err}
		}
	}
}
