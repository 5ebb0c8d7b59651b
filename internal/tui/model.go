package tui

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/intake"
	"github.com/ohare93/onboard/internal/narrative"
	"github.com/ohare93/onboard/internal/review"
	"github.com/ohare93/onboard/internal/roster"
	"github.com/ohare93/onboard/internal/router"
	"github.com/ohare93/onboard/internal/watcher"
)

// dashboardFocus is the part of the dashboard receiving keys
type dashboardFocus int

const (
	focusRoster dashboardFocus = iota
	focusNotes
	focusConfirm
)

// confirmKind is the destructive action awaiting an answer
type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmReset
)

type pendingConfirm struct {
	kind   confirmKind
	email  string
	name   string
	prompt string
}

// Options wires the model to its collaborators
type Options struct {
	Store     *roster.Store
	Narrator  review.Narrator
	Gate      narrative.Gate // nil means always ready
	AdminCode string
	Watcher   *watcher.Watcher
	Clipboard func(string) error // defaults to the system clipboard
	Logger    *slog.Logger
}

type Model struct {
	store    *roster.Store
	flow     *review.Flow
	router   *router.Router
	narrator review.Narrator
	gate     narrative.Gate
	log      *slog.Logger

	// Intake form state
	wizard     *intake.Wizard
	formCursor int // index into the current step's fields
	chipCursor int // option index within a toggle or choice field
	formInput  textinput.Model
	formErr    string

	// Admin login and credential gate
	codeInput textinput.Model
	keyInput  textinput.Model
	gateErr   string

	// Dashboard state
	focus   dashboardFocus
	cursor  int
	notes   textarea.Model
	spinner spinner.Model
	confirm *pendingConfirm

	// UI state
	width   int
	height  int
	message string
	err     error

	clip        func(string) error
	fileWatcher *watcher.Watcher
}

// New creates a model on the Portal view
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	narrator := opts.Narrator
	if narrator == nil {
		narrator = narrative.WithFallback(narrative.Offline{}, 0, log)
	}

	var capability router.Capability
	if opts.Gate != nil {
		capability = opts.Gate
	}

	formInput := textinput.New()
	formInput.CharLimit = 256
	formInput.Width = 48

	codeInput := textinput.New()
	codeInput.Placeholder = "admin code"
	codeInput.EchoMode = textinput.EchoPassword
	codeInput.EchoCharacter = '•'
	codeInput.CharLimit = 32
	codeInput.Width = 20

	keyInput := textinput.New()
	keyInput.Placeholder = "sk-..."
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.CharLimit = 256
	keyInput.Width = 48

	notes := textarea.New()
	notes.Placeholder = "Reviewer notes..."
	notes.SetWidth(48)
	notes.SetHeight(5)
	notes.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = warningStyle

	return Model{
		store:       opts.Store,
		flow:        review.New(opts.Store),
		router:      router.New(opts.AdminCode, capability),
		narrator:    narrator,
		gate:        opts.Gate,
		log:         log,
		formInput:   formInput,
		codeInput:   codeInput,
		keyInput:    keyInput,
		notes:       notes,
		spinner:     sp,
		clip:        clip,
		fileWatcher: opts.Watcher,
	}
}

func (m Model) Init() tea.Cmd {
	if m.fileWatcher != nil {
		return listenForWatcherEvents(m.fileWatcher)
	}
	return nil
}

// ActiveView returns the active router view
func (m Model) ActiveView() router.View {
	return m.router.View()
}
