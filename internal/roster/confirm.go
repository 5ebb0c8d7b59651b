package roster

// Prompts shown by the confirmation gate before destructive operations
const (
	DeletePrompt = "Permanently delete this record?"
	ResetPrompt  = "Restore the sample dataset? This overwrites all of your changes."
)

// Confirmer is a blocking yes/no gate consulted before destructive operations
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Answer is a gate whose response was already collected, e.g. by a TUI prompt
type Answer bool

// Confirm returns the recorded answer
func (a Answer) Confirm(string) bool {
	return bool(a)
}
