// Package editor is the single-image editing state machine. Transitions are
// pure: they take a Session and an Action and return the next Session plus at
// most one Effect for the driver to execute.
package editor

import "image"

// Phase is derived from a Session, never stored.
type Phase int

const (
	Empty Phase = iota
	Viewing
	Watermarked
)

func (p Phase) String() string {
	switch p {
	case Viewing:
		return "viewing"
	case Watermarked:
		return "watermarked"
	default:
		return "empty"
	}
}

// Session is the editor's whole state. Images are replaced, never mutated.
type Session struct {
	// Path is the unwatermarked source file. Clearing or re-applying text
	// re-reads it; it is never written to.
	Path    string
	Source  image.Image
	Working image.Image // Source with Text applied, or Source itself

	Text    string
	Unsaved bool // Text applied but Working not yet written
	SavedTo string

	// Pending holds a path waiting on the discard confirmation.
	Pending string

	Notice string
}

// Phase reports where the session sits in Empty → Viewing → Watermarked.
func (s Session) Phase() Phase {
	switch {
	case s.Source == nil:
		return Empty
	case s.Text == "":
		return Viewing
	default:
		return Watermarked
	}
}

// Action is a user gesture or the result of an Effect.
type Action interface{ action() }

type (
	// SelectImage asks to open Path. An empty Path is a cancelled dialog.
	SelectImage struct{ Path string }
	// ConfirmDiscard answers the prompt raised by SelectImage.
	ConfirmDiscard struct{ Approve bool }
	// Opened delivers a decoded image for Path.
	Opened struct {
		Path  string
		Image image.Image
	}
	// AddText applies Text from the original file. Empty Text is a cancel.
	AddText struct{ Text string }
	// Composed delivers the watermarked image for Text.
	Composed struct {
		Text  string
		Image image.Image
	}
	ClearText struct{}
	// Save writes the working image into Dir. Empty Dir is a cancel.
	Save struct{ Dir string }
	// Written reports the file a Save produced.
	Written struct{ Path string }
	// Failed reports an effect that could not complete.
	Failed struct{ Err error }
)

func (SelectImage) action()    {}
func (ConfirmDiscard) action() {}
func (Opened) action()         {}
func (AddText) action()        {}
func (Composed) action()       {}
func (ClearText) action()      {}
func (Save) action()           {}
func (Written) action()        {}
func (Failed) action()         {}

// Effect is work the driver performs; its outcome comes back as an Action.
type Effect interface{ effect() }

type (
	// Open decodes Path and answers with Opened or Failed.
	Open struct{ Path string }
	// Confirm asks the user whether to discard the unsaved watermark.
	Confirm struct {
		Path   string
		Prompt string
	}
	// Compose re-reads Path, applies Text and answers with Composed or Failed.
	Compose struct {
		Path string
		Text string
	}
	// Write encodes Image to Path and answers with Written or Failed.
	Write struct {
		Path  string
		Image image.Image
	}
	// Notify shows an informational message.
	Notify struct {
		Title   string
		Message string
	}
)

func (Open) effect()    {}
func (Confirm) effect() {}
func (Compose) effect() {}
func (Write) effect()   {}
func (Notify) effect()  {}
