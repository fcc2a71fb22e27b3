package editor

import (
	"fmt"
	"path/filepath"
)

// DefaultPrefix names saved files watermark_<original>.
const DefaultPrefix = "watermark_"

// Machine carries the settings transitions need. It holds no session state.
type Machine struct {
	Prefix string
}

// CanSelect is always true; an unsaved watermark only adds a confirmation.
func CanSelect(s Session) bool { return true }

// CanAddText requires a loaded image.
func CanAddText(s Session) bool { return s.Source != nil }

// CanClear requires applied text.
func CanClear(s Session) bool { return s.Text != "" }

// CanSave holds iff a watermark is applied and not yet written to disk.
func CanSave(s Session) bool { return s.Text != "" && s.Unsaved }

// Transition folds a into s. Illegal actions leave s unchanged apart from
// Notice and return no effect.
func (m Machine) Transition(s Session, a Action) (Session, Effect) {
	s.Notice = ""
	switch a := a.(type) {
	case SelectImage:
		return selectImage(s, a.Path)
	case ConfirmDiscard:
		return confirmDiscard(s, a.Approve)
	case Opened:
		return opened(a), nil
	case AddText:
		return addText(s, a.Text)
	case Composed:
		return composed(s, a)
	case ClearText:
		return clearText(s)
	case Save:
		return m.save(s, a.Dir)
	case Written:
		return written(s, a.Path)
	case Failed:
		s.Pending = ""
		s.Notice = a.Err.Error()
		return s, nil
	}
	return s, nil
}

func selectImage(s Session, path string) (Session, Effect) {
	if path == "" {
		return s, nil
	}
	if s.Unsaved {
		s.Pending = path
		return s, Confirm{Path: path, Prompt: "Select a new image without saving this one?"}
	}
	return s, Open{Path: path}
}

func confirmDiscard(s Session, approve bool) (Session, Effect) {
	path := s.Pending
	s.Pending = ""
	if path == "" {
		return s, nil
	}
	if !approve {
		s.Notice = "Kept current image"
		return s, nil
	}
	return s, Open{Path: path}
}

// opened starts a fresh session; nothing from the previous one survives.
func opened(a Opened) Session {
	return Session{
		Path:    a.Path,
		Source:  a.Image,
		Working: a.Image,
		Notice:  "Opened " + filepath.Base(a.Path),
	}
}

func addText(s Session, text string) (Session, Effect) {
	if !CanAddText(s) {
		s.Notice = "Select an image first"
		return s, nil
	}
	if text == "" {
		return s, nil
	}
	return s, Compose{Path: s.Path, Text: text}
}

func composed(s Session, a Composed) (Session, Effect) {
	if !CanAddText(s) {
		return s, nil
	}
	s.Text = a.Text
	s.Working = a.Image
	s.Unsaved = true
	s.SavedTo = ""
	return s, nil
}

// clearText drops the watermark and re-reads the original from Path.
func clearText(s Session) (Session, Effect) {
	if !CanClear(s) {
		s.Notice = "No text to clear"
		return s, nil
	}
	s.Text = ""
	s.Unsaved = false
	s.Working = s.Source
	return s, Open{Path: s.Path}
}

func (m Machine) save(s Session, dir string) (Session, Effect) {
	if !CanSave(s) {
		s.Notice = "Nothing to save"
		return s, nil
	}
	if dir == "" {
		return s, nil
	}
	prefix := m.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return s, Write{Path: filepath.Join(dir, prefix+filepath.Base(s.Path)), Image: s.Working}
}

func written(s Session, path string) (Session, Effect) {
	s.Unsaved = false
	s.SavedTo = path
	msg := fmt.Sprintf("The file has been saved to: %s", path)
	s.Notice = msg
	return s, Notify{Title: "Image saved", Message: msg}
}
