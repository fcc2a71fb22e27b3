package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"wmark/internal/batch"
	"wmark/internal/compositor"
	"wmark/internal/editor"
	"wmark/internal/imageio"
	help "wmark/internal/tui/widgets/helpoverlay"
	"wmark/internal/tui/widgets/statusbar"
)

// Options configures the interactive editor.
type Options struct {
	Watermarker compositor.Watermarker
	Display     compositor.Display
	Prefix      string
	Batch       batch.Options
	StartPath   string // opened on launch when set
	NoColor     bool
}

// Run shows the editor until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// ===== Model =====

type mode string

const (
	modeMain     mode = "main"
	modePickFile mode = "pick-file" // choose an image
	modePickDir  mode = "pick-dir"  // choose a directory
	modeText     mode = "text"      // enter watermark text
	modeConfirm  mode = "confirm"   // discard unsaved watermark?
	modeInfo     mode = "info"      // informational modal
	modeHelp     mode = "help"
)

// purpose says what a picker or text prompt result feeds into.
type purpose int

const (
	forOpen purpose = iota
	forSave
	forBatchDir
	forText
	forBatchText
)

// actionMsg carries an editor action produced by an effect back into Update.
type actionMsg struct{ action editor.Action }

type batchDoneMsg struct {
	report batch.Report
	err    error
}

type model struct {
	ctx       context.Context
	machine   editor.Machine
	session   editor.Session
	wm        compositor.Watermarker
	display   compositor.Display
	batchOpts batch.Options
	startPath string
	noColor   bool

	mode    mode
	purpose purpose
	picker  filepicker.Model
	input   textinput.Model
	confirm editor.Confirm
	info    editor.Notify

	batchDir string
	busy     bool   // an effect or batch sweep is running
	status   string // driver messages (clipboard, batch)
	change   string // rendered diff between replaced and new text

	width, height int
	preview       string
	previewInfo   string
}

func newModel(ctx context.Context, opts Options) model {
	return model{
		ctx:       ctx,
		machine:   editor.Machine{Prefix: opts.Prefix},
		wm:        opts.Watermarker,
		display:   opts.Display,
		batchOpts: opts.Batch,
		startPath: opts.StartPath,
		noColor:   opts.NoColor,
		mode:      modeMain,
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd {
	if m.startPath == "" {
		return nil
	}
	return emit(editor.SelectImage{Path: m.startPath})
}

// Update turns key presses into editor actions and effect results back into
// actions. Only one effect runs at a time.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.Height = pickerHeight(m.height)
		m.refreshPreview()
		return m, nil
	case actionMsg:
		m.busy = false
		return m.dispatch(msg.action)
	case batchDoneMsg:
		m.busy = false
		m.info = batchNotice(msg.report, msg.err)
		m.mode = modeInfo
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
	}

	switch m.mode {
	case modePickFile, modePickDir:
		return m.updatePicker(msg)
	case modeText:
		return m.updateInput(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := k.String()

	switch m.mode {
	case modeConfirm:
		switch strings.ToLower(key) {
		case "y", "enter":
			m.mode = modeMain
			return m.dispatch(editor.ConfirmDiscard{Approve: true})
		case "n", "esc", "q":
			m.mode = modeMain
			return m.dispatch(editor.ConfirmDiscard{Approve: false})
		}
		return m, nil
	case modeInfo:
		m.mode = modeMain
		return m, nil
	case modeHelp:
		if key == "?" || key == "esc" || key == "q" {
			m.mode = modeMain
		}
		return m, nil
	}

	m.status = ""
	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "o":
		return m, m.openPicker(forOpen)
	case "m":
		return m, m.openPicker(forBatchDir)
	case "t":
		if !editor.CanAddText(m.session) {
			return m.dispatch(editor.AddText{})
		}
		return m, m.openInput(forText)
	case "c":
		return m.dispatch(editor.ClearText{})
	case "s":
		if !editor.CanSave(m.session) {
			return m.dispatch(editor.Save{})
		}
		return m, m.openPicker(forSave)
	case "y":
		m.copySavedPath()
	}
	return m, nil
}

// dispatch folds a into the session and starts the resulting effect.
func (m model) dispatch(a editor.Action) (tea.Model, tea.Cmd) {
	before := m.session.Text
	next, eff := m.machine.Transition(m.session, a)
	m.session = next
	switch {
	case next.Text == "":
		m.change = ""
	case before != "" && next.Text != before:
		m.change = renderTextChange(before, next.Text, m.noColor)
	}
	if next.Notice != "" {
		slog.Debug("Editor notice", "phase", next.Phase(), "notice", next.Notice)
	}
	m.refreshPreview()
	return m.run(eff)
}

func (m model) run(eff editor.Effect) (tea.Model, tea.Cmd) {
	switch e := eff.(type) {
	case nil:
		return m, nil
	case editor.Open:
		m.busy = true
		return m, openCmd(e.Path)
	case editor.Compose:
		m.busy = true
		return m, composeCmd(m.wm, e)
	case editor.Write:
		m.busy = true
		return m, writeCmd(e)
	case editor.Confirm:
		m.confirm = e
		m.mode = modeConfirm
	case editor.Notify:
		m.info = e
		m.mode = modeInfo
	}
	return m, nil
}

// ===== Effects =====

func emit(a editor.Action) tea.Cmd {
	return func() tea.Msg { return actionMsg{a} }
}

func openCmd(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := imageio.Open(path)
		if err != nil {
			slog.Error("Open failed", "path", path, "error", err)
			return actionMsg{editor.Failed{Err: err}}
		}
		b := img.Bounds()
		slog.Info("Opened image", "path", path, "width", b.Dx(), "height", b.Dy())
		return actionMsg{editor.Opened{Path: path, Image: img}}
	}
}

// composeCmd always starts from the file on disk so text never stacks.
func composeCmd(wm compositor.Watermarker, e editor.Compose) tea.Cmd {
	return func() tea.Msg {
		img, err := imageio.Open(e.Path)
		if err != nil {
			slog.Error("Re-read failed", "path", e.Path, "error", err)
			return actionMsg{editor.Failed{Err: err}}
		}
		slog.Info("Applying watermark", "path", e.Path, "anchor", wm.Anchor(img.Bounds(), e.Text))
		return actionMsg{editor.Composed{Text: e.Text, Image: wm.Apply(img, e.Text)}}
	}
}

func writeCmd(e editor.Write) tea.Cmd {
	return func() tea.Msg {
		if err := imageio.Save(e.Image, e.Path); err != nil {
			slog.Error("Save failed", "path", e.Path, "error", err)
			return actionMsg{editor.Failed{Err: err}}
		}
		slog.Info("Saved image", "path", e.Path)
		return actionMsg{editor.Written{Path: e.Path}}
	}
}

func batchCmd(ctx context.Context, wm compositor.Watermarker, dir, text string, opts batch.Options) tea.Cmd {
	return func() tea.Msg {
		rep, err := batch.Run(ctx, wm, dir, text, opts)
		return batchDoneMsg{report: rep, err: err}
	}
}

func batchNotice(rep batch.Report, err error) editor.Notify {
	if err != nil {
		return editor.Notify{
			Title:   "Batch stopped",
			Message: fmt.Sprintf("%v\n%d file(s) were saved before the error.", err, len(rep.Written)),
		}
	}
	msg := fmt.Sprintf("The files have been saved to: '%s/'", rep.Dir)
	if len(rep.Failed) > 0 {
		names := make([]string, 0, len(rep.Failed))
		for _, f := range rep.Failed {
			names = append(names, filepath.Base(f.Path))
		}
		msg += fmt.Sprintf("\nSkipped %d unreadable file(s): %s", len(rep.Failed), strings.Join(names, ", "))
	}
	return editor.Notify{Title: "Images saved", Message: msg}
}

// ===== Dialogs =====

func (m *model) openPicker(p purpose) tea.Cmd {
	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir()
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.height)
	if p == forOpen {
		fp.FileAllowed = true
		fp.DirAllowed = false
		fp.AllowedTypes = pickerTypes()
		m.mode = modePickFile
	} else {
		// Directories are chosen with "." on the listing, enter only descends.
		fp.FileAllowed = false
		fp.DirAllowed = false
		m.mode = modePickDir
	}
	m.picker = fp
	m.purpose = p
	return fp.Init()
}

func (m model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.mode = modeMain
			return m, nil
		case ".":
			if m.mode == modePickDir {
				m.mode = modeMain
				return m.picked(m.picker.CurrentDirectory)
			}
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if m.mode == modePickFile {
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.mode = modeMain
			next, c := m.picked(path)
			return next, tea.Batch(cmd, c)
		}
	}
	return m, cmd
}

func (m model) picked(path string) (tea.Model, tea.Cmd) {
	switch m.purpose {
	case forOpen:
		return m.dispatch(editor.SelectImage{Path: path})
	case forSave:
		return m.dispatch(editor.Save{Dir: path})
	case forBatchDir:
		m.batchDir = path
		return m, m.openInput(forBatchText)
	}
	return m, nil
}

func (m *model) openInput(p purpose) tea.Cmd {
	ti := textinput.New()
	ti.Prompt = "Enter text: "
	ti.Placeholder = "© your name"
	ti.CharLimit = 200
	ti.Width = m.width - len(ti.Prompt) - 2
	if p == forText {
		ti.SetValue(m.session.Text)
	}
	m.input = ti
	m.purpose = p
	m.mode = modeText
	return m.input.Focus()
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.mode = modeMain
			return m, nil
		case "enter":
			m.mode = modeMain
			text := m.input.Value()
			if m.purpose == forBatchText {
				if text == "" {
					return m, nil
				}
				m.busy = true
				m.status = "Watermarking " + m.batchDir + " ..."
				return m, batchCmd(m.ctx, m.wm, m.batchDir, text, m.batchOpts)
			}
			return m.dispatch(editor.AddText{Text: text})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) copySavedPath() {
	if m.session.SavedTo == "" {
		m.status = "Nothing saved yet"
		return
	}
	if err := clipboard.WriteAll(m.session.SavedTo); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + m.session.SavedTo
}

func (m model) startDir() string {
	if m.session.Path != "" {
		return filepath.Dir(m.session.Path)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func pickerTypes() []string {
	out := make([]string, 0, 2*len(imageio.Extensions))
	for _, e := range imageio.Extensions {
		out = append(out, e, strings.ToUpper(e))
	}
	return out
}

func pickerHeight(termHeight int) int {
	return max(5, termHeight-6)
}

// ===== Preview =====

// previewArea is the cell budget left for the image after chrome lines.
func (m model) previewArea() (int, int) {
	return max(10, m.width), max(4, m.height-8)
}

// refreshPreview re-renders the working image. The display copy is scaled;
// the working image itself is never touched.
func (m *model) refreshPreview() {
	img := m.session.Working
	if img == nil {
		m.preview, m.previewInfo = "", ""
		return
	}
	disp, sug, ok := m.display.FitForDisplay(img)
	cols, rows := m.previewArea()
	cells := imaging.Fit(disp, cols, rows*2, imaging.Box)
	m.preview = renderHalfBlocks(cells, m.noColor)
	b := disp.Bounds()
	m.previewInfo = fmt.Sprintf("preview %dx%d", b.Dx(), b.Dy())
	if ok {
		m.previewInfo += fmt.Sprintf(" · window %dx%d", sug.Width, sug.Height)
	}
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m model) View() string {
	switch m.mode {
	case modePickFile:
		return m.viewPicker("Select image", "enter: open   h/←: up   esc: cancel")
	case modePickDir:
		title := "Select folder to save into"
		if m.purpose == forBatchDir {
			title = "Select folder to watermark"
		}
		return m.viewPicker(title, ".: choose this folder   enter/l: open   h/←: up   esc: cancel")
	case modeText:
		return m.viewInput()
	case modeConfirm:
		return m.viewModal("Discard without saving", m.confirm.Prompt+"\n\n"+m.confirm.Path, "y/enter: discard   n/esc: keep")
	case modeInfo:
		return m.viewModal(m.info.Title, m.info.Message, "any key: close")
	case modeHelp:
		return help.NewHelpOverlay().View(m.session)
	default:
		return m.viewMain()
	}
}

func (m model) viewMain() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Watermarking App") + "\n")
	b.WriteString(statusbar.NewStatusBar().WithNoColor(m.noColor).View(m.session, m.previewInfo) + "\n")
	if m.session.Source == nil {
		b.WriteString("\nPlease select an image or folder to begin.\n\n")
	} else {
		b.WriteString(m.preview + "\n")
	}
	b.WriteString(m.keysLine() + "\n")
	if m.change != "" {
		b.WriteString(faintStyle.Render("text: ") + m.change + "\n")
	}
	switch {
	case m.busy:
		b.WriteString(faintStyle.Render("working…") + "\n")
	case m.status != "":
		b.WriteString(faintStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// keysLine greys out actions the session does not currently permit.
func (m model) keysLine() string {
	s := m.session
	items := []struct {
		label string
		on    bool
	}{
		{"o: select image", editor.CanSelect(s)},
		{"m: watermark multiple", true},
		{"t: add text", editor.CanAddText(s)},
		{"c: clear text", editor.CanClear(s)},
		{"s: save", editor.CanSave(s)},
		{"y: copy path", s.SavedTo != ""},
		{"?: help", true},
		{"q: quit", true},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case !it.on && m.noColor:
			parts = append(parts, "("+it.label+")")
		case !it.on:
			parts = append(parts, faintStyle.Render(it.label))
		default:
			parts = append(parts, it.label)
		}
	}
	return strings.Join(parts, "   ")
}

func (m model) viewPicker(title, hint string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(selStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	b.WriteString(m.picker.View() + "\n")
	b.WriteString(faintStyle.Render(hint) + "\n")
	return b.String()
}

func (m model) viewInput() string {
	title := "Add text"
	if m.purpose == forBatchText {
		title = "Watermark every image in " + m.batchDir
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(faintStyle.Render("enter: apply   esc: cancel") + "\n")
	return b.String()
}

func (m model) viewModal(title, body, hint string) string {
	content := titleStyle.Render(title) + "\n\n" + body + "\n\n" + faintStyle.Render(hint)
	return boxStyle.Render(content) + "\n"
}
