// Package app contains the root application model: a viewer that shows a
// stylesheet with every rule block collapsed onto one line.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/cssliner/internal/config"
	"github.com/zjrosen/cssliner/internal/document"
	"github.com/zjrosen/cssliner/internal/keys"
	"github.com/zjrosen/cssliner/internal/log"
	"github.com/zjrosen/cssliner/internal/pubsub"
	helpoverlay "github.com/zjrosen/cssliner/internal/ui/help"
	"github.com/zjrosen/cssliner/internal/ui/logoverlay"
	"github.com/zjrosen/cssliner/internal/ui/markdown"
	"github.com/zjrosen/cssliner/internal/ui/toaster"
	"github.com/zjrosen/cssliner/internal/watcher"
)

// DocumentLoadedMsg carries a freshly loaded document.
type DocumentLoadedMsg struct {
	Doc    document.Document
	Reload bool
}

// LoadFailedMsg reports that a path could not be shown.
type LoadFailedMsg struct {
	Path string
	Err  error
}

// Options configures a new Model.
type Options struct {
	Config     config.Config
	ConfigPath string // where the strip comments toggle is saved; empty disables saving
	Loader     *document.Loader
	Clipboard  Clipboard
	// InitialPath is loaded on Init when non-empty.
	InitialPath string
	// Debug enables the log overlay (ctrl+x).
	Debug bool
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	loader     *document.Loader
	clipboard  Clipboard
	keys       keys.KeyMap
	promptKeys keys.PromptKeyMap

	initialPath string
	path        string             // last path requested
	doc         *document.Document // nil when nothing is shown
	loadErr     error

	stripComments bool
	display       string   // plain text currently shown
	lines         []string // highlighted display lines, tabs expanded
	maxWidth      int      // widest display line in cells
	xOffset       int

	viewport    viewport.Model
	prompt      textinput.Model
	prompting   bool
	helpBar     help.Model
	helpView    helpoverlay.Model
	showHelp    bool
	showSidebar bool
	toaster     toaster.Model

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	width  int
	height int

	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

// New creates the viewer model.
func New(opts Options) Model {
	cfg := opts.Config

	var (
		watcherHandle   *watcher.Watcher
		watcherListener *pubsub.ContinuousListener[watcher.Change]
	)
	if cfg.Watch {
		w, err := watcher.New(watcher.Config{DebounceDur: cfg.WatchDebounce})
		if err == nil {
			watcherHandle = w
			watcherListener = pubsub.NewContinuousListener(context.Background(), w.Broker())
		} else {
			// The viewer works without reload on change.
			log.Warn(log.CatWatcher, "watcher unavailable", "error", err)
		}
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	prompt := textinput.New()
	prompt.Prompt = "open: "
	prompt.Placeholder = "path/to/style.css"
	prompt.CharLimit = 4096

	km := keys.DefaultKeyMap()
	helpView := helpoverlay.New(km)
	if r, err := markdown.New(helpNotesWidth, cfg.UI.MarkdownStyle); err == nil {
		helpView = helpView.WithNotes(r)
	} else {
		log.ErrorErr(log.CatUI, "creating markdown renderer", err)
	}

	logs := logoverlay.New()
	var logListenCmd tea.Cmd
	if opts.Debug {
		logListenCmd = logs.StartListening()
	}

	return Model{
		cfg:             cfg,
		configPath:      opts.ConfigPath,
		loader:          opts.Loader,
		clipboard:       clip,
		keys:            km,
		promptKeys:      keys.DefaultPromptKeyMap(),
		initialPath:     opts.InitialPath,
		stripComments:   cfg.StripComments,
		viewport:        viewport.New(0, 0),
		prompt:          prompt,
		helpBar:         help.New(),
		helpView:        helpView,
		showSidebar:     cfg.UI.ShowSidebar,
		toaster:         toaster.New(),
		debugMode:       opts.Debug,
		logOverlay:      logs,
		logListenCmd:    logListenCmd,
		watcherHandle:   watcherHandle,
		watcherListener: watcherListener,
	}
}

// Init implements tea.Model. It loads the initial file, if any, and starts
// the watcher listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("cssliner")}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	if m.initialPath != "" {
		cmds = append(cmds, m.loadCmd(m.initialPath, false))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpBar.Width = msg.Width
		m.prompt.Width = max(msg.Width-len(m.prompt.Prompt)-2, 1)
		m.helpView = m.helpView.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.refreshViewport()
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case tea.KeyMsg:
		if m.debugMode && key.Matches(msg, m.keys.Logs) {
			m.logOverlay.Toggle()
			return m, nil
		}
		// The log overlay takes precedence while visible.
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Escape) {
				m.showHelp = false
			} else if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case DocumentLoadedMsg:
		return m.handleLoaded(msg)

	case LoadFailedMsg:
		return m.handleLoadFailed(msg)

	case pubsub.Event[watcher.Change]:
		var cmd tea.Cmd
		if m.doc != nil && msg.Payload.Path == m.doc.Path {
			m, cmd = m.handleFileEvent(msg.Type)
		}
		if m.watcherListener == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.watcherListener.Listen())

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleComments):
		return m.toggleStripComments()

	case key.Matches(msg, m.keys.Open):
		m.prompting = true
		m.prompt.SetValue(m.path)
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Reload):
		if m.path == "" {
			return m.showToast("nothing to reload", toaster.StyleInfo)
		}
		return m, m.reloadCmd(m.path)

	case key.Matches(msg, m.keys.Yank):
		return m.yank()

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.showSidebar = !m.showSidebar
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ScrollUp(max(m.viewport.Height, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ScrollDown(max(m.viewport.Height, 1))
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Left):
		m.scrollHorizontal(-m.horizontalStep())
	case key.Matches(msg, m.keys.Right):
		m.scrollHorizontal(m.horizontalStep())
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.promptKeys.Cancel):
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case key.Matches(msg, m.promptKeys.Submit):
		m.prompting = false
		m.prompt.Blur()
		path := strings.TrimSpace(m.prompt.Value())
		if path == "" {
			return m, nil
		}
		return m, m.loadCmd(path, false)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompting || m.showHelp {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
	case tea.MouseButtonWheelLeft:
		m.scrollHorizontal(-m.horizontalStep())
	case tea.MouseButtonWheelRight:
		m.scrollHorizontal(m.horizontalStep())
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease || !m.sidebarVisible() {
			return m, nil
		}
		if z := zone.Get(zoneStripToggle); z != nil && z.InBounds(msg) {
			return m.toggleStripComments()
		}
	}
	return m, nil
}

func (m Model) handleLoaded(msg DocumentLoadedMsg) (tea.Model, tea.Cmd) {
	doc := msg.Doc
	m.doc = &doc
	m.path = doc.Path
	m.loadErr = nil
	m.render()

	if m.watcherHandle != nil {
		if err := m.watcherHandle.Watch(doc.Path); err != nil {
			log.Warn(log.CatWatcher, "cannot watch file", "path", doc.Path, "error", err)
		}
	}

	if msg.Reload {
		return m.showToast("reloaded "+doc.Name, toaster.StyleInfo)
	}
	return m, nil
}

// handleLoadFailed clears the current document and shows err in the pane.
func (m Model) handleLoadFailed(msg LoadFailedMsg) (tea.Model, tea.Cmd) {
	log.ErrorErr(log.CatUI, "load failed", msg.Err, "path", msg.Path)
	if m.loader != nil {
		m.loader.Invalidate(context.Background(), msg.Path)
	}

	m.path = msg.Path
	m.doc = nil
	m.loadErr = msg.Err
	m.render()

	if errors.Is(msg.Err, document.ErrNotCSS) {
		return m.showToast("not a CSS file", toaster.StyleWarn)
	}
	return m.showToast(msg.Err.Error(), toaster.StyleError)
}

// toggleStripComments flips the toggle and re-renders from the cached
// canonical text. The file is not read again.
func (m Model) toggleStripComments() (tea.Model, tea.Cmd) {
	m.stripComments = !m.stripComments
	m.cfg.StripComments = m.stripComments
	m.render()

	if m.configPath != "" {
		if err := config.SaveStripComments(m.configPath, m.stripComments); err != nil {
			log.ErrorErr(log.CatConfig, "saving strip_comments", err, "path", m.configPath)
			return m.showToast("could not save setting", toaster.StyleError)
		}
	}
	return m, nil
}

func (m Model) yank() (tea.Model, tea.Cmd) {
	if m.display == "" {
		return m.showToast("nothing to copy", toaster.StyleInfo)
	}
	if err := m.clipboard.Copy(m.display); err != nil {
		log.ErrorErr(log.CatUI, "copying to clipboard", err)
		return m.showToast("copy failed: "+err.Error(), toaster.StyleError)
	}
	n := strings.Count(strings.TrimSuffix(m.display, "\n"), "\n") + 1
	return m.showToast(fmt.Sprintf("copied %d lines", n), toaster.StyleSuccess)
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style)
	return m, cmd
}

// handleFileEvent reacts to a change of the open file. A removed file keeps
// its last rendering on screen.
func (m Model) handleFileEvent(kind pubsub.EventType) (Model, tea.Cmd) {
	switch {
	case kind.Changed():
		log.Debug(log.CatWatcher, "file changed, reloading", "path", m.doc.Path, "kind", kind)
		return m, m.reloadCmd(m.doc.Path)
	case kind == pubsub.FileRemoved:
		log.Warn(log.CatWatcher, "open file removed", "path", m.doc.Path)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(m.doc.Name+" was removed", toaster.StyleWarn)
		return m, cmd
	}
	return m, nil
}

func (m Model) loadCmd(path string, reload bool) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		if loader == nil {
			return LoadFailedMsg{Path: path, Err: errors.New("no loader configured")}
		}
		doc, err := loader.Load(context.Background(), path)
		if err != nil {
			return LoadFailedMsg{Path: path, Err: err}
		}
		return DocumentLoadedMsg{Doc: doc, Reload: reload}
	}
}

// reloadCmd drops the cached copy of path before loading it again.
func (m Model) reloadCmd(path string) tea.Cmd {
	if m.loader != nil {
		m.loader.Invalidate(context.Background(), path)
	}
	return m.loadCmd(path, true)
}

// Document returns the document being shown, if any.
func (m Model) Document() (document.Document, bool) {
	if m.doc == nil {
		return document.Document{}, false
	}
	return *m.doc, true
}

// Display returns the text currently shown in the pane, without styling.
func (m Model) Display() string {
	return m.display
}

// StripComments reports the state of the strip comments toggle.
func (m Model) StripComments() bool {
	return m.stripComments
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	m.watcherListener.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
