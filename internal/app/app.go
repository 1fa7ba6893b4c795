package app

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/fathomedit/fathom/internal/config"
	"github.com/fathomedit/fathom/internal/imaging"
	"github.com/fathomedit/fathom/internal/session"
	"github.com/fathomedit/fathom/internal/syntax"
	"github.com/fathomedit/fathom/internal/term"
	"github.com/fathomedit/fathom/internal/workspace"
)

// frameInterval bounds how long the loop blocks for input. Worker
// results and watcher refreshes are observed at least this often even
// when the keyboard is silent.
const frameInterval = 16 * time.Millisecond

// statusDuration is how long a transient status message stays visible.
const statusDuration = 4 * time.Second

// App owns every subsystem and runs the main loop. All state mutation
// happens on the loop goroutine; the workers communicate only through
// their channels.
type App struct {
	log   *log.Logger
	cfg   *config.Config
	theme *syntax.Theme
	reg   *syntax.Registry

	screen *term.Screen
	events <-chan tcell.Event

	sess    *session.Session
	browser *workspace.Browser
	pipe    *imaging.Pipeline
	viewer  *imaging.Viewer

	branch      string
	status      string
	statusUntil time.Time

	width  int
	height int

	// imageMode switches the content pane from the text editor to the
	// image viewer.
	imageMode bool
	quit      bool
}

// New assembles the application over an initialized screen.
func New(screen *term.Screen, cfg *config.Config, logger *log.Logger, root string) (*App, error) {
	browser, err := workspace.NewBrowser(root)
	if err != nil {
		return nil, NewOperationError("browse", root, err)
	}

	reg := syntax.NewRegistry(cfg.Extensions)
	pipe := imaging.NewPipeline()

	a := &App{
		log:     logger,
		cfg:     cfg,
		theme:   syntax.DefaultTheme(),
		reg:     reg,
		screen:  screen,
		events:  screen.Events(),
		sess:    session.New(reg, cfg.TabWidth),
		browser: browser,
		pipe:    pipe,
		viewer:  imaging.NewViewer(pipe),
		branch:  workspace.GitBranch(root),
	}
	a.width, a.height = screen.Size()
	return a, nil
}

// Close releases everything but the screen, which the caller owns.
func (a *App) Close() {
	a.browser.Close()
	a.pipe.Close()
}

// Run opens the initial paths and drives the loop until quit.
func (a *App) Run(paths []string) error {
	for _, p := range paths {
		a.openPath(p)
	}

	for !a.quit {
		a.render()

		select {
		case ev, ok := <-a.events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
			a.drainEvents()
		case <-time.After(frameInterval):
		}

		a.viewer.Poll()
		a.browser.ConsumeRefresh()
	}

	a.log.Info("quit")
	return nil
}

// drainEvents consumes all queued terminal events before the next
// render, so a paste or a held key repaints once instead of per event.
func (a *App) drainEvents() {
	for {
		select {
		case ev, ok := <-a.events:
			if !ok {
				return
			}
			a.handleEvent(ev)
		default:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.onResize()
	}
}

func (a *App) onResize() {
	a.width, a.height = a.screen.Size()
	a.screen.Sync()

	content := a.layout().content
	if a.imageMode {
		a.viewer.Resize(content.W, content.H)
	}
	if doc := a.sess.Active(); doc != nil {
		doc.Scroll.FollowCursor()
	}
	a.log.Debug("resize", "w", a.width, "h", a.height)
}

// openPath routes a path to the right pane: images to the viewer,
// everything else to the session as a text document.
func (a *App) openPath(path string) {
	if imaging.IsImagePath(path) {
		content := a.layout().content
		a.imageMode = true
		a.viewer.Show(path, content.W, content.H)
		a.log.Debug("preview image", "path", path)
		return
	}

	a.imageMode = false
	a.viewer.Clear()
	if err := a.sess.Open(path); err != nil {
		opErr := NewOperationError("open", path, err)
		a.log.Warn("open failed, editing empty buffer", "path", path, "err", err)
		a.setStatus(opErr.Error())
	}
}

// setStatus shows a transient message in the status line.
func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusUntil = time.Now().Add(statusDuration)
}

func (a *App) statusMessage() string {
	if a.status == "" || time.Now().After(a.statusUntil) {
		return ""
	}
	return a.status
}

// saveActive writes the focused document to disk.
func (a *App) saveActive() {
	doc := a.sess.Active()
	if doc == nil {
		return
	}
	if err := doc.Save(); err != nil {
		opErr := NewOperationError("save", doc.Path, err)
		a.log.Error("save failed", "path", doc.Path, "err", err)
		a.setStatus(opErr.Error())
		return
	}
	a.log.Info("saved", "path", doc.Path)
	a.setStatus("saved " + doc.Name())
}

// closeActiveTab closes the focused tab, refusing unsaved work.
func (a *App) closeActiveTab() {
	if err := a.sess.CloseActive(); err != nil {
		if err == session.ErrUnsavedChanges {
			a.setStatus("unsaved changes: save before closing")
		}
		return
	}
}
