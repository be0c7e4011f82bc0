package app

import (
	"fmt"
	"time"

	"github.com/timapple/writeapp/internal/config"
	"github.com/timapple/writeapp/internal/draft"
	"github.com/timapple/writeapp/internal/flow"
	"github.com/timapple/writeapp/internal/storage"
	"github.com/timapple/writeapp/internal/term"
	"github.com/timapple/writeapp/internal/ui"
)

// tickRate drives timer countdowns and status message expiry.
const tickRate = 250 * time.Millisecond

// Options configure the application.
type Options struct {
	// BaseDir overrides the storage directory. Empty uses the platform
	// default (or the WRITEAPP_DIR environment override).
	BaseDir string

	// LogLevel enables file logging at the given level ("" disables).
	LogLevel string

	// FlowMinutes starts directly in a timed writing session.
	FlowMinutes int

	// Backend overrides the terminal backend, used by tests.
	Backend term.Backend
}

// Application owns every component and the event loop.
type Application struct {
	opts     Options
	log      *Logger
	backend  term.Backend
	store    *storage.Store
	drafts   *draft.Store
	tracker  *flow.Tracker
	settings *config.Manager
	ui       *ui.UI
}

// New builds the application. A storage directory that cannot be created
// is fatal; damaged settings or session logs degrade to defaults with a
// warning.
func New(opts Options) (*Application, error) {
	base := opts.BaseDir
	if base == "" {
		base = storage.DefaultBaseDir()
	}
	store := storage.New(base)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	log := NullLogger
	if opts.LogLevel != "" {
		log = NewFileLogger(ParseLogLevel(opts.LogLevel), store.LogPath())
	}

	settings := config.NewManager(store)
	if err := settings.Load(); err != nil {
		log.Warn("settings unreadable, using defaults: %v", err)
	}
	theme, err := config.LoadTheme(store)
	if err != nil {
		log.Warn("theme unreadable, using defaults: %v", err)
	}

	drafts := draft.NewStore(store, settings.Current().Extension())
	if err := drafts.Refresh(); err != nil {
		log.Warn("draft scan: %v", err)
	}

	tracker := flow.NewTracker(store)
	if err := tracker.Load(); err != nil {
		log.Warn("session log unreadable, starting fresh: %v", err)
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = term.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
	}

	a := &Application{
		opts:     opts,
		log:      log,
		backend:  backend,
		store:    store,
		drafts:   drafts,
		tracker:  tracker,
		settings: settings,
	}
	a.ui = ui.New(ui.Deps{
		Backend:  backend,
		Drafts:   drafts,
		Tracker:  tracker,
		Settings: settings,
		Theme:    theme,
	})
	return a, nil
}

// Run takes over the terminal and processes events until the user quits.
// It returns nil on a clean quit.
func (a *Application) Run() error {
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer a.backend.Fini()
	defer a.log.Close()

	watcher, err := draft.NewWatcher(a.drafts, func() {
		a.backend.PostWake()
	})
	if err != nil {
		a.log.Warn("draft watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	stop := make(chan struct{})
	defer close(stop)
	go a.tickLoop(stop)

	if a.opts.FlowMinutes > 0 {
		a.ui.StartTimedFlow(time.Duration(a.opts.FlowMinutes) * time.Minute)
	}

	a.log.Info("started")
	a.ui.Draw()

	for {
		ev := a.backend.PollEvent()
		if ev == nil {
			break
		}
		a.ui.HandleEvent(ev)
		a.ui.Tick()
		if a.ui.QuitRequested() {
			break
		}
		a.ui.Draw()
	}

	a.ui.Shutdown()
	a.log.Info("stopped")
	return nil
}

// tickLoop wakes the event loop at the tick rate so countdowns and
// transient messages advance without user input.
func (a *Application) tickLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.backend.PostWake()
		case <-stop:
			return
		}
	}
}
