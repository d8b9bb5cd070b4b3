package application

import (
	"fmt"
	"log"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"wrt/buffer"
	"wrt/commands"
	"wrt/config"
	"wrt/files"
	"wrt/view"
)

type ScreenFactory func() (tcell.Screen, error)

type Options struct {
	Screen ScreenFactory
	Target files.Target
	Config *config.Config
	// Width overrides the configured line width when positive.
	Width int
	Log   *log.Logger
}

type Application struct {
	target    files.Target
	buffer    *buffer.Buffer
	config    *config.Config
	commands  *commands.Commands
	newScreen ScreenFactory
	screen    tcell.Screen
	styles    view.Styles
	keys      map[string]string
	width     int

	done    bool
	saveErr error

	log *log.Logger
}

// configChanged is posted to the screen by the config watcher.
type configChanged struct{}

func New(opts Options) *Application {
	app := &Application{
		target:    opts.Target,
		config:    opts.Config,
		newScreen: opts.Screen,
		width:     opts.Width,
		log:       opts.Log,
	}
	if app.newScreen == nil {
		app.newScreen = tcell.NewScreen
	}
	if app.width <= 0 {
		app.width = opts.Config.EditorConfig.LineWidth
	}
	app.applyConfig()

	app.commands = commands.NewCommands(app.log)
	app.commands.Register("newline", func() { app.buffer.CommitLine() })
	app.commands.Register("backspace", func() { app.buffer.Backspace() })
	app.commands.Register("redraw", func() { app.screen.Sync() })
	app.commands.Register("quit", app.quit)
	return app
}

// Run loads the target, runs the session until quit and returns the saved
// document. The terminal is restored before Run returns, panics included.
func (app *Application) Run() (string, error) {
	content, err := app.target.Load()
	if err != nil {
		return "", err
	}
	app.buffer = buffer.New(content, app.width)
	app.log.Printf("Opened %v with line width %d", app.target, app.width)

	s, err := app.newScreen()
	if err != nil {
		return "", fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return "", fmt.Errorf("initializing screen: %w", err)
	}
	app.screen = s

	// You have to catch panics in a defer, clean up, and
	// re-raise them - otherwise your application can
	// die without leaving any diagnostic trace.
	defer func() {
		maybePanic := recover()
		app.config.Cleanup()
		s.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}()

	s.SetStyle(view.DefaultStyle)
	s.Clear()

	if err := app.config.Watch(func() {
		if err := s.PostEvent(tcell.NewEventInterrupt(configChanged{})); err != nil {
			app.log.Printf("Dropped config change: %v", err)
		}
	}); err != nil {
		app.log.Printf("Not watching config: %v", err)
	}

	for !app.done {
		width, height := s.Size()
		frame := view.Compose(view.Size{Width: width, Height: height}, app.buffer, app.config.EditorConfig.ShowHints)
		view.Draw(s, frame, app.styles)

		ev := s.PollEvent()
		if ev == nil {
			return "", fmt.Errorf("screen closed before quit")
		}
		app.handleInput(s, ev)
	}

	if app.saveErr != nil {
		return "", app.saveErr
	}
	return app.buffer.Committed(), nil
}

func (app *Application) handleInput(s tcell.Screen, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			if unicode.IsPrint(ev.Rune()) && ev.Modifiers()&tcell.ModAlt == 0 {
				app.buffer.TypeChar(ev.Rune())
			}
			return
		}
		if name, ok := app.keys[tcell.KeyNames[ev.Key()]]; ok {
			app.commands.Exec(name)
		}
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(configChanged); ok {
			app.reloadConfig()
		}
	}
}

func (app *Application) quit() {
	app.done = true
	if err := app.buffer.Save(app.target); err != nil {
		app.saveErr = err
		app.log.Printf("Saving to %v failed: %v", app.target, err)
		return
	}
	app.log.Printf("Wrote document to %v", app.target)
}

func (app *Application) reloadConfig() {
	if err := app.config.Reload(); err != nil {
		app.log.Printf("Keeping old config: %v", err)
		return
	}
	app.applyConfig()
	if w := app.config.EditorConfig.LineWidth; w != app.width {
		app.log.Printf("Line width %d takes effect next session", w)
	}
	app.log.Printf("Reloaded config from %v", app.config.File())
}

func (app *Application) applyConfig() {
	ec := app.config.EditorConfig
	app.styles = view.NewStyles(ec.TextColor, ec.InputColor, ec.HintColor)
	app.keys = ec.Keys
}
