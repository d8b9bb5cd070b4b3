package application

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"wrt/config"
	"wrt/files"
)

// readyScreen signals once the session has initialised the screen, so the
// test knows when it may inject events.
type readyScreen struct {
	tcell.SimulationScreen
	ready chan struct{}
}

func (r *readyScreen) Init() error {
	err := r.SimulationScreen.Init()
	r.SimulationScreen.SetSize(80, 24)
	close(r.ready)
	return err
}

type session struct {
	screen *readyScreen
	text   chan string
	err    chan error
}

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig(log.New(io.Discard, "", 0), filepath.Join(t.TempDir(), "wrt"))
	require.NoError(t, cfg.Init())
	return cfg
}

func start(t *testing.T, target files.Target, width int) *session {
	t.Helper()
	s := &session{
		screen: &readyScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8"), ready: make(chan struct{})},
		text:   make(chan string, 1),
		err:    make(chan error, 1),
	}
	app := New(Options{
		Screen: func() (tcell.Screen, error) { return s.screen, nil },
		Target: target,
		Config: newConfig(t),
		Width:  width,
		Log:    log.New(io.Discard, "", 0),
	})
	go func() {
		text, err := app.Run()
		s.text <- text
		s.err <- err
	}()

	select {
	case <-s.screen.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("screen never initialised")
	}
	return s
}

// post retries until the event queue has room.
func (s *session) post(ev tcell.Event) {
	for s.screen.PostEvent(ev) != nil {
		time.Sleep(time.Millisecond)
	}
}

func (s *session) key(k tcell.Key) {
	s.post(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (s *session) typeText(text string) {
	for _, r := range text {
		s.post(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (s *session) wait(t *testing.T) (string, error) {
	t.Helper()
	select {
	case text := <-s.text:
		return text, <-s.err
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
		return "", nil
	}
}

func TestSessionAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	s := start(t, files.Persisted(path), 5)
	s.typeText("de")
	s.key(tcell.KeyEnter)
	s.typeText("xyz")
	s.key(tcell.KeyBackspace2)
	s.key(tcell.KeyEscape)

	text, err := s.wait(t)
	require.NoError(t, err)
	require.Equal(t, "abcde\nxy", text)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "abcde\nxy", string(content))
}

func TestSessionConsole(t *testing.T) {
	s := start(t, files.Console(), 0)
	s.typeText("hello")
	s.key(tcell.KeyBackspace)
	s.key(tcell.KeyEscape)

	text, err := s.wait(t)
	require.NoError(t, err)
	require.Equal(t, "hell", text)
}

func TestSessionIgnoresOtherKeys(t *testing.T) {
	s := start(t, files.Console(), 10)
	s.typeText("ab")
	s.key(tcell.KeyTab)
	s.key(tcell.KeyUp)
	s.key(tcell.KeyCtrlL)
	s.post(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt))
	s.post(tcell.NewEventResize(100, 30))
	s.typeText("c")
	s.key(tcell.KeyEscape)

	text, err := s.wait(t)
	require.NoError(t, err)
	require.Equal(t, "abc", text)
}

func TestSessionOpenFailure(t *testing.T) {
	called := false
	app := New(Options{
		Screen: func() (tcell.Screen, error) {
			called = true
			return tcell.NewSimulationScreen("UTF-8"), nil
		},
		Target: files.Persisted(filepath.Join(t.TempDir(), "missing", "notes.txt")),
		Config: newConfig(t),
		Log:    log.New(io.Discard, "", 0),
	})

	_, err := app.Run()
	require.ErrorIs(t, err, files.ErrOpen)
	require.False(t, called, "terminal must not be touched")
}
