package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-balance/internal/core"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/storage"
)

// stubScene ends its run after crashAfter steps.
type stubScene struct {
	crashAfter int
	resets     int
	steps      int
	lastInput  core.InputFrame
	state      core.GameState
}

func (s *stubScene) ID() string          { return "stub" }
func (s *stubScene) Title() string       { return "Stub" }
func (s *stubScene) Description() string { return "test scene" }

func (s *stubScene) Reset(core.RuntimeConfig) {
	s.resets++
	s.steps = 0
	s.state = core.GameState{Speed: 20}
}

func (s *stubScene) Step(in core.InputFrame) core.StepResult {
	s.lastInput = in.Clone()
	if s.state.GameOver {
		return core.StepResult{State: s.state}
	}
	s.steps++
	s.state.Score = s.steps
	crashed := s.steps >= s.crashAfter
	if crashed {
		s.state.GameOver = true
		s.state.Outcome = "fell_right"
	}
	return core.StepResult{State: s.state, Crashed: crashed}
}

func (s *stubScene) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (s *stubScene) State() core.GameState   { return s.state }

func init() {
	registry.Register("stub", func() registry.Scene { return &stubScene{crashAfter: 3} })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	scene := &stubScene{crashAfter: 3}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}
	m := NewGameModel(scene, store, cfg, true)

	if scene.resets != 1 {
		t.Fatalf("resets = %d, expected 1", scene.resets)
	}
	for range 6 {
		m = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("GameOver = false after crash")
	}

	runs, err := store.AllRuns("stub")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved runs = %d, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 3 || r.Outcome != "fell_right" || r.Seed != 7 || r.Speed != 20 {
		t.Errorf("saved run = %+v", r)
	}
}

func TestGameModelRestart(t *testing.T) {
	scene := &stubScene{crashAfter: 1}
	m := NewGameModel(scene, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, true)

	m = update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("expected crash after first tick")
	}

	m = update(t, m, keyMsg("r"))
	m = update(t, m, TickMsg{})
	if scene.resets != 2 {
		t.Errorf("resets = %d, expected 2", scene.resets)
	}
	if m.State().GameOver {
		t.Error("GameOver = true after restart")
	}
}

func TestGameModelForwardsInput(t *testing.T) {
	scene := &stubScene{crashAfter: 100}
	m := NewGameModel(scene, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 10, TickRate: 60}, true)

	m = update(t, m, keyMsg("left"))
	m = update(t, m, tea.MouseMsg{X: 20, Action: tea.MouseActionMotion})
	m = update(t, m, TickMsg{})

	if !scene.lastInput.Has(core.ActionSteerLeft) {
		t.Error("SteerLeft not forwarded")
	}
	if p := scene.lastInput.Pointer; p == nil || p.X != 20.5 || p.Width != 80 {
		t.Errorf("Pointer = %+v, expected {20.5 80}", p)
	}

	m = update(t, m, TickMsg{})
	if scene.lastInput.Has(core.ActionSteerLeft) || scene.lastInput.Pointer != nil {
		t.Error("input frame not cleared between ticks")
	}
}

func TestGameModelBack(t *testing.T) {
	scene := &stubScene{crashAfter: 100}
	m := NewGameModel(scene, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, false)

	m = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Error("back while riding should be ignored")
	}

	scene.crashAfter = 1
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after crash")
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	scene := &stubScene{crashAfter: 100}
	m := NewGameModel(scene, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}, true)
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if scene.resets != 1 {
		t.Errorf("resets = %d after resize, expected 1", scene.resets)
	}
	if m.View() == "" {
		t.Error("View() is empty")
	}
}

type echoClient struct{}

func (echoClient) SendMessage(_ context.Context, text string) (string, error) {
	return "echo: " + text, nil
}

func TestTutorModelRoundTrip(t *testing.T) {
	m := NewTutorModel(echoClient{}, 60, 20)
	for _, r := range "why" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(TutorModel)
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(TutorModel)
	if !m.Waiting() || cmd == nil {
		t.Fatal("enter should send the question")
	}

	next, _ = m.Update(cmd())
	m = next.(TutorModel)
	msgs := m.Messages()
	if m.Waiting() || len(msgs) != 3 {
		t.Fatalf("Messages() = %+v", msgs)
	}
	if msgs[2].Text != "echo: why" {
		t.Errorf("reply = %q, expected %q", msgs[2].Text, "echo: why")
	}
}

func TestTutorModelWithoutClient(t *testing.T) {
	m := NewTutorModel(nil, 60, 20)
	next, _ := m.Update(keyMsg("x"))
	m = next.(TutorModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(TutorModel)
	if cmd != nil || m.Waiting() {
		t.Error("questions must not be sent without a client")
	}
	if msgs := m.Messages(); len(msgs) != 1 || !msgs[0].IsError {
		t.Errorf("Messages() = %+v", msgs)
	}
}

func session(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	m := NewSessionModel(nil, cfg, nil)

	m = session(t, m, keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scoreboard", m.screen)
	}
	m = session(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}

	m = session(t, m, keyMsg("t"))
	if m.screen != screenTutor {
		t.Fatalf("screen = %v, expected tutor", m.screen)
	}
	m = session(t, m, keyMsg("esc"))

	for m.menu.items[m.menu.cursor].SceneID != "stub" {
		m = session(t, m, keyMsg("down"))
	}
	m = session(t, m, keyMsg("enter"))
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	for range 3 {
		m = session(t, m, TickMsg{})
	}
	m = session(t, m, keyMsg("b"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v after back, expected menu", m.screen)
	}
}
