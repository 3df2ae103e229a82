package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-balance/internal/core"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/storage"
)

// GameModel is the Bubble Tea model that drives one scene.
type GameModel struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      core.GameState
	keyMapper  *KeyMapper
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the finished run has been stored
}

// NewGameModel creates a model for scene. A standalone model quits on
// back; an embedded one reports BackToMenu.
func NewGameModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, standalone bool) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	scene.Reset(cfg)

	return GameModel{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		state:      scene.State(),
		keyMapper:  NewKeyMapper(),
		standalone: standalone,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, m.screen.Width(), &m.inputFrame)
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && (m.state.GameOver || m.state.Paused) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen. The run carries on; scenes lay out
// from the screen size at render time.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.scene.Reset(m.config)
		m.state = m.scene.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.scene.Step(m.inputFrame)
	m.state = result.State

	if m.state.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveRun() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the scene continues regardless
	m.store.SaveRun(storage.Run{
		SceneID: m.scene.ID(),
		Score:   m.state.Score,
		Outcome: m.state.Outcome,
		Seed:    m.config.Seed,
		Speed:   m.state.Speed,
	})
}

// saveScreenshot writes the current screen as text under ~/.balance/screenshots.
func (m *GameModel) saveScreenshot() {
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".balance", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.scene.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the scene state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays scene in the terminal until the user quits.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewGameModel(scene, store, cfg, true),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // hover steers without holding a button
	)
	_, err := p.Run()
	return err
}
