package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circlepop/internal/core"
	"github.com/vovakirdan/circlepop/internal/games/circlepop"
	"github.com/vovakirdan/circlepop/internal/metrics"
	"github.com/vovakirdan/circlepop/internal/registry"
	"github.com/vovakirdan/circlepop/internal/storage"
)

// Options wires optional services into a game session.
type Options struct {
	Store       *storage.Store
	Leaderboard storage.Leaderboard // shared leaderboard, in addition to Store
	Metrics     *metrics.Recorder
	Logger      *log.Logger
	Player      string
	// AllowBack lets B/Esc leave a paused or finished game.
	AllowBack bool
}

// moveObserver is implemented by games that report individual moves.
type moveObserver interface {
	OnMove(fn func(circlepop.MoveEvent))
}

// resizer is implemented by games that can adapt to a new screen size in place.
type resizer interface {
	Resize(width, height int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	finished   bool // game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg = cfg.Normalized()

	if obs, ok := game.(moveObserver); ok {
		obs.OnMove(moveHook(opts))
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

func moveHook(opts Options) func(circlepop.MoveEvent) {
	return func(ev circlepop.MoveEvent) {
		opts.Metrics.ObserveMove(ev.GameID, ev.Reason(), ev.Popped)
		if opts.Logger == nil {
			return
		}
		if ev.Accepted() {
			opts.Logger.Debug("pop", "game", ev.GameID, "x", ev.X, "y", ev.Y,
				"popped", ev.Popped, "gained", ev.Gained, "moves_left", ev.MovesLeft)
			return
		}
		opts.Logger.Debug("move rejected", "game", ev.GameID, "x", ev.X, "y", ev.Y, "reason", ev.Reason())
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err == nil && m.opts.Logger != nil {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.finished = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.finished {
		m.recordGame()
		m.finished = true
	}

	return m, tickCmd(m.config.TickRate)
}

// recordGame saves the finished game. Failures are logged and never
// interrupt play.
func (m Model) recordGame() {
	summary := core.Summary{GameID: m.game.ID(), Score: m.gameState.Score}
	if s, ok := m.game.(registry.Summarizer); ok {
		summary = s.Summary()
	}

	m.opts.Metrics.GameFinished(summary.GameID, summary.EndReason)
	if m.opts.Logger != nil {
		m.opts.Logger.Info("game finished", "game", summary.GameID, "player", m.opts.Player,
			"score", summary.Score, "moves", summary.MovesUsed, "reason", summary.EndReason)
	}

	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveGame(storage.GameRecord{
			GameID:       summary.GameID,
			Player:       m.opts.Player,
			Score:        summary.Score,
			MovesUsed:    summary.MovesUsed,
			LargestGroup: summary.LargestGroup,
			TotalCleared: summary.TotalCleared,
			Seed:         summary.Seed,
			EndReason:    summary.EndReason,
		})
		if err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not save game", "error", err)
		}
	}

	if m.opts.Leaderboard != nil && m.opts.Player != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.opts.Leaderboard.Submit(ctx, summary.GameID, m.opts.Player, summary.Score); err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not submit score", "error", err)
		}
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.circlepop/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".circlepop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// RunWithBack plays game and reports whether the user asked to return to the menu.
func RunWithBack(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	opts.AllowBack = true
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
