package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/recorder"
	"github.com/SeamusWaldron/hypercube/internal/render"
	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/timer"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

var playNoHistory bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle",
	Long: `Start an interactive TUI showing both hyper-layers as a flat net.

Keyboard shortcuts:
  u d f b l r  - Turn the face in the selected hyper-layer (upper case
                 turns it backwards)
  tab          - Switch between the anna and kata layers
  s            - Toggle the shift modifier (full-depth slices, I/O)
  c            - Toggle the ctrl modifier (whole rotations)
                 shift+ctrl gives paired W rotations, or the gyro on l/r
  o            - Gyro
  p            - Scramble; the timer starts with your first move after it
  t            - Enable or disable the timer
  space        - Finish the timed solve
  q/Esc        - Quit

Finished solves are stored unless --no-history is set.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playNoHistory, "no-history", false, "Do not store timed solves")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const frameInterval = time.Second / 60

// Messages
type frameMsg time.Time

// faceKeys maps keys to the face they pick.
var faceKeys = map[string]puzzle.Face{
	"u": puzzle.FaceU, "d": puzzle.FaceD,
	"f": puzzle.FaceF, "b": puzzle.FaceB,
	"l": puzzle.FaceL, "r": puzzle.FaceR,
}

// Model
type playModel struct {
	puzzle  *hypercube.Puzzle
	net     *render.Net
	session *recorder.Session
	log     *zap.Logger

	layer      puzzle.Face // FaceA or FaceK
	scramble   []turn.Record
	armPending bool
	moves      []turn.Record
	lastFrame  time.Time

	status   string
	err      error
	quitting bool
}

func newPlayModel(p *hypercube.Puzzle, session *recorder.Session, log *zap.Logger) *playModel {
	m := &playModel{
		puzzle:  p,
		net:     render.NewNet(),
		session: session,
		log:     log,
		layer:   puzzle.FaceA,
	}
	p.SetPainter(m.net)
	p.OnMove(m.handleMove)
	p.OnIdle(m.handleIdle)
	return m
}

// handleMove runs inside Controller.Tick, on the bubbletea goroutine.
func (m *playModel) handleMove(r turn.Record) {
	if m.puzzle.Controller().Scrambling() {
		m.scramble = append(m.scramble, r)
		return
	}
	m.moves = append(m.moves, r)
	if err := m.session.HandleMove(r); err != nil {
		m.err = err
	}
}

func (m *playModel) handleIdle() {
	if !m.armPending {
		return
	}
	m.armPending = false
	if err := m.session.Arm(turn.FormatSequence(m.scramble)); err != nil {
		m.err = err
		return
	}
	m.moves = m.moves[:0]
	m.status = "Scrambled - the timer starts with your first move"
}

func (m *playModel) Init() tea.Cmd {
	m.lastFrame = time.Now()
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame).Seconds()
		m.lastFrame = now
		m.puzzle.Controller().Tick(dt)
		return m, m.frameCmd()
	}
	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	ctrl := m.puzzle.Controller()

	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		if st := m.session.State(); st == recorder.StateArmed || st == recorder.StateRecording {
			if err := m.session.Cancel(); err != nil {
				m.log.Warn("failed to cancel solve", zap.Error(err))
			}
		}
		return tea.Quit

	case "tab":
		if m.layer == puzzle.FaceA {
			m.layer = puzzle.FaceK
		} else {
			m.layer = puzzle.FaceA
		}

	case "s":
		ctrl.SetShift(!ctrl.Shift())

	case "c":
		ctrl.SetCtrl(!ctrl.Ctrl())

	case "o":
		ctrl.StartTurn(turn.Gyro, 1)

	case "p":
		if ctrl.Busy() || ctrl.Scrambling() {
			return nil
		}
		if m.session.State() == recorder.StateRecording {
			m.status = "Finish the solve before scrambling"
			return nil
		}
		m.scramble = m.scramble[:0]
		m.armPending = true
		ctrl.Scramble()
		m.status = "Scrambling..."

	case "t":
		if m.session.Timer().Toggle() {
			m.status = "Timer enabled"
		} else {
			m.status = "Timer disabled"
		}

	case " ":
		elapsed, err := m.session.Finish()
		switch {
		case errors.Is(err, recorder.ErrNoSolve):
			m.status = "No solve in progress"
		case err != nil:
			m.err = err
		default:
			m.status = fmt.Sprintf("Finished in %s with %d moves", timer.Format(elapsed), m.session.MoveCount())
		}

	default:
		lower := strings.ToLower(key)
		face, ok := faceKeys[lower]
		if !ok {
			return nil
		}
		ref, ok := m.puzzle.Cube().FindFacelet(m.layer, face)
		if !ok {
			return nil
		}
		ctrl.ClickStart(ref, key == lower)
		ctrl.MouseUp()
	}
	return nil
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	ctrl := m.puzzle.Controller()

	// Title
	b.WriteString(titleStyle.Render("Hypercube"))
	b.WriteString("\n\n")

	b.WriteString(m.net.Render(m.puzzle.Cube()))
	b.WriteString("\n\n")

	// Input state
	layer := "anna"
	if m.layer == puzzle.FaceK {
		layer = "kata"
	}
	mods := []string{"layer: " + layer}
	if ctrl.Shift() {
		mods = append(mods, "shift")
	}
	if ctrl.Ctrl() {
		mods = append(mods, "ctrl")
	}
	if cur, ok := ctrl.Current(); ok {
		mods = append(mods, "turning "+cur.Notation())
	}
	b.WriteString(statusStyle.Render(strings.Join(mods, " | ")))
	b.WriteString("\n")

	// Timer
	t := m.session.Timer()
	if t.Enabled() {
		b.WriteString(timerStyle.Render(t.String()))
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.session.State().String()))
		b.WriteString("\n")
	}

	// Recent moves
	if len(m.moves) > 0 {
		b.WriteString(fmt.Sprintf("Moves: %d  ", len(m.moves)))
		start := 0
		if len(m.moves) > 20 {
			start = len(m.moves) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(turn.FormatSequence(m.moves[start:])))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: udfblr=turn (upper=reverse)  tab=layer  s/c=shift/ctrl  o=gyro  p=scramble  t=timer  space=finish  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	// Logs would garble the screen unless they go to a file.
	log := logger
	if logFile == "" {
		log = zap.NewNop()
	}

	p, err := hypercube.NewPuzzle(hypercube.WithConfig(cfg), hypercube.WithLogger(log))
	if err != nil {
		return err
	}

	var db *storage.DB
	if !playNoHistory {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()
	}

	session := recorder.NewSession(db, timer.New(), log)
	model := newPlayModel(p, session, log)
	prog := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
