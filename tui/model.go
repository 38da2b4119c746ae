package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-playtune/notation"
	"go-playtune/theme"
	"go-playtune/widgets"
)

// Model is the full-screen player view: a progress bar over the tune's
// timeline and the key currently sounding. The backend renders in its
// own goroutine; the view follows the wall clock, so a backend that
// buffers ahead never stalls the UI.
type Model struct {
	Theme *theme.Theme
	Title string

	events  []notation.Event
	totalMs float64

	cancel context.CancelFunc
	done   <-chan error

	start    time.Time
	now      time.Time
	width    int
	quitting bool
	finished bool
	err      error
}

type tickMsg time.Time

type doneMsg struct{ err error }

// NewModel wires the view to a running render: cancel stops it, done
// delivers its result.
func NewModel(title string, events []notation.Event, th *theme.Theme, cancel context.CancelFunc, done <-chan error) Model {
	now := time.Now()
	return Model{
		Theme:   th,
		Title:   title,
		events:  events,
		totalMs: notation.TotalDuration(events),
		cancel:  cancel,
		done:    done,
		start:   now,
		now:     now,
		width:   80,
	}
}

func listenForDone(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-done}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		listenForDone(m.done),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Stop the render and wait for its doneMsg; quitting before
			// the backend finishes would close hardware under it.
			m.quitting = true
			m.cancel()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m.now = time.Time(msg)
		if !m.finished {
			return m, tick()
		}

	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// Err returns the render's result once the program has finished.
func (m Model) Err() error {
	return m.err
}

func (m Model) View() string {
	if m.finished {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	noteStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)

	elapsed := m.now.Sub(m.start)
	total := time.Duration(m.totalMs * float64(time.Millisecond))
	if elapsed > total {
		elapsed = total
	}

	state := "PLAY"
	if m.quitting {
		state = "STOP"
	}
	header := headerStyle.Render(fmt.Sprintf("go-playtune  %s  %s  %s / %s",
		m.Title, state, clock(elapsed), clock(total)))

	barWidth := m.width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	frac := 0.0
	if m.totalMs > 0 {
		frac = float64(elapsed.Milliseconds()) / m.totalMs
	}
	bar := widgets.RenderProgressBar(frac, barWidth, m.Theme)

	semitone := -1
	label := dimStyle.Render(string(m.Theme.Symbols.RestHolding) + " ...")
	if e, ok := m.currentEvent(); ok {
		if e.Kind == notation.KindNote {
			name, pos := noteName(e.Frequency)
			semitone = pos
			label = noteStyle.Render(fmt.Sprintf("%s %s  %.3f Hz", string(m.Theme.Symbols.NotePlaying), name, e.Frequency))
		} else {
			label = dimStyle.Render(string(m.Theme.Symbols.RestHolding) + " rest")
		}
	}
	strip := widgets.RenderKeyStrip(semitone, m.Theme)

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{{Key: "q / ctrl+c", Desc: "stop playing and quit"}}},
	}))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n  ")
	out.WriteString(bar)
	out.WriteString("\n\n  ")
	out.WriteString(strip)
	out.WriteString("\n  ")
	out.WriteString(label)
	out.WriteString("\n\n")
	out.WriteString(help)
	out.WriteString("\n")

	return out.String()
}

// currentEvent finds the event under the playhead.
func (m Model) currentEvent() (notation.Event, bool) {
	elapsed := float64(m.now.Sub(m.start)) / float64(time.Millisecond)
	var acc float64
	for _, e := range m.events {
		acc += e.Duration
		if elapsed < acc {
			return e, true
		}
	}
	return notation.Event{}, false
}

// noteName labels a frequency with its note and octave, and returns
// the chromatic position 0-11 for the key strip.
func noteName(freq float64) (string, int) {
	i := int(math.Round(12*math.Log2(freq/440))) + 58
	pos := ((i-1)%12 + 12) % 12
	// subtracting pos first keeps the division a true floor, so the
	// B flattened below octave 0 reads B-1, not B0
	octave := (i - 1 - pos) / 12
	return fmt.Sprintf("%s%d", widgets.NoteNames[pos], octave), pos
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
