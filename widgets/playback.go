package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-playtune/theme"
)

// NoteNames are the chromatic labels for one octave, C at the bottom.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// RenderKeyStrip draws one octave of keys with the sounding semitone
// lit. semitone is the chromatic position 0-11, -1 for silence.
func RenderKeyStrip(semitone int, th *theme.Theme) string {
	var out strings.Builder
	for i := 0; i < 12; i++ {
		if i > 0 {
			out.WriteString(" ")
		}
		if i == semitone {
			// low palette stops vanish against the background, so the
			// pitch color starts a third of the way up
			norm := 0.3 + 0.7*float64(i)/11
			style := lipgloss.NewStyle().Foreground(th.Color(norm))
			out.WriteString(style.Render(string(th.Symbols.KeyActive)))
		} else {
			style := lipgloss.NewStyle().Foreground(th.Muted())
			out.WriteString(style.Render(string(th.Symbols.KeyIdle)))
		}
	}
	return out.String()
}

// RenderProgressBar draws elapsed progress as a fixed-width bar.
func RenderProgressBar(frac float64, width int, th *theme.Theme) string {
	if width < 1 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	full := int(frac*float64(width) + 0.5)

	filled := lipgloss.NewStyle().Foreground(th.Accent()).
		Render(strings.Repeat(string(th.Symbols.BarFull), full))
	rest := lipgloss.NewStyle().Foreground(th.Muted()).
		Render(strings.Repeat(string(th.Symbols.BarEmpty), width-full))
	return filled + rest
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
