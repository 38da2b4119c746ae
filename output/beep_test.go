package output

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-playtune/notation"
)

func TestBeepGroups(t *testing.T) {
	tests := []struct {
		name   string
		events []notation.Event
		groups [][]string
	}{
		{
			name:   "note with trailing gap",
			events: []notation.Event{notation.Note(440, 437.5), notation.Rest(62.5)},
			groups: [][]string{{"-f", "440.000", "-l", "437.500", "-D", "62.500"}},
		},
		{
			name:   "legato notes",
			events: []notation.Event{notation.Note(440, 500), notation.Note(880, 500)},
			groups: [][]string{
				{"-f", "440.000", "-l", "500.000"},
				{"-f", "880.000", "-l", "500.000"},
			},
		},
		{
			name:   "leading rest stands alone",
			events: []notation.Event{notation.Rest(250), notation.Note(440, 500)},
			groups: [][]string{
				{"-f", "1", "-l", "0", "-D", "250.000"},
				{"-f", "440.000", "-l", "500.000"},
			},
		},
		{
			name: "second rest in a row stands alone",
			events: []notation.Event{
				notation.Note(440, 437.5),
				notation.Rest(62.5),
				notation.Rest(500),
			},
			groups: [][]string{
				{"-f", "440.000", "-l", "437.500", "-D", "62.500"},
				{"-f", "1", "-l", "0", "-D", "500.000"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.groups, beepGroups(tt.events))
		})
	}
}

func TestBatchArgs(t *testing.T) {
	g := []string{"-f", "440.000", "-l", "500.000"} // 22 argument bytes
	require.Equal(t, 22, argBytes(g))

	// Two groups and their "-n" joiner fit exactly into 47 bytes.
	batches := batchArgs([][]string{g, g}, 47)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"-f", "440.000", "-l", "500.000", "-n", "-f", "440.000", "-l", "500.000"}, batches[0])

	// One byte less forces a second invocation.
	batches = batchArgs([][]string{g, g}, 46)
	require.Len(t, batches, 2)
	assert.Equal(t, g, batches[0])
	assert.Equal(t, g, batches[1])
}

func TestBatchArgsNeverSplitsGroups(t *testing.T) {
	// A group bigger than the cap still goes out, alone.
	g := []string{"-f", "440.000", "-l", "500.000"}
	batches := batchArgs([][]string{g}, 10)
	require.Len(t, batches, 1)
	assert.Equal(t, g, batches[0])
}

func TestBatchArgsPreservesOrder(t *testing.T) {
	events, err := notation.Interpret("t120 l8 o4 c d e f g a b > c d e f g a b")
	require.NoError(t, err)
	groups := beepGroups(events)

	var flat []string
	for _, g := range groups {
		flat = append(flat, g...)
	}

	batches := batchArgs(groups, 64)
	var rejoined []string
	for _, batch := range batches {
		require.LessOrEqual(t, argBytes(batch), 64)
		for _, a := range batch {
			if a != "-n" {
				rejoined = append(rejoined, a)
			}
		}
	}
	assert.Equal(t, flat, rejoined)
	assert.Greater(t, len(batches), 1) // the cap actually bit
}

func TestBeepPreview(t *testing.T) {
	o := &BeepOutput{path: "beep", maxBytes: 64 * 1024}
	events := []notation.Event{notation.Note(440, 437.5), notation.Rest(62.5), notation.Note(880, 437.5)}

	var sb strings.Builder
	require.NoError(t, o.Preview(&sb, events))
	assert.Equal(t, "beep -f 440.000 -l 437.500 -D 62.500 -n -f 880.000 -l 437.500\n", sb.String())
}

func TestBeepPreviewSplitsAtCap(t *testing.T) {
	o := &BeepOutput{path: "beep", maxBytes: 30}
	events := []notation.Event{notation.Note(440, 500), notation.Note(880, 500)}

	var sb strings.Builder
	require.NoError(t, o.Preview(&sb, events))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"beep -f 440.000 -l 500.000",
		"beep -f 880.000 -l 500.000",
	}, lines)
}

func TestBeepRenderEchoesCommandLines(t *testing.T) {
	var sb strings.Builder
	o := &BeepOutput{path: "true", maxBytes: 64 * 1024, print: true, echo: &sb}

	events := []notation.Event{notation.Note(440, 500)}
	require.NoError(t, o.Render(context.Background(), events))
	assert.Equal(t, "true -f 440.000 -l 500.000\n", sb.String())
}

func TestBeepRunReportsStderr(t *testing.T) {
	o := &BeepOutput{path: "sh"}
	err := o.run(context.Background(), []string{"-c", "echo no speaker device >&2; exit 3"})

	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "run sh", rerr.Op)
	assert.Contains(t, err.Error(), "no speaker device")
}

func TestBeepRunCancelStopsTheChild(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()

	o := &BeepOutput{path: "sleep"}
	start := time.Now()
	err := o.run(ctx, []string{"5"})

	// The context error wins over the child's death-by-signal exit.
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}
