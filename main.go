// go-playtune performs tunes written in the classic PLAY notation:
// letters for notes, O/L/T for octave, length and tempo. Tunes come
// from files or stdin and play through a selectable backend: the
// beep(1) tone generator, raw PCM samples, the kernel speaker device,
// a MIDI synth or the local sound card.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"go-playtune/config"
	"go-playtune/debug"
	"go-playtune/output"
	"go-playtune/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "go-playtune: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags default to the config file so either works alone
	outputName := flag.String("output", cfg.Output, "backend to play through (go-playtune list)")
	encoding := flag.String("encoding", cfg.Encoding, "text encoding of the tune files")
	noRun := flag.Bool("no-run", false, "show what would be played without playing it")
	printCmds := flag.Bool("print", cfg.Beep.Print, "echo beep command lines while playing")
	plain := flag.Bool("plain", cfg.UI.Plain, "play without the full-screen view")
	debugLog := flag.Bool("debug", false, "write a debug log under ~/.config/go-playtune")

	beepPath := flag.String("beep-path", cfg.Beep.Path, "tone generator executable")
	pcmPath := flag.String("pcm-path", cfg.PCM.Path, "sample sink path, - for stdout")
	rate := flag.Int("rate", cfg.PCM.SampleRate, "pcm sample rate in Hz")
	devicePath := flag.String("device", cfg.Device.Path, "kernel tone device")
	layout := flag.String("layout", cfg.Device.Layout, "device frame layout: native, le64, be64, le32, be32")
	midiPort := flag.String("midi-port", cfg.MIDI.PortName, "substring of the MIDI port to play through")

	flag.Usage = usage
	flag.Parse()

	if *debugLog {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	args := flag.Args()
	if *outputName == "list" || len(args) == 1 && args[0] == "list" {
		// cfg.Output still holds the configured default here
		return listOutputs(cfg)
	}

	cfg.Output = *outputName
	cfg.Encoding = *encoding
	cfg.Beep.Path = *beepPath
	cfg.Beep.Print = *printCmds
	cfg.PCM.Path = *pcmPath
	cfg.PCM.SampleRate = *rate
	cfg.Device.Path = *devicePath
	cfg.Device.Layout = *layout
	cfg.MIDI.PortName = *midiPort
	cfg.UI.Plain = *plain

	sources, err := readInputs(args, cfg.Encoding)
	if err != nil {
		return err
	}
	events, err := interpretAll(sources)
	if err != nil {
		return err
	}
	debug.Log("play", "%d events from %d sources", len(events), len(sources))

	return renderSession(cfg, sessionTitle(sources), events, *noRun)
}

func sessionTitle(sources []source) string {
	if len(sources) == 1 {
		return sources[0].name
	}
	return fmt.Sprintf("%d tunes", len(sources))
}

// listOutputs prints the registered backends, marking the configured
// default.
func listOutputs(cfg *config.Config) error {
	th := theme.New(loadPalette(cfg))
	nameStyle := lipgloss.NewStyle().Foreground(th.Accent()).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(th.FG())
	markStyle := lipgloss.NewStyle().Foreground(th.Success())

	for _, info := range output.List() {
		line := nameStyle.Render(fmt.Sprintf("%-8s", info.Name)) + descStyle.Render(info.Desc)
		if info.Name == cfg.Output {
			line += markStyle.Render("  [default]")
		}
		fmt.Println(line)
	}
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: go-playtune [flags] [file ...]
       go-playtune [flags] list

Plays PLAY-notation tunes from files or stdin. "list" shows the
available output backends.

`)
	flag.PrintDefaults()
}
