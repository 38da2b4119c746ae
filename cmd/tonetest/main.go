package main

import (
	"context"
	"fmt"
	"os"

	"go-playtune/config"
	"go-playtune/notation"
	"go-playtune/output"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "outputs":
		listOutputs()
	case "devices":
		listDevices()
	case "ports":
		listPorts()
	case "tone":
		playTone(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Tone Backend Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  outputs         - List registered output backends")
	fmt.Println("  devices         - List tone-capable kernel input devices")
	fmt.Println("  ports           - List MIDI output ports")
	fmt.Println("  tone [backend]  - Play one second of A440 through a backend")
}

func listOutputs() {
	for _, info := range output.List() {
		fmt.Printf("  %-8s %s\n", info.Name, info.Desc)
	}
}

func listDevices() {
	fmt.Println("=== Tone-capable input devices ===")

	lines, err := output.ListToneDevices()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(lines) == 0 {
		fmt.Println("  none found (is this Linux with the pcspkr module loaded?)")
		return
	}
	for _, l := range lines {
		fmt.Printf("  %s\n", l)
	}
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := output.ListMIDIPorts()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Println("  none")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func playTone(args []string) {
	name := config.DefaultOutput
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out, err := output.New(name, cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer out.Close()

	fmt.Printf("Playing A440 for one second through %s...\n", name)
	if err := out.Render(context.Background(), []notation.Event{notation.Note(440, 1000)}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}
