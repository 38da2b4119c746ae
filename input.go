package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"go-playtune/notation"
)

// source is one tune to perform: where it came from and its decoded
// text.
type source struct {
	name string
	text string
}

// readInputs loads each named file, or stdin when no names are given
// ("-" also means stdin). Bytes are decoded from the configured
// encoding; tune files predate UTF-8 and often arrive as Latin-1 or
// CP437 out of DOS archives.
func readInputs(paths []string, encoding string) ([]source, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var sources []source
	for _, path := range paths {
		name := path
		var raw []byte
		var err error
		if path == "-" {
			name = "stdin"
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		text, err := decode(raw, encoding)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sources = append(sources, source{name: name, text: text})
	}
	return sources, nil
}

// interpretAll parses every source with fresh performance state and
// joins the tunes in order. Any error abandons the whole run; nothing
// plays unless everything parses.
func interpretAll(sources []source) ([]notation.Event, error) {
	var events []notation.Event
	for _, src := range sources {
		evs, err := notation.Interpret(src.text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.name, err)
		}
		events = append(events, evs...)
	}
	return events, nil
}

func decode(raw []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return string(raw), nil
	}

	cm, err := lookupCharmap(encoding)
	if err != nil {
		return "", err
	}
	text, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func lookupCharmap(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(name) {
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "cp437", "ibm437":
		return charmap.CodePage437, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}
