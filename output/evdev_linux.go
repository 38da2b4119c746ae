//go:build linux

package output

import (
	"fmt"
	"io"
	"os"

	evdev "github.com/gvalkov/golang-evdev"
)

// openToneDevice checks that path is an input device able to produce
// sound, then reopens it write-only. The evdev package opens devices
// read-only, which suits identification but not injection, so the
// write handle is a plain file.
func openToneDevice(path string) (io.WriteCloser, string, error) {
	id, err := evdev.Open(path)
	if err != nil {
		return nil, "", err
	}
	name := id.Name
	canTone := hasSound(id)
	id.File.Close()

	if !canTone {
		return nil, "", fmt.Errorf("%s (%s) has no sound capability", path, name)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, "", err
	}
	return f, name, nil
}

// ListToneDevices scans the input devices the kernel exposes and
// returns "path<tab>name" lines for those that can produce sound.
func ListToneDevices() ([]string, error) {
	devices, err := evdev.ListInputDevices()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, dev := range devices {
		if hasSound(dev) {
			lines = append(lines, fmt.Sprintf("%s\t%s", dev.Fn, dev.Name))
		}
		dev.File.Close()
	}
	return lines, nil
}

func hasSound(dev *evdev.InputDevice) bool {
	for capType := range dev.Capabilities {
		if capType.Type == evdev.EV_SND {
			return true
		}
	}
	return false
}
