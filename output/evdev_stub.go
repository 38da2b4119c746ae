//go:build !linux

package output

import (
	"io"
	"os"
)

// openToneDevice opens path write-only without capability checks;
// only Linux exposes the input subsystem those checks need. Injecting
// frames this way still works under compatibility layers that emulate
// the device node.
func openToneDevice(path string) (io.WriteCloser, string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// ListToneDevices reports nothing off Linux.
func ListToneDevices() ([]string, error) {
	return nil, nil
}
