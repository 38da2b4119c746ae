package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Output backend names accepted in config files and on the command line
const (
	OutputBeep    = "beep"
	OutputPCM     = "pcm"
	OutputEvdev   = "evdev"
	OutputMIDI    = "midi"
	OutputSpeaker = "speaker"
	OutputDummy   = "dummy"
)

// Defaults shared between the config file and flag fallbacks
const (
	DefaultOutput      = OutputBeep
	DefaultEncoding    = "utf-8"
	DefaultBeepPath    = "beep"
	DefaultMaxArgBytes = 64 * 1024
	DefaultDevicePath  = "/dev/input/by-path/platform-pcspkr-event-spkr"
	DefaultFrameLayout = "native"
	DefaultSampleRate  = 48000
)

// BeepConfig defines how the external tone generator is invoked
type BeepConfig struct {
	Path        string `json:"path,omitempty"`        // executable to run
	MaxArgBytes int    `json:"maxArgBytes,omitempty"` // batch size cap per invocation
	Print       bool   `json:"print,omitempty"`       // echo command lines before running
}

// PCMConfig defines the raw sample sink
type PCMConfig struct {
	Path       string `json:"path,omitempty"` // output file, "-" or empty for stdout
	SampleRate int    `json:"sampleRate,omitempty"`
}

// DeviceConfig defines the kernel tone device
type DeviceConfig struct {
	Path   string `json:"path,omitempty"`
	Layout string `json:"layout,omitempty"` // event frame layout: native, le64, be64, le32, be32
}

// MIDIConfig defines the synth MIDI output
type MIDIConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  uint8  `json:"channel,omitempty"`
}

// SpeakerConfig defines local audio playback
type SpeakerConfig struct {
	SampleRate int `json:"sampleRate,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // path to a GIMP palette, empty for built-in
	Plain   bool   `json:"plain,omitempty"`   // skip the full-screen player
}

// Config is the main configuration structure
type Config struct {
	Output   string        `json:"output,omitempty"`
	Encoding string        `json:"encoding,omitempty"`
	Beep     BeepConfig    `json:"beep,omitempty"`
	PCM      PCMConfig     `json:"pcm,omitempty"`
	Device   DeviceConfig  `json:"device,omitempty"`
	MIDI     MIDIConfig    `json:"midi,omitempty"`
	Speaker  SpeakerConfig `json:"speaker,omitempty"`
	UI       UIConfig      `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output:   DefaultOutput,
		Encoding: DefaultEncoding,
		Beep: BeepConfig{
			Path:        DefaultBeepPath,
			MaxArgBytes: DefaultMaxArgBytes,
		},
		PCM: PCMConfig{
			SampleRate: DefaultSampleRate,
		},
		Device: DeviceConfig{
			Path:   DefaultDevicePath,
			Layout: DefaultFrameLayout,
		},
		Speaker: SpeakerConfig{
			SampleRate: DefaultSampleRate,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-playtune"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
// Fields absent from the file keep their default values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
