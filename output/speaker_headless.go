//go:build headless

package output

import (
	"errors"

	"go-playtune/config"
)

func init() {
	Register(config.OutputSpeaker, "local sound card (not in this build)", NewSpeaker)
}

// NewSpeaker always fails: headless builds link no audio stack. The
// name stays registered so listings and error messages match the full
// build.
func NewSpeaker(cfg *config.Config) (Output, error) {
	return nil, &ResourceError{Op: "open sound device", Err: errors.New("built without speaker support")}
}
