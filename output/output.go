// Package output renders timed note events through interchangeable
// backends: an external tone generator, raw PCM samples, the kernel
// speaker device, a MIDI synth or the local sound card. Backends
// register themselves by name; the player picks one at runtime.
package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go-playtune/config"
	"go-playtune/notation"
)

// Output plays a fully parsed tune. Render blocks until the tune has
// been performed or ctx is cancelled; it is called at most once per
// Output. Close releases the backend and must be called even after a
// failed Render.
type Output interface {
	Render(ctx context.Context, events []notation.Event) error
	Close() error
}

// Previewer is implemented by backends that can show what they would
// do without doing it.
type Previewer interface {
	Preview(w io.Writer, events []notation.Event) error
}

// StdoutWriter is implemented by backends whose payload goes to
// standard output, where a full-screen view would trample it.
type StdoutWriter interface {
	WritesStdout() bool
}

// Factory builds a backend from the loaded configuration.
type Factory func(cfg *config.Config) (Output, error)

// Info describes a registered backend for listings.
type Info struct {
	Name string
	Desc string
}

var (
	regMu     sync.RWMutex
	factories = make(map[string]Factory)
	descs     = make(map[string]string)
)

// Register makes a backend available under a name. Backends call it
// from init; registering the same name twice panics.
func Register(name, desc string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()

	if _, dup := factories[name]; dup {
		panic("output: duplicate backend " + name)
	}
	factories[name] = f
	descs[name] = desc
}

// New builds the named backend from cfg.
func New(name string, cfg *config.Config) (Output, error) {
	regMu.RLock()
	f, ok := factories[name]
	regMu.RUnlock()

	if !ok {
		var names []string
		for _, info := range List() {
			names = append(names, info.Name)
		}
		return nil, fmt.Errorf("unknown output %q (have %s)", name, strings.Join(names, ", "))
	}
	return f(cfg)
}

// List returns all registered backends sorted by name.
func List() []Info {
	regMu.RLock()
	defer regMu.RUnlock()

	infos := make([]Info, 0, len(factories))
	for name := range factories {
		infos = append(infos, Info{Name: name, Desc: descs[name]})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// ResourceError wraps a failure to reach the thing a backend renders
// through: a missing executable, an unwritable device, a closed port.
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
