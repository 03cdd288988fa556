package reminder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// PermissionState tracks the notification permission decision.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
)

// PermissionGate answers whether notifications may be scheduled. A false
// result is not an error: the scheduler silently skips.
type PermissionGate interface {
	Request(ctx context.Context) (bool, error)
}

// StaticGate always answers with a fixed decision.
type StaticGate bool

func (g StaticGate) Request(context.Context) (bool, error) { return bool(g), nil }

// PromptGate asks the user once and persists the answer under the app state
// dir, so later runs never re-prompt.
type PromptGate struct {
	StatePath string
	In        io.Reader
	Out       io.Writer

	mu    sync.Mutex
	state PermissionState
}

func (g *PromptGate) Request(_ context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == PermissionUnknown {
		g.state = g.loadState()
	}
	if g.state != PermissionUnknown {
		return g.state == PermissionGranted, nil
	}

	fmt.Fprint(g.out(), "Allow caltrack to send desktop notifications? [y/N]: ")
	line, err := bufio.NewReader(g.in()).ReadString('\n')
	if err != nil && line == "" {
		g.state = PermissionDenied
	} else if answer := strings.ToLower(strings.TrimSpace(line)); answer == "y" || answer == "yes" {
		g.state = PermissionGranted
	} else {
		g.state = PermissionDenied
	}

	if err := g.saveState(); err != nil {
		return false, fmt.Errorf("persist notification permission: %w", err)
	}
	return g.state == PermissionGranted, nil
}

// State returns the current decision without prompting.
func (g *PromptGate) State() PermissionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == PermissionUnknown {
		g.state = g.loadState()
	}
	return g.state
}

func (g *PromptGate) loadState() PermissionState {
	raw, err := os.ReadFile(g.StatePath)
	if err != nil {
		return PermissionUnknown
	}
	switch strings.TrimSpace(string(raw)) {
	case "granted":
		return PermissionGranted
	case "denied":
		return PermissionDenied
	}
	return PermissionUnknown
}

func (g *PromptGate) saveState() error {
	value := "denied"
	if g.state == PermissionGranted {
		value = "granted"
	}
	return os.WriteFile(g.StatePath, []byte(value+"\n"), 0o600)
}

func (g *PromptGate) in() io.Reader {
	if g.In != nil {
		return g.In
	}
	return os.Stdin
}

func (g *PromptGate) out() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stderr
}
