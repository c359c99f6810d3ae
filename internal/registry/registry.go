// Package registry maps game IDs to factories. Game packages register
// themselves from init(), so the CLI and the terminal platform can create
// a game by name without importing it directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lane-racer/internal/core"
)

// Game is what the terminal platform drives once per tick.
// Implementations hold pure simulation state; the platform owns timing,
// key mapping and the terminal itself.
type Game interface {
	// ID returns a unique identifier, used on the command line and as the
	// key for score history.
	ID() string

	// Title returns a human-readable name for menus and listings.
	Title() string

	// Reset sizes the game to the screen and starts a fresh run.
	// Called once at start and again whenever the screen is resized.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State returns the current score and flags.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet Reset, game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory to the registry.
// Panics if the ID is empty or already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
