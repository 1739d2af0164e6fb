// Package registry provides a global registry of storage drivers.
// Drivers register themselves in init() functions, allowing the CLI
// to open a store by name without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/persist"
)

// ErrUnknownDriver is returned by Open for names nobody registered.
var ErrUnknownDriver = errors.New("registry: unknown storage driver")

// Options are passed to a driver factory.
type Options struct {
	// Path is the driver's on-disk location, already expanded.
	// Drivers that keep nothing on disk ignore it.
	Path string

	// Logger receives driver diagnostics. May be nil.
	Logger *log.Logger
}

// Factory opens a store.
type Factory func(opts Options) (persist.Store, error)

// DriverInfo contains metadata about a registered driver.
type DriverInfo struct {
	Name        string
	Description string
}

type driver struct {
	factory     Factory
	description string
}

var (
	drivers = make(map[string]driver)
	mu      sync.RWMutex
)

// Register adds a storage driver.
// Typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if f == nil {
		panic(fmt.Sprintf("registry: driver %q has nil factory", name))
	}
	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("registry: driver %q already registered", name))
	}

	drivers[name] = driver{factory: f, description: description}
}

// List returns all registered drivers, sorted by name.
func List() []DriverInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DriverInfo, 0, len(drivers))
	for name, d := range drivers {
		result = append(result, DriverInfo{
			Name:        name,
			Description: d.description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Open creates a store with the named driver.
func Open(name string, opts Options) (persist.Store, error) {
	mu.RLock()
	d, ok := drivers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, name)
	}

	store, err := d.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", name, err)
	}
	return store, nil
}

// Exists checks if a driver with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := drivers[name]
	return ok
}
