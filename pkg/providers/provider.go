// Package providers keeps a registry of named feed sources.
package providers

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mk270/gemfeed2atom/pkg/feed"
)

// FeedProvider defines the interface for a feed source.
type FeedProvider interface {
	// BuildFeed assembles the feed document without writing it anywhere.
	BuildFeed() (*feed.AtomFeed, error)
	// GenerateFeed builds the feed and writes it to outfile.
	GenerateFeed(outfile string) error
}

// ProviderFactory creates a new instance of a provider.
type ProviderFactory func(config any) (FeedProvider, error)

// ProviderInfo contains metadata about a provider.
type ProviderInfo struct {
	Name        string
	Description string
	Version     string
	Factory     ProviderFactory
}

// ProviderRegistry manages registered feed providers.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]*ProviderInfo
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]*ProviderInfo),
	}
}

// Register adds a provider to the registry.
func (r *ProviderRegistry) Register(name string, info *ProviderInfo) error {
	if info == nil || info.Factory == nil {
		return fmt.Errorf("provider %s has no factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s is already registered", name)
	}

	r.providers[name] = info
	return nil
}

// Get retrieves a provider by name.
func (r *ProviderRegistry) Get(name string) (*ProviderInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider %s not found (registered: %s)", name, strings.Join(r.names(), ", "))
	}

	return info, nil
}

// List returns all registered provider names in sorted order.
func (r *ProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.names()
}

// names expects r.mu to be held.
func (r *ProviderRegistry) names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// CreateProvider creates a new instance of the specified provider.
func (r *ProviderRegistry) CreateProvider(name string, config any) (FeedProvider, error) {
	info, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	return info.Factory(config)
}

// DefaultRegistry is the process-wide registry providers add themselves to.
var DefaultRegistry = NewProviderRegistry()

// MustRegister adds a provider to DefaultRegistry from a provider's init().
// It panics if the name is taken or the info has no factory.
func MustRegister(name string, info *ProviderInfo) {
	if err := DefaultRegistry.Register(name, info); err != nil {
		panic(fmt.Sprintf("providers: %v", err))
	}
}

// CreateProvider creates a provider from DefaultRegistry.
func CreateProvider(name string, config any) (FeedProvider, error) {
	return DefaultRegistry.CreateProvider(name, config)
}
