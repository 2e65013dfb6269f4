package index

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/uol/gobol"
)

//
// A registry of item providers keyed on item type, used to resolve the
// type and type.id arguments of the indexing command.
//

const (
	cFuncResolveID string = "ResolveID"
	cFuncProvider  string = "Provider"
)

// Registry - all known item providers
type Registry struct {
	mutex     sync.RWMutex
	providers map[string]Provider
}

// NewRegistry - creates an empty provider registry
func NewRegistry() *Registry {

	return &Registry{
		providers: map[string]Provider{},
	}
}

// Register - adds a provider under its item type, replacing any previous
// provider of the same type
func (r *Registry) Register(provider Provider) {

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.providers[provider.ItemType()] = provider
}

// Provider - returns the provider for an item type
func (r *Registry) Provider(itemType string) (Provider, gobol.Error) {

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	provider, found := r.providers[itemType]
	if !found {
		return nil, errNotFound(cFuncProvider, fmt.Errorf("unknown item type: %s", itemType))
	}

	return provider, nil
}

// Types - returns every registered item type, sorted
func (r *Registry) Types() []string {

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	types := make([]string, 0, len(r.providers))
	for itemType := range r.providers {
		types = append(types, itemType)
	}

	sort.Strings(types)

	return types
}

// ResolveID - resolves a type.id argument to a single item
func (r *Registry) ResolveID(ctx context.Context, compoundID string) (Indexable, gobol.Error) {

	parts := strings.SplitN(compoundID, IDSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, errBadRequest(cFuncResolveID, fmt.Errorf("malformed item id: %s", compoundID))
	}

	provider, gerr := r.Provider(parts[0])
	if gerr != nil {
		return nil, gerr
	}

	item, gerr := provider.Get(ctx, parts[1])
	if gerr != nil {
		return nil, gerr
	}

	if item == nil {
		return nil, errNotFound(cFuncResolveID, fmt.Errorf("item not found: %s", compoundID))
	}

	return item, nil
}
