// Package adapter defines the statement adapter contract and the source
// registry that maps a source-type tag to its adapter constructor.
package adapter

import (
	"fmt"
	"sort"
	"strings"

	"card-ingest/internal/models"
)

// Adapter turns one raw statement input into canonical transactions.
//
// Implementations own every issuer-specific concern: column layouts, date
// formats, currency-sign stripping, and the filtering of issuer bookkeeping
// rows (payments to self, balance transfers, reward redemptions). The
// transactions they return satisfy models.Transaction.Validate.
type Adapter interface {
	// Load reads the input at path and returns canonical transactions.
	// Online sources ignore path. A malformed or unexpected layout yields
	// a descriptive *ingesterror.AdapterError.
	Load(path string) ([]models.Transaction, error)
}

// Entry describes one registered source.
type Entry struct {
	// New constructs a fresh adapter for one load.
	New func() Adapter

	// RequiresFile is false for online sources, which are pulled once per
	// run with no file input.
	RequiresFile bool

	// Description is the human-readable source name shown by the CLI.
	Description string
}

// Registry maps source-type tags to adapter entries. The tag on every
// emitted transaction selects which reference table applies downstream.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a source. Registering a duplicate tag panics; tags are
// wired once at startup.
func (r *Registry) Register(tag string, entry Entry) {
	if _, exists := r.entries[tag]; exists {
		panic(fmt.Sprintf("source type %q registered twice", tag))
	}
	r.entries[tag] = entry
}

// Get returns the entry for a tag, or an error naming the valid tags.
func (r *Registry) Get(tag string) (Entry, error) {
	entry, ok := r.entries[tag]
	if !ok {
		return Entry{}, fmt.Errorf("invalid source type: %s. Valid types are: %s",
			tag, strings.Join(r.Names(), ", "))
	}
	return entry, nil
}

// RequiresFile reports whether the source needs a file input.
func (r *Registry) RequiresFile(tag string) (bool, error) {
	entry, err := r.Get(tag)
	if err != nil {
		return false, err
	}
	return entry.RequiresFile, nil
}

// Names lists all registered tags, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description for a tag, or the tag itself when
// unknown.
func (r *Registry) Describe(tag string) string {
	if entry, ok := r.entries[tag]; ok {
		return entry.Description
	}
	return tag
}
