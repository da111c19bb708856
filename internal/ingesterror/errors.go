// Package ingesterror defines the error taxonomy for statement loading,
// category resolution and expense ingestion.
package ingesterror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrManualRequired signals that a transaction could not be resolved
// automatically and a human decision is needed. In unattended mode callers
// count and skip instead of prompting.
var ErrManualRequired = errors.New("manual categorization required")

// AdapterError represents a malformed or unexpected source layout.
// It is fatal to the single input that produced it; the batch continues.
type AdapterError struct {
	SourceType string
	FilePath   string
	Reason     string
	Err        error
}

func (e *AdapterError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s: cannot load %s: %s", e.SourceType, e.FilePath, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.SourceType, e.Reason)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// CategorizationConflictError represents an ambiguous learned match: more
// than one table entry matched a merchant. It is never resolved silently;
// the transaction degrades to manual input.
type CategorizationConflictError struct {
	Merchant   string
	Table      string
	Candidates []string
}

func (e *CategorizationConflictError) Error() string {
	return fmt.Sprintf("multiple %s matches for %q: %s",
		e.Table, e.Merchant, strings.Join(e.Candidates, ", "))
}

// TaxonomyLookupError represents a category or subcategory name that is not
// present in the taxonomy store. Fatal to that transaction's insert only.
type TaxonomyLookupError struct {
	Kind string // "category" or "subcategory"
	Name string
	Err  error
}

func (e *TaxonomyLookupError) Error() string {
	return fmt.Sprintf("%s %q not found in taxonomy", e.Kind, e.Name)
}

func (e *TaxonomyLookupError) Unwrap() error {
	return e.Err
}

// StoreUnavailableError represents a connectivity or transport fault talking
// to the persistent store. Fatal to the whole batch.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a CategorizationConflictError anywhere
// in its chain.
func IsConflict(err error) bool {
	var conflict *CategorizationConflictError
	return errors.As(err, &conflict)
}

// IsTaxonomyLookup reports whether err is a TaxonomyLookupError anywhere in
// its chain.
func IsTaxonomyLookup(err error) bool {
	var lookup *TaxonomyLookupError
	return errors.As(err, &lookup)
}

// IsStoreUnavailable reports whether err is a StoreUnavailableError anywhere
// in its chain.
func IsStoreUnavailable(err error) bool {
	var unavailable *StoreUnavailableError
	return errors.As(err, &unavailable)
}
