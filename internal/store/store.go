// Package store defines the persistence boundaries of the ingestion engine:
// the expense table, the category taxonomy and the learned-match tables.
// Postgres implementations live in postgres.go; in-memory implementations
// for tests live in memory.go.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a taxonomy entity. Ids are storage-layer accidents; names are
// the stable key across sessions.
type Category struct {
	ID   int64
	Name string
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID           int64
	Name         string
	CategoryID   int64
	CategoryName string
}

// LearnedMatch is one row of a learned-match table. Key is either a full
// merchant string (exact table) or a lowercase substring (substring table).
type LearnedMatch struct {
	Key         string
	Category    string
	Subcategory string
}

// TaxonomyStore reads the category/subcategory taxonomy. Lookups happen at
// insert time, never cached across runs, because the taxonomy can change
// between invocations.
type TaxonomyStore interface {
	// Categories lists all categories.
	Categories(ctx context.Context) ([]Category, error)

	// SubcategoriesWithCategory lists all subcategories joined with their
	// category name, for presentation during manual selection.
	SubcategoriesWithCategory(ctx context.Context) ([]Subcategory, error)

	// CategoryIDForSubcategory returns the owning category id.
	CategoryIDForSubcategory(ctx context.Context, subcategoryID int64) (int64, error)

	// CategoryIDForName resolves a category name to its id,
	// case-insensitively. Category-only decisions insert through this.
	CategoryIDForName(ctx context.Context, name string) (int64, error)

	// SubcategoryIDForName resolves a subcategory name to its id.
	SubcategoryIDForName(ctx context.Context, name string) (int64, error)

	// NamesForSubcategoryID returns the (category, subcategory) names for a
	// subcategory id, used when teaching a manually selected mapping.
	NamesForSubcategoryID(ctx context.Context, subcategoryID int64) (category, subcategory string, err error)
}

// ExpenseStore persists expense rows, uniquely identified in practice by the
// natural key (date, merchant, cost).
type ExpenseStore interface {
	// Exists checks the full natural key.
	Exists(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (bool, error)

	// ExistsForDate is the cost-agnostic variant used by the reimbursement
	// re-check.
	ExistsForDate(ctx context.Context, date time.Time, merchant string) (bool, error)

	// Insert writes a new expense row. subcategoryID may be nil for stores
	// that only track categories.
	Insert(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal, categoryID int64, subcategoryID *int64) error

	// IDFor returns the id of the expense matching the natural key.
	IDFor(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (int64, error)

	// Delete removes an expense row by id.
	Delete(ctx context.Context, id int64) error
}

// LearnedMatchStore persists merchant-to-category mappings confirmed by the
// operator. Entries grow monotonically; there is no expiry.
type LearnedMatchStore interface {
	// ExactMatches returns every exact-table row whose key equals the
	// merchant verbatim. More than one row is a data-integrity fault the
	// caller must surface.
	ExactMatches(ctx context.Context, merchant string) ([]LearnedMatch, error)

	// SubstringMatches returns every substring-table row whose key is
	// contained in the lowercased merchant.
	SubstringMatches(ctx context.Context, merchant string) ([]LearnedMatch, error)

	// InsertExact stores a full-merchant-string mapping.
	InsertExact(ctx context.Context, merchant, category, subcategory string) error

	// InsertSubstring stores a lowercase-substring mapping.
	InsertSubstring(ctx context.Context, substring, category, subcategory string) error
}
