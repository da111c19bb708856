package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"card-ingest/internal/ingesterror"
)

// MemoryTaxonomy is an in-memory TaxonomyStore for tests.
type MemoryTaxonomy struct {
	Cats    []Category
	Subcats []Subcategory
}

// NewMemoryTaxonomy builds a taxonomy from (category, subcategory) name
// pairs, assigning ids in order.
func NewMemoryTaxonomy(pairs ...[2]string) *MemoryTaxonomy {
	t := &MemoryTaxonomy{}
	catIDs := map[string]int64{}
	for _, pair := range pairs {
		catName, subName := pair[0], pair[1]
		catID, ok := catIDs[catName]
		if !ok {
			catID = int64(len(t.Cats) + 1)
			catIDs[catName] = catID
			t.Cats = append(t.Cats, Category{ID: catID, Name: catName})
		}
		t.Subcats = append(t.Subcats, Subcategory{
			ID:           int64(len(t.Subcats) + 1),
			Name:         subName,
			CategoryID:   catID,
			CategoryName: catName,
		})
	}
	return t
}

func (t *MemoryTaxonomy) Categories(ctx context.Context) ([]Category, error) {
	return t.Cats, nil
}

func (t *MemoryTaxonomy) SubcategoriesWithCategory(ctx context.Context) ([]Subcategory, error) {
	return t.Subcats, nil
}

func (t *MemoryTaxonomy) CategoryIDForSubcategory(ctx context.Context, subcategoryID int64) (int64, error) {
	for _, sc := range t.Subcats {
		if sc.ID == subcategoryID {
			return sc.CategoryID, nil
		}
	}
	return 0, &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: fmt.Sprintf("id %d", subcategoryID)}
}

func (t *MemoryTaxonomy) CategoryIDForName(ctx context.Context, name string) (int64, error) {
	for _, c := range t.Cats {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return 0, &ingesterror.TaxonomyLookupError{Kind: "category", Name: name}
}

func (t *MemoryTaxonomy) SubcategoryIDForName(ctx context.Context, name string) (int64, error) {
	for _, sc := range t.Subcats {
		if sc.Name == name {
			return sc.ID, nil
		}
	}
	return 0, &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: name}
}

func (t *MemoryTaxonomy) NamesForSubcategoryID(ctx context.Context, subcategoryID int64) (string, string, error) {
	for _, sc := range t.Subcats {
		if sc.ID == subcategoryID {
			return sc.CategoryName, sc.Name, nil
		}
	}
	return "", "", &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: fmt.Sprintf("id %d", subcategoryID)}
}

// memoryExpense is one persisted row in the in-memory expense store.
type memoryExpense struct {
	ID            int64
	Date          time.Time
	Merchant      string
	Cost          decimal.Decimal
	CategoryID    int64
	SubcategoryID *int64
}

// MemoryExpenses is an in-memory ExpenseStore for tests.
type MemoryExpenses struct {
	rows   []memoryExpense
	nextID int64

	// FailWith, when set, is returned from every method to simulate an
	// unavailable store.
	FailWith error
}

func (s *MemoryExpenses) Exists(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for _, r := range s.rows {
		if r.Date.Equal(date) && r.Merchant == merchant && r.Cost.Equal(cost) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryExpenses) ExistsForDate(ctx context.Context, date time.Time, merchant string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for _, r := range s.rows {
		if r.Date.Equal(date) && r.Merchant == merchant {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryExpenses) Insert(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal, categoryID int64, subcategoryID *int64) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.nextID++
	s.rows = append(s.rows, memoryExpense{
		ID:            s.nextID,
		Date:          date,
		Merchant:      merchant,
		Cost:          cost,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
	})
	return nil
}

func (s *MemoryExpenses) IDFor(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	for _, r := range s.rows {
		if r.Date.Equal(date) && r.Merchant == merchant && r.Cost.Equal(cost) {
			return r.ID, nil
		}
	}
	return 0, fmt.Errorf("no expense for %s / %s / %s", date.Format("2006-01-02"), merchant, cost)
}

func (s *MemoryExpenses) Delete(ctx context.Context, id int64) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no expense with id %d", id)
}

// Count returns the number of stored rows.
func (s *MemoryExpenses) Count() int {
	return len(s.rows)
}

// MemoryLearned is an in-memory LearnedMatchStore for tests.
type MemoryLearned struct {
	Exact      []LearnedMatch
	Substrings []LearnedMatch
}

func (s *MemoryLearned) ExactMatches(ctx context.Context, merchant string) ([]LearnedMatch, error) {
	var matches []LearnedMatch
	for _, m := range s.Exact {
		if m.Key == merchant {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (s *MemoryLearned) SubstringMatches(ctx context.Context, merchant string) ([]LearnedMatch, error) {
	lower := strings.ToLower(merchant)
	var matches []LearnedMatch
	for _, m := range s.Substrings {
		if strings.Contains(lower, m.Key) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (s *MemoryLearned) InsertExact(ctx context.Context, merchant, category, subcategory string) error {
	s.Exact = append(s.Exact, LearnedMatch{Key: merchant, Category: category, Subcategory: subcategory})
	return nil
}

func (s *MemoryLearned) InsertSubstring(ctx context.Context, substring, category, subcategory string) error {
	s.Substrings = append(s.Substrings, LearnedMatch{
		Key:         strings.ToLower(substring),
		Category:    category,
		Subcategory: subcategory,
	})
	return nil
}
