package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"card-ingest/internal/ingesterror"
)

// PostgresStore implements TaxonomyStore, ExpenseStore and LearnedMatchStore
// against a single Postgres database.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Connect opens a pgx pool for the given URL and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &ingesterror.StoreUnavailableError{Op: "connect", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &ingesterror.StoreUnavailableError{Op: "ping", Err: err}
	}
	return pool, nil
}

func storeErr(op string, err error) error {
	return &ingesterror.StoreUnavailableError{Op: op, Err: err}
}

// === TaxonomyStore ===

func (s *PostgresStore) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, storeErr("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}
	return categories, nil
}

func (s *PostgresStore) SubcategoriesWithCategory(ctx context.Context) ([]Subcategory, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.name, s.category_id, c.name
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		ORDER BY c.name, s.name
	`)
	if err != nil {
		return nil, storeErr("list subcategories", err)
	}
	defer rows.Close()

	var subcategories []Subcategory
	for rows.Next() {
		var sc Subcategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.CategoryName); err != nil {
			return nil, storeErr("scan subcategory", err)
		}
		subcategories = append(subcategories, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list subcategories", err)
	}
	return subcategories, nil
}

func (s *PostgresStore) CategoryIDForSubcategory(ctx context.Context, subcategoryID int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"SELECT category_id FROM subcategories WHERE id = $1", subcategoryID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: fmt.Sprintf("id %d", subcategoryID)}
	}
	if err != nil {
		return 0, storeErr("category for subcategory", err)
	}
	return id, nil
}

func (s *PostgresStore) CategoryIDForName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"SELECT id FROM categories WHERE LOWER(name) = LOWER($1)", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &ingesterror.TaxonomyLookupError{Kind: "category", Name: name}
	}
	if err != nil {
		return 0, storeErr("category id for name", err)
	}
	return id, nil
}

func (s *PostgresStore) SubcategoryIDForName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"SELECT id FROM subcategories WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: name}
	}
	if err != nil {
		return 0, storeErr("subcategory id for name", err)
	}
	return id, nil
}

func (s *PostgresStore) NamesForSubcategoryID(ctx context.Context, subcategoryID int64) (string, string, error) {
	var category, subcategory string
	err := s.db.QueryRow(ctx, `
		SELECT c.name, s.name
		FROM categories c
		JOIN subcategories s ON c.id = s.category_id
		WHERE s.id = $1
	`, subcategoryID).Scan(&category, &subcategory)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", &ingesterror.TaxonomyLookupError{Kind: "subcategory", Name: fmt.Sprintf("id %d", subcategoryID)}
	}
	if err != nil {
		return "", "", storeErr("names for subcategory", err)
	}
	return category, subcategory, nil
}

// === ExpenseStore ===

func (s *PostgresStore) Exists(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM expenses WHERE date = $1 AND merchant = $2 AND cost = $3
		)
	`, date, merchant, cost).Scan(&exists)
	if err != nil {
		return false, storeErr("expense exists", err)
	}
	return exists, nil
}

func (s *PostgresStore) ExistsForDate(ctx context.Context, date time.Time, merchant string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM expenses WHERE date = $1 AND merchant = $2
		)
	`, date, merchant).Scan(&exists)
	if err != nil {
		return false, storeErr("expense exists for date", err)
	}
	return exists, nil
}

func (s *PostgresStore) Insert(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal, categoryID int64, subcategoryID *int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO expenses (date, merchant, cost, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5)
	`, date, merchant, cost, categoryID, subcategoryID)
	if err != nil {
		return storeErr("insert expense", err)
	}
	return nil
}

func (s *PostgresStore) IDFor(ctx context.Context, date time.Time, merchant string, cost decimal.Decimal) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		"SELECT id FROM expenses WHERE date = $1 AND merchant = $2 AND cost = $3",
		date, merchant, cost).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("no expense for %s / %s / %s", date.Format("2006-01-02"), merchant, cost)
	}
	if err != nil {
		return 0, storeErr("expense id", err)
	}
	return id, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return storeErr("delete expense", err)
	}
	return nil
}

// === LearnedMatchStore ===

func (s *PostgresStore) ExactMatches(ctx context.Context, merchant string) ([]LearnedMatch, error) {
	rows, err := s.db.Query(ctx, `
		SELECT merchant_name, merchant_category, merchant_subcategory
		FROM merchant_name_auto_match
		WHERE merchant_name = $1
	`, merchant)
	if err != nil {
		return nil, storeErr("exact match lookup", err)
	}
	defer rows.Close()
	return scanMatches(rows, "exact match lookup")
}

func (s *PostgresStore) SubstringMatches(ctx context.Context, merchant string) ([]LearnedMatch, error) {
	// The substring table is small; containment is tested in Go against the
	// lowercased merchant, mirroring how entries were taught.
	rows, err := s.db.Query(ctx, `
		SELECT substring, merchant_category, merchant_subcategory
		FROM substring_auto_match
	`)
	if err != nil {
		return nil, storeErr("substring match lookup", err)
	}
	defer rows.Close()

	all, err := scanMatches(rows, "substring match lookup")
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(merchant)
	var matches []LearnedMatch
	for _, m := range all {
		if strings.Contains(lower, m.Key) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (s *PostgresStore) InsertExact(ctx context.Context, merchant, category, subcategory string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO merchant_name_auto_match (merchant_name, merchant_category, merchant_subcategory)
		VALUES ($1, $2, $3)
	`, merchant, category, subcategory)
	if err != nil {
		return storeErr("insert exact match", err)
	}
	return nil
}

func (s *PostgresStore) InsertSubstring(ctx context.Context, substring, category, subcategory string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO substring_auto_match (substring, merchant_category, merchant_subcategory)
		VALUES ($1, $2, $3)
	`, strings.ToLower(substring), category, subcategory)
	if err != nil {
		return storeErr("insert substring match", err)
	}
	return nil
}

func scanMatches(rows pgx.Rows, op string) ([]LearnedMatch, error) {
	var matches []LearnedMatch
	for rows.Next() {
		var m LearnedMatch
		if err := rows.Scan(&m.Key, &m.Category, &m.Subcategory); err != nil {
			return nil, storeErr(op, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return matches, nil
}
