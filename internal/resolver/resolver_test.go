package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-ingest/internal/ingesterror"
	"card-ingest/internal/models"
	"card-ingest/internal/refdata"
	"card-ingest/internal/store"
)

func testTransaction(sourceType, merchant, issuerCategory string) models.Transaction {
	return models.Transaction{
		Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Merchant:       merchant,
		Cost:           decimal.NewFromFloat(10.00),
		IssuerCategory: issuerCategory,
		SourceType:     sourceType,
	}
}

func testTaxonomy() *store.MemoryTaxonomy {
	return store.NewMemoryTaxonomy(
		[2]string{"Food", "Eating Out"},
		[2]string{"Food", "Grocery"},
		[2]string{"Commuting", "Transit"},
	)
}

func TestFixedSourceBypassesEverything(t *testing.T) {
	learned := &store.MemoryLearned{}
	// A learned entry that would otherwise match.
	require.NoError(t, learned.InsertExact(context.Background(), "SUSHI PLACE", "Wrong", "Wrong"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(), testTransaction("simplii_visa", "SUSHI PLACE", ""))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
	assert.Equal(t, "Eating Out", decision.Subcategory)
	assert.Equal(t, models.ProvenanceExactReference, decision.Provenance)
}

func TestIssuerCategoryReference(t *testing.T) {
	r := New(refdata.Defaults(), testTaxonomy(), &store.MemoryLearned{}, nil)

	decision, resolved, err := r.Resolve(context.Background(),
		testTransaction("rogers", "METRO 123", "Grocery Stores and Supermarkets"))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
	assert.Equal(t, "Grocery", decision.Subcategory)
	assert.Equal(t, models.ProvenanceIssuerReference, decision.Provenance)
}

func TestStaticReferenceBeatsLearned(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertExact(context.Background(), "METRO 123", "Wrong", "Wrong"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(),
		testTransaction("rogers", "METRO 123", "Grocery Stores and Supermarkets"))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
}

func TestCuratedSubstringReference(t *testing.T) {
	r := New(refdata.Defaults(), testTaxonomy(), &store.MemoryLearned{}, nil)

	decision, resolved, err := r.Resolve(context.Background(),
		testTransaction("amex", "PRESTO FARE TORONTO", ""))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Commuting", decision.Category)
	assert.Equal(t, "Transit", decision.Subcategory)
}

func TestIssuerHintAsCategoryName(t *testing.T) {
	// Ledger workbooks carry their account code as the issuer hint; a code
	// that names a taxonomy category resolves without a human.
	r := New(refdata.Defaults(), testTaxonomy(), &store.MemoryLearned{}, nil)

	decision, resolved, err := r.Resolve(context.Background(),
		testTransaction("ledger", "LOBLAWS 1130", "Food"))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
	assert.Empty(t, decision.Subcategory)
	assert.Equal(t, models.ProvenanceIssuerReference, decision.Provenance)
}

func TestCategoryNameHintBeatsLearned(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertExact(context.Background(), "LOBLAWS 1130", "Wrong", "Wrong"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(),
		testTransaction("ledger", "LOBLAWS 1130", "Food"))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
}

func TestUnknownIssuerHintFallsThrough(t *testing.T) {
	r := New(refdata.Defaults(), testTaxonomy(), &store.MemoryLearned{}, nil)

	_, resolved, err := r.Resolve(context.Background(),
		testTransaction("ledger", "SOME MERCHANT", "NOT A CATEGORY"))
	require.NoError(t, err)
	assert.False(t, resolved)
}

func TestLearnedExactMatch(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertExact(context.Background(), "SUSHI PLACE", "Food", "Eating Out"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "SUSHI PLACE", ""))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, "Food", decision.Category)
	assert.Equal(t, models.ProvenanceLearnedExact, decision.Provenance)
}

func TestLearnedExactBeatsSubstring(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertExact(context.Background(), "SUSHI PLACE", "Food", "Eating Out"))
	require.NoError(t, learned.InsertSubstring(context.Background(), "sushi", "Wrong", "Wrong"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "SUSHI PLACE", ""))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, models.ProvenanceLearnedExact, decision.Provenance)
	assert.Equal(t, "Food", decision.Category)
}

func TestLearnedSubstringMatch(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertSubstring(context.Background(), "tim hortons", "Food", "Eating Out"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	decision, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "TIM HORTONS #1234", ""))
	require.NoError(t, err)
	require.True(t, resolved)
	assert.Equal(t, models.ProvenanceLearnedSub, decision.Provenance)
}

func TestAmbiguousExactMatchIsConflict(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertExact(context.Background(), "COSTCO", "Food", "Grocery"))
	require.NoError(t, learned.InsertExact(context.Background(), "COSTCO", "Household", "Supplies"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	_, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "COSTCO", ""))
	assert.False(t, resolved)
	require.Error(t, err)
	assert.True(t, ingesterror.IsConflict(err))
	assert.Contains(t, err.Error(), "COSTCO")
}

func TestAmbiguousSubstringMatchIsConflict(t *testing.T) {
	learned := &store.MemoryLearned{}
	require.NoError(t, learned.InsertSubstring(context.Background(), "shop", "Food", "Grocery"))
	require.NoError(t, learned.InsertSubstring(context.Background(), "coffee", "Food", "Eating Out"))

	r := New(refdata.Defaults(), testTaxonomy(), learned, nil)
	_, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "COFFEE SHOP 22", ""))
	assert.False(t, resolved)
	assert.True(t, ingesterror.IsConflict(err))
}

func TestNoMatchFallsThroughToManual(t *testing.T) {
	r := New(refdata.Defaults(), testTaxonomy(), &store.MemoryLearned{}, nil)

	_, resolved, err := r.Resolve(context.Background(), testTransaction("rogers", "NEVER SEEN BEFORE", ""))
	require.NoError(t, err)
	assert.False(t, resolved)
}
