// Package refdata holds the curated static reference tables consulted during
// category resolution: issuer-category mappings, fixed per-source category
// overrides and the reimbursement merchant list.
//
// Compiled-in defaults cover the known sources; a YAML file can extend or
// replace them without a rebuild.
package refdata

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"card-ingest/internal/models"
)

// Pair is a curated (category, subcategory) mapping target.
type Pair struct {
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
}

// Tables bundles every static reference table.
type Tables struct {
	// Manual is the cross-source mapping keyed by manually curated labels.
	// It is tried before any source-specific table.
	Manual map[string]Pair `yaml:"manual"`

	// IssuerCategory maps a source type to its issuer-category-text table,
	// matched verbatim against the issuer-supplied label.
	IssuerCategory map[string]map[string]Pair `yaml:"issuer_category"`

	// MerchantSubstring maps a source type to a merchant-substring table,
	// matched by containment against the merchant text.
	MerchantSubstring map[string]map[string]Pair `yaml:"merchant_substring"`

	// Fixed maps entirely hint-driven sources to their constant pair.
	// Resolution for these sources bypasses every other stage.
	Fixed map[string]Pair `yaml:"fixed"`

	// ReimbursementMerchants lists merchants whose expenses need the
	// cost-agnostic duplicate re-check, matched case-insensitively.
	ReimbursementMerchants []string `yaml:"reimbursement_merchants"`

	// ReimbursementSubcategory is the subcategory name that triggers the
	// same re-check regardless of merchant.
	ReimbursementSubcategory string `yaml:"reimbursement_subcategory"`

	// IgnoreCategory is the category name whose expenses are never
	// recorded, compared case-insensitively.
	IgnoreCategory string `yaml:"ignore_category"`

	// NoTeachMerchants lists merchants the teach step never offers to
	// learn, matched verbatim.
	NoTeachMerchants []string `yaml:"no_teach_merchants"`
}

// Defaults returns the compiled-in reference tables for the known sources.
func Defaults() *Tables {
	return &Tables{
		Manual: map[string]Pair{
			"Travel": {Category: "Travel", Subcategory: "Travel"},
		},
		IssuerCategory: map[string]map[string]Pair{
			"rogers": {
				"Eating Places and Restaurants":  {Category: "Food", Subcategory: "Eating Out"},
				"Grocery Stores and Supermarkets": {Category: "Food", Subcategory: "Grocery"},
				"Miscellaneous Food Stores-Convenience Stores and Specialty Markets": {Category: "Food", Subcategory: "Grocery"},
				"Local and Suburban Commuter Passenger Transportation, including Ferries": {Category: "Commuting", Subcategory: "Transit"},
			},
		},
		MerchantSubstring: map[string]map[string]Pair{
			"amex": {
				"UBER":          {Category: "Commuting", Subcategory: "Rides"},
				"PRESTO":        {Category: "Commuting", Subcategory: "Transit"},
				"RUMBLE BOXING": {Category: "Entertainment", Subcategory: "Hobbies"},
				"GOLF":          {Category: "Entertainment", Subcategory: "Hobbies"},
			},
		},
		Fixed: map[string]Pair{
			"simplii_visa": {Category: "Food", Subcategory: "Eating Out"},
		},
		ReimbursementMerchants: []string{
			"NEXUS MASSAGE AND REHAB TORONTO",
		},
		ReimbursementSubcategory: "Reimbursement",
		IgnoreCategory:           "Ignore",
		NoTeachMerchants: []string{
			"Interac e-Transfer® Out",
		},
	}
}

// Load reads reference tables from a YAML file, merged over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Tables, error) {
	tables := Defaults()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading reference tables %s: %w", path, err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("error parsing reference tables %s: %w", path, err)
	}

	tables.merge(&override)
	return tables, nil
}

func (t *Tables) merge(o *Tables) {
	for label, pair := range o.Manual {
		t.Manual[label] = pair
	}
	for source, table := range o.IssuerCategory {
		if t.IssuerCategory[source] == nil {
			t.IssuerCategory[source] = map[string]Pair{}
		}
		for label, pair := range table {
			t.IssuerCategory[source][label] = pair
		}
	}
	for source, table := range o.MerchantSubstring {
		if t.MerchantSubstring[source] == nil {
			t.MerchantSubstring[source] = map[string]Pair{}
		}
		for sub, pair := range table {
			t.MerchantSubstring[source][sub] = pair
		}
	}
	for source, pair := range o.Fixed {
		t.Fixed[source] = pair
	}
	t.ReimbursementMerchants = append(t.ReimbursementMerchants, o.ReimbursementMerchants...)
	if o.ReimbursementSubcategory != "" {
		t.ReimbursementSubcategory = o.ReimbursementSubcategory
	}
	if o.IgnoreCategory != "" {
		t.IgnoreCategory = o.IgnoreCategory
	}
	t.NoTeachMerchants = append(t.NoTeachMerchants, o.NoTeachMerchants...)
}

// FixedPair returns the constant decision for an entirely hint-driven source.
func (t *Tables) FixedPair(sourceType string) (models.CategoryDecision, bool) {
	pair, ok := t.Fixed[sourceType]
	if !ok {
		return models.CategoryDecision{}, false
	}
	return models.CategoryDecision{
		Category:    pair.Category,
		Subcategory: pair.Subcategory,
		Provenance:  models.ProvenanceExactReference,
	}, true
}

// LookupIssuerCategory resolves an issuer-supplied category label. The
// cross-source manual table is tried first, then the source-scoped table.
func (t *Tables) LookupIssuerCategory(sourceType, label string) (models.CategoryDecision, bool) {
	if pair, ok := t.Manual[label]; ok {
		return models.CategoryDecision{
			Category:    pair.Category,
			Subcategory: pair.Subcategory,
			Provenance:  models.ProvenanceExactReference,
		}, true
	}
	if table, ok := t.IssuerCategory[sourceType]; ok {
		if pair, ok := table[label]; ok {
			return models.CategoryDecision{
				Category:    pair.Category,
				Subcategory: pair.Subcategory,
				Provenance:  models.ProvenanceIssuerReference,
			}, true
		}
	}
	return models.CategoryDecision{}, false
}

// LookupMerchantSubstring resolves a merchant name against the source-scoped
// curated substring table. First matching key wins; these tables are small
// and hand-curated to be non-overlapping.
func (t *Tables) LookupMerchantSubstring(sourceType, merchant string) (models.CategoryDecision, bool) {
	table, ok := t.MerchantSubstring[sourceType]
	if !ok {
		return models.CategoryDecision{}, false
	}
	for sub, pair := range table {
		if strings.Contains(merchant, sub) {
			return models.CategoryDecision{
				Category:    pair.Category,
				Subcategory: pair.Subcategory,
				Provenance:  models.ProvenanceIssuerReference,
			}, true
		}
	}
	return models.CategoryDecision{}, false
}

// IsIgnoreCategory reports whether the category name is the ignored one.
func (t *Tables) IsIgnoreCategory(category string) bool {
	return t.IgnoreCategory != "" && strings.EqualFold(category, t.IgnoreCategory)
}

// IsNoTeachMerchant reports whether the merchant is excluded from the teach
// step.
func (t *Tables) IsNoTeachMerchant(merchant string) bool {
	for _, m := range t.NoTeachMerchants {
		if merchant == m {
			return true
		}
	}
	return false
}

// IsReimbursementMerchant reports whether the merchant matches the curated
// reimbursement list by case-insensitive substring in either direction.
func (t *Tables) IsReimbursementMerchant(merchant string) bool {
	lower := strings.ToLower(merchant)
	for _, ref := range t.ReimbursementMerchants {
		refLower := strings.ToLower(ref)
		if strings.Contains(lower, refLower) || strings.Contains(refLower, lower) {
			return true
		}
	}
	return false
}
