// Package prompt is the human-input boundary of the ingestion engine: the
// taxonomy display, the retry-until-valid subcategory selection, the yes/no
// teach confirmation and the free-text substring entry. A scripted
// implementation replaces the terminal in tests.
package prompt

import (
	"card-ingest/internal/store"
)

// Prompter obtains operator decisions during attended ingestion. All calls
// block until the operator answers; unattended runs never reach them.
type Prompter interface {
	// SelectSubcategory presents the taxonomy and returns the chosen
	// subcategory id. Implementations loop on invalid input until the
	// selection is one of the listed ids.
	SelectSubcategory(subcategories []store.Subcategory) (int64, error)

	// SelectCategory presents category-only taxonomies and returns the
	// chosen category id, looping until valid.
	SelectCategory(categories []store.Category) (int64, error)

	// Confirm asks a yes/no question, looping until the answer is y or n.
	Confirm(question string) (bool, error)

	// ReadSubstring asks for a lowercase substring to teach, or empty to
	// teach the exact merchant string instead.
	ReadSubstring(merchant string) (string, error)

	// Announce shows a transaction headline before any selection.
	Announce(text string)
}
