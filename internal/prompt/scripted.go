package prompt

import (
	"fmt"

	"card-ingest/internal/store"
)

// Scripted is a Prompter test double that supplies canned answers in order.
type Scripted struct {
	// SubcategoryIDs are returned by successive SelectSubcategory calls.
	SubcategoryIDs []int64

	// CategoryIDs are returned by successive SelectCategory calls.
	CategoryIDs []int64

	// Confirmations are returned by successive Confirm calls.
	Confirmations []bool

	// Substrings are returned by successive ReadSubstring calls.
	Substrings []string

	// Announced collects every Announce text for assertions.
	Announced []string

	subIdx, catIdx, confIdx, subsIdx int
}

func (s *Scripted) Announce(text string) {
	s.Announced = append(s.Announced, text)
}

func (s *Scripted) SelectSubcategory(subcategories []store.Subcategory) (int64, error) {
	if s.subIdx >= len(s.SubcategoryIDs) {
		return 0, fmt.Errorf("scripted prompter: no subcategory answer left")
	}
	id := s.SubcategoryIDs[s.subIdx]
	s.subIdx++
	return id, nil
}

func (s *Scripted) SelectCategory(categories []store.Category) (int64, error) {
	if s.catIdx >= len(s.CategoryIDs) {
		return 0, fmt.Errorf("scripted prompter: no category answer left")
	}
	id := s.CategoryIDs[s.catIdx]
	s.catIdx++
	return id, nil
}

func (s *Scripted) Confirm(question string) (bool, error) {
	if s.confIdx >= len(s.Confirmations) {
		return false, nil
	}
	answer := s.Confirmations[s.confIdx]
	s.confIdx++
	return answer, nil
}

func (s *Scripted) ReadSubstring(merchant string) (string, error) {
	if s.subsIdx >= len(s.Substrings) {
		return "", nil
	}
	sub := s.Substrings[s.subsIdx]
	s.subsIdx++
	return sub, nil
}
