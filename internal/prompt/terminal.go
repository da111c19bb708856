package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"card-ingest/internal/store"
)

// Terminal is the interactive Prompter backed by stdin/stdout.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal creates a Terminal reading answers from in and writing
// prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// Announce shows a transaction headline before any selection.
func (t *Terminal) Announce(text string) {
	fmt.Fprintf(t.out, "\n%s\n", text)
}

// SelectSubcategory prints the subcategory taxonomy and loops until the
// operator enters one of the listed ids.
func (t *Terminal) SelectSubcategory(subcategories []store.Subcategory) (int64, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%-6s %-24s %s\n", "id", "category", "subcategory")
	for _, sc := range subcategories {
		fmt.Fprintf(t.out, "%-6d %-24s %s\n", sc.ID, sc.CategoryName, sc.Name)
	}

	valid := make(map[int64]bool, len(subcategories))
	for _, sc := range subcategories {
		valid[sc.ID] = true
	}

	for {
		fmt.Fprint(t.out, "Enter the subcategory id: ")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(t.out, "Please enter a valid integer for subcategory id.")
			continue
		}
		if !valid[id] {
			fmt.Fprintf(t.out, "Subcategory id %d not found. Please enter a valid id.\n", id)
			continue
		}
		return id, nil
	}
}

// SelectCategory prints a category-only taxonomy and loops until the
// operator enters one of the listed ids.
func (t *Terminal) SelectCategory(categories []store.Category) (int64, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%-6s %s\n", "id", "category")
	for _, c := range categories {
		fmt.Fprintf(t.out, "%-6d %s\n", c.ID, c.Name)
	}

	valid := make(map[int64]bool, len(categories))
	for _, c := range categories {
		valid[c.ID] = true
	}

	for {
		fmt.Fprint(t.out, "Enter the category id: ")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(t.out, "Please enter a valid integer for category id.")
			continue
		}
		if !valid[id] {
			fmt.Fprintf(t.out, "Category id %d not found. Please enter a valid id.\n", id)
			continue
		}
		return id, nil
	}
}

// Confirm asks a yes/no question, looping until the answer is y or n.
func (t *Terminal) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(t.out, "%s (y/n): ", question)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			fmt.Fprintln(t.out, "Please enter a valid response (y/n).")
		}
	}
}

// ReadSubstring asks for a lowercase substring to teach; an empty answer
// means teach the exact merchant string instead.
func (t *Terminal) ReadSubstring(merchant string) (string, error) {
	fmt.Fprintf(t.out, "Substring to match (leave empty to match %q exactly): ", merchant)
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	return strings.ToLower(line), nil
}
