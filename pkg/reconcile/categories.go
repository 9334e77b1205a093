package reconcile

import (
	"strings"

	"github.com/prowebkong/woosync/pkg/woo"
)

// Categories is the accumulator of known remote categories for one run.
// It is built once by the materializer and read by the classifier and the
// uploader; the only later writer is the classifier's ink fallback. The
// run is strictly sequential, so no locking. A concurrent redesign must
// serialize writes through a single owner.
type Categories struct {
	list []woo.Category
}

// NewCategories creates an accumulator seeded with the remote state.
func NewCategories(existing []woo.Category) *Categories {
	c := &Categories{list: make([]woo.Category, 0, len(existing))}
	c.list = append(c.list, existing...)
	return c
}

// Add records a category so later lookups in the same run can see it.
func (c *Categories) Add(cat woo.Category) {
	c.list = append(c.list, cat)
}

// Find looks up a category by case-insensitive exact name match.
func (c *Categories) Find(name string) (woo.Category, bool) {
	for _, cat := range c.list {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return woo.Category{}, false
}

// Match finds a category whose name contains the given fragment, testing
// the name itself and its ampersand-normalized forms. When several
// categories match, the shortest name wins: hierarchy names embed their
// full path, so the shortest match is the node that is exactly the
// requested leaf rather than a more specific descendant of it.
func (c *Categories) Match(fragment string) (woo.Category, bool) {
	var best woo.Category
	found := false
	for _, cat := range c.list {
		for _, form := range nameForms(cat.Name) {
			if strings.Contains(form, fragment) {
				if !found || len(cat.Name) < len(best.Name) {
					best = cat
					found = true
				}
				break
			}
		}
	}
	return best, found
}

// MatchAny finds a category whose lowercased name contains any of the
// given fragments, preferring the shortest name.
func (c *Categories) MatchAny(fragments []string) (woo.Category, bool) {
	var best woo.Category
	found := false
	for _, cat := range c.list {
		name := strings.ToLower(cat.Name)
		for _, fragment := range fragments {
			if strings.Contains(name, fragment) {
				if !found || len(cat.Name) < len(best.Name) {
					best = cat
					found = true
				}
				break
			}
		}
	}
	return best, found
}

// Len returns the number of known categories.
func (c *Categories) Len() int {
	return len(c.list)
}

// Names returns every known category name, for diagnostics.
func (c *Categories) Names() []string {
	names := make([]string, len(c.list))
	for i, cat := range c.list {
		names[i] = cat.Name
	}
	return names
}

// nameForms returns the lowercased name variants a fragment is matched
// against: literal, & spelled out, and the HTML entity spelled out.
func nameForms(name string) []string {
	lower := strings.ToLower(name)
	return []string{
		lower,
		strings.ReplaceAll(lower, "&", "and"),
		strings.ReplaceAll(lower, "&amp;", "and"),
	}
}
