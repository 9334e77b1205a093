package reconcile

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/products"
	"github.com/prowebkong/woosync/pkg/woo"
)

// Leaf category names as declared in the taxonomy. The "cartidges"
// misspelling is intentional: the store's live categories carry it, and
// name resolution maps it to the corrected spelling where needed.
const (
	leafInkTonerMaster = "ink & toner master"
	leafOriginal       = "original cartidges"
	leafOptimum        = "optimum cartidges"
	leafOptimage       = "optimage cartidges"
	leafDT             = "DT cartidges"
	leafRefills        = "toner refills"
	leafToners         = "toners"

	leafRicohRefurb   = "ricoh refurbished printer"
	leafKyoceraRefurb = "kyocera refurbished printer"
	leafKonicaRefurb  = "konica minolta refurbished printer"
	leafRefurbished   = "refurbished printers"
	leafNewPantum     = "new pantum printer"
	leafNewKyocera    = "new kyocera printer"
	leafNewPrinter    = "new printer"
)

// matchKind tags what a rule's terms are matched against.
type matchKind int

const (
	// matchKeyword matches against the normalized title or the Type feature.
	matchKeyword matchKind = iota
	// matchBrand matches against the Brand feature.
	matchBrand
)

// rule is one ordered classification heuristic: if any term matches, the
// rule's leaf is selected.
type rule struct {
	kind  matchKind
	terms []string
	leaf  string
}

// tonerKeywords flag a product as ink/toner when found in the title or
// the Type feature.
var tonerKeywords = []string{"toner", "cartridge", "cartidges", "ink"}

// The rule tables are evaluated top to bottom and the first match wins.
// The order encodes domain knowledge: reordering silently changes
// classification outcomes, so change it only deliberately.
var (
	tonerRules = []rule{
		{matchKeyword, []string{"ink", "master"}, leafInkTonerMaster},
		{matchKeyword, []string{"original"}, leafOriginal},
		{matchKeyword, []string{"optimum"}, leafOptimum},
		{matchKeyword, []string{"optimage"}, leafOptimage},
		{matchKeyword, []string{"dt"}, leafDT},
		{matchKeyword, []string{"refill"}, leafRefills},
	}

	// A brand could contain both "konica" and "kyocera" tokens in odd
	// listings, so the specific brands come before the catch-all.
	refurbishedRules = []rule{
		{matchBrand, []string{"ricoh"}, leafRicohRefurb},
		{matchBrand, []string{"kyocera"}, leafKyoceraRefurb},
		{matchBrand, []string{"konica", "minolta"}, leafKonicaRefurb},
	}

	newPrinterRules = []rule{
		{matchBrand, []string{"pantum"}, leafNewPantum},
		{matchBrand, []string{"kyocera"}, leafNewKyocera},
	}
)

// Decision is the classification outcome for one product. A miss is
// surfaced as Matched == false, never silently defaulted.
type Decision struct {
	Category woo.Category // zero value unless Matched
	Leaf     string       // the leaf name the rules selected
	Matched  bool
}

// Classifier assigns each product exactly one leaf category by ordered
// heuristic rules over its title and feature map. It shares the run's
// category accumulator and may append to it through the ink fallback.
type Classifier struct {
	client categoryCreator
	known  *Categories
	lower  cases.Caser
}

// NewClassifier creates a classifier over the known category set.
func NewClassifier(client categoryCreator, known *Categories) *Classifier {
	return &Classifier{
		client: client,
		known:  known,
		lower:  cases.Lower(language.Und),
	}
}

// Classify selects a leaf category for the product. The rules run in
// strict priority order with no backtracking:
//
//  1. the "dx" SKU convention marks ink/toner regardless of keywords
//  2. toner keywords in the title or Type feature pick the toner branch
//  3. within a branch, the first matching rule wins
//  4. the chosen leaf is resolved against known category names through
//     spelling variants, then through the ink recovery path
func (c *Classifier) Classify(ctx context.Context, title string, features *products.Features) Decision {
	norm := c.normalizeTitle(title)
	typ := strings.ToLower(features.Get("Type"))

	isDX := strings.Contains(norm, "dx")
	isToner := isDX || containsAny(typ, tonerKeywords) || containsAny(norm, tonerKeywords)

	var leaf string
	switch {
	case isToner && isDX:
		leaf = leafInkTonerMaster
	case isToner:
		if matched, ok := firstMatch(tonerRules, norm, typ, ""); ok {
			leaf = matched
		} else {
			leaf = leafToners
		}
	default:
		brand := strings.ToLower(features.Get("Brand"))
		condition := strings.ToLower(features.Get("Condition"))
		if strings.Contains(condition, "refurbished") {
			if matched, ok := firstMatch(refurbishedRules, norm, typ, brand); ok {
				leaf = matched
			} else {
				leaf = leafRefurbished
			}
		} else {
			if matched, ok := firstMatch(newPrinterRules, norm, typ, brand); ok {
				leaf = matched
			} else {
				leaf = leafNewPrinter
			}
		}
	}

	// Leaf names in the taxonomy carry their full backslash path; only
	// the last segment is matched.
	if idx := strings.LastIndex(leaf, `\`); idx >= 0 {
		leaf = leaf[idx+1:]
	}

	category, found := c.resolve(leaf)
	if !found {
		category, found = c.recoverInk(ctx, leaf, norm, isDX)
	}
	if !found {
		logging.Ctx(ctx).Warn().
			Str("title", title).
			Str("leaf", leaf).
			Strs("known_categories", c.known.Names()).
			Msg("No category resolved")
		return Decision{Leaf: leaf}
	}

	return Decision{Category: category, Leaf: leaf, Matched: true}
}

// normalizeTitle lowercases the title and smooths the naming drift the
// source data is known for.
func (c *Classifier) normalizeTitle(title string) string {
	norm := c.lower.String(title)
	norm = strings.ReplaceAll(norm, "&", "and")
	norm = strings.ReplaceAll(norm, "cartidges", "cartridges")
	return norm
}

// resolve maps a leaf name to a known remote category by trying spelling
// variants in order; the first variant with any match wins. Within a
// variant, the shortest category name wins: the node that is exactly the
// requested leaf, not a descendant of it.
func (c *Classifier) resolve(leaf string) (woo.Category, bool) {
	base := strings.ToLower(leaf)
	variants := []string{
		base,
		strings.ReplaceAll(base, "&", "and"),
		strings.ReplaceAll(base, "printer", "printers"),
		strings.ReplaceAll(base, "cartidges", "cartridges"),
		strings.ReplaceAll(base, "&", "&amp;"),
	}

	for _, variant := range variants {
		if cat, ok := c.known.Match(variant); ok {
			return cat, true
		}
	}
	return woo.Category{}, false
}

// recoverInk is the special recovery path for ink/DX products whose leaf
// did not resolve: rescan the known set for anything ink/toner-flavored,
// and as a last resort create the "ink & toner master" category on the
// fly, parented under an existing toner category if one exists.
func (c *Classifier) recoverInk(ctx context.Context, leaf, norm string, isDX bool) (woo.Category, bool) {
	if !strings.Contains(strings.ToLower(leaf), "ink") &&
		!strings.Contains(norm, "ink") && !isDX {
		return woo.Category{}, false
	}

	log := logging.Ctx(ctx)
	log.Debug().Str("leaf", leaf).Msg("Ink recovery lookup")

	if cat, ok := c.known.MatchAny([]string{"ink", "toner", "master"}); ok {
		return cat, true
	}

	parent := 0
	if cat, ok := c.known.MatchAny([]string{"toners", "toner"}); ok {
		parent = cat.ID
	}

	created, err := c.client.CreateCategory(ctx, leafInkTonerMaster, parent)
	if err != nil {
		var te *errors.TermExistsError
		if !errors.As(err, &te) {
			log.Error().Err(err).Msg("Failed to create ink category")
			return woo.Category{}, false
		}
		created = woo.Category{ID: te.ResourceID, Name: leafInkTonerMaster, Parent: parent}
		log.Info().Int("id", created.ID).Msg("Ink category already exists")
	} else {
		log.Info().Int("id", created.ID).Msg("Created ink category")
	}

	// Visible to subsequent products in the same run.
	c.known.Add(created)
	return created, true
}

// firstMatch evaluates a rule table in order and returns the first
// matching leaf.
func firstMatch(rules []rule, norm, typ, brand string) (string, bool) {
	for _, r := range rules {
		switch r.kind {
		case matchKeyword:
			if containsAny(norm, r.terms) || containsAny(typ, r.terms) {
				return r.leaf, true
			}
		case matchBrand:
			if containsAny(brand, r.terms) {
				return r.leaf, true
			}
		}
	}
	return "", false
}

// containsAny reports whether text contains any of the terms.
func containsAny(text string, terms []string) bool {
	if text == "" {
		return false
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
