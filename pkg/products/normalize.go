package products

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// imageExtensions is the allow-list of image file extensions accepted when
// attaching images to a product.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// CleanPrice coerces a free-text price string to a numeric value by
// stripping every rune that is not a digit or a dot. It reports false for
// empty or unparseable input; the caller decides how to degrade.
//
//	CleanPrice("KES 12,500.00") == 12500, true
func CleanPrice(price string) (float64, bool) {
	if price == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range price {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ValidImageURL reports whether raw is a well-formed absolute URL whose
// path ends in an allow-listed image extension.
func ValidImageURL(raw string) bool {
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
