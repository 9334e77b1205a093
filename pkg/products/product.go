// Package products defines the scraped product records the import engine
// consumes, along with the batch loader and the pure normalization
// helpers for prices and image URLs.
//
// The records themselves are produced by an external scraping step; this
// package only specifies the boundary shape and never mutates a record
// after decoding.
package products

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/prowebkong/woosync/pkg/errors"
)

// RawProduct is one scraped product record, immutable once decoded.
type RawProduct struct {
	URL                 string   `json:"url"`
	Title               string   `json:"title"`
	Price               string   `json:"price"`
	MainImage           string   `json:"main_image"`
	AllImages           []string `json:"all_images"`
	ShortDescription    string   `json:"short_description"`
	FullDescriptionHTML string   `json:"full_description_html"`
	Features            Features `json:"features"`
}

// Features is a free-text key/value map scraped from a product page.
// Keys are unique and insertion order is preserved, so the rendered
// specification table is deterministic for a given record.
type Features struct {
	keys   []string
	values map[string]string
}

// Get returns the value for key, or "" if absent.
func (f *Features) Get(key string) string {
	if f.values == nil {
		return ""
	}
	return f.values[key]
}

// Set adds or replaces a key/value pair, preserving first-insertion order.
func (f *Features) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Len returns the number of feature entries.
func (f *Features) Len() int {
	return len(f.keys)
}

// Keys returns the feature keys in insertion order.
func (f *Features) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// UnmarshalJSON decodes a JSON object while preserving key order, which
// encoding/json's map decoding discards.
func (f *Features) UnmarshalJSON(data []byte) error {
	f.keys = nil
	f.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil // JSON null means no features
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("features: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("features: expected string key, got %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		f.Set(key, stringify(value))
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the features as a JSON object in insertion order.
func (f Features) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// stringify renders a decoded JSON value the way the scraper wrote it.
// Scraped feature values are strings in practice, but the loader stays
// lenient about stray numbers and nulls.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Load reads a scraped products batch from a JSON file. The whole batch
// is decoded before processing begins; there is no streaming requirement.
func Load(path string) ([]RawProduct, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer file.Close()

	batch, err := Decode(file)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return batch, nil
}

// Decode reads a scraped products batch (a JSON array) from r.
func Decode(r io.Reader) ([]RawProduct, error) {
	var batch []RawProduct
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, err
	}
	return batch, nil
}
