package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/products"
	"github.com/prowebkong/woosync/pkg/woo"
)

// productAPI is the slice of the catalog API the uploader needs.
type productAPI interface {
	CreateProduct(ctx context.Context, req woo.ProductRequest) (woo.Product, error)
	UpdateProductImages(ctx context.Context, productID int, images []woo.Image) error
}

// OutcomeStatus is the per-product result of an upload.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome is the per-product upload result. Failures are recorded, never
// propagated, so the batch always continues.
type Outcome struct {
	Title     string
	URL       string
	Status    OutcomeStatus
	ProductID int
	Category  string // resolved category name, empty if unclassified
	Reason    string // failure reason, empty on success
	Err       error
}

// Succeeded reports whether the product was created.
func (o Outcome) Succeeded() bool {
	return o.Status == OutcomeSucceeded
}

// Uploader assembles the normalized payload for one product, submits it,
// and attaches images in a follow-up step.
type Uploader struct {
	client     productAPI
	classifier *Classifier
	attributes Attributes
	dryRun     bool
}

// NewUploader creates an uploader over the provisioned attribute set.
func NewUploader(client productAPI, classifier *Classifier, attributes Attributes, dryRun bool) *Uploader {
	return &Uploader{
		client:     client,
		classifier: classifier,
		attributes: attributes,
		dryRun:     dryRun,
	}
}

// Upload processes one product end to end and reports its outcome. Each
// step is independently fault-tolerant: a classification miss uploads the
// product uncategorized, and an image failure never downgrades a created
// product to a failure.
func (u *Uploader) Upload(ctx context.Context, product *products.RawProduct) Outcome {
	log := logging.Ctx(ctx)

	if product.Title == "" {
		log.Warn().Str("url", product.URL).Msg("Skipping product: missing name")
		return Outcome{URL: product.URL, Status: OutcomeFailed, Reason: "missing name"}
	}

	req := woo.ProductRequest{
		Name:         product.Title,
		Type:         "simple",
		Status:       "publish",
		Description:  buildDescription(product),
		RegularPrice: formatPrice(product.Price),
		MetaData:     []woo.MetaData{},
		Attributes:   []woo.ProductAttribute{},
	}

	decision := u.classifier.Classify(ctx, product.Title, &product.Features)
	if decision.Matched {
		req.Categories = []woo.CategoryRef{{ID: decision.Category.ID}}
		log.Debug().Str("title", product.Title).Str("category", decision.Category.Name).Msg("Assigned category")
	} else {
		log.Warn().Str("title", product.Title).Str("leaf", decision.Leaf).Msg("Uploading uncategorized")
	}

	for _, key := range product.Features.Keys() {
		value := product.Features.Get(key)
		if key == "" || value == "" {
			continue
		}

		req.MetaData = append(req.MetaData, woo.MetaData{Key: key, Value: value})

		if !InVocabulary(key) {
			continue
		}
		attr, ok := u.attributes.Find(key)
		if !ok {
			continue // provisioning failed for this one; degrade by omission
		}
		req.Attributes = append(req.Attributes, woo.ProductAttribute{
			ID:        attr.ID,
			Name:      key,
			Position:  0,
			Visible:   true,
			Variation: false,
			Options:   []string{value},
		})
	}

	if u.dryRun {
		log.Info().Str("title", product.Title).Msg("Dry run: skipping product creation")
		return Outcome{
			Title:    product.Title,
			URL:      product.URL,
			Status:   OutcomeSucceeded,
			Category: decision.Category.Name,
		}
	}

	created, err := u.client.CreateProduct(ctx, req)
	if err != nil {
		var apiErr *errors.APIError
		reason := "create request failed"
		if errors.As(err, &apiErr) {
			reason = fmt.Sprintf("create rejected: status %d: %s", apiErr.StatusCode, apiErr.Body)
		}
		log.Error().Err(err).Str("title", product.Title).Msg("Failed to create product")
		return Outcome{
			Title:    product.Title,
			URL:      product.URL,
			Status:   OutcomeFailed,
			Category: decision.Category.Name,
			Reason:   reason,
			Err:      err,
		}
	}
	log.Info().Str("title", product.Title).Int("id", created.ID).Msg("Created product")

	if images := buildImages(product); len(images) > 0 {
		if err := u.client.UpdateProductImages(ctx, created.ID, images); err != nil {
			// The product already exists; an image failure stays a warning.
			log.Warn().Err(err).Int("id", created.ID).Int("images", len(images)).Msg("Failed to attach images")
		} else {
			log.Debug().Int("id", created.ID).Int("images", len(images)).Msg("Attached images")
		}
	}

	return Outcome{
		Title:     product.Title,
		URL:       product.URL,
		Status:    OutcomeSucceeded,
		ProductID: created.ID,
		Category:  decision.Category.Name,
	}
}

// buildDescription renders the product description HTML: the displayed
// price, a specification table of non-empty features (raw values, as
// scraped), then the original description after a separator.
func buildDescription(product *products.RawProduct) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", product.Price)

	var rows []string
	for _, key := range product.Features.Keys() {
		if value := product.Features.Get(key); value != "" {
			rows = append(rows, fmt.Sprintf("<tr><td><strong>%s</strong></td><td>%s</td></tr>", key, value))
		}
	}
	if len(rows) > 0 {
		b.WriteString(`<div class="product-attributes"><h3>Specifications</h3><table>`)
		for _, row := range rows {
			b.WriteString(row)
		}
		b.WriteString("</table></div>")
	}

	fmt.Fprintf(&b, "<hr><div class='product-description'>%s</div>", product.FullDescriptionHTML)
	return b.String()
}

// formatPrice converts the scraped price text to the regular_price field.
// A parse failure deliberately sends the literal "None" so the store
// flags the product for manual review instead of pricing it at zero.
func formatPrice(price string) string {
	value, ok := products.CleanPrice(price)
	if !ok {
		return "None"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// buildImages assembles the image list: the main image first at position
// 0 if valid, then every other distinct valid URL at its original index.
// Malformed URLs and duplicates of the main image are dropped.
func buildImages(product *products.RawProduct) []woo.Image {
	var images []woo.Image

	seen := make(map[string]bool)
	if products.ValidImageURL(product.MainImage) {
		images = append(images, woo.Image{Src: product.MainImage, Position: 0})
	}
	seen[product.MainImage] = true

	for i, src := range product.AllImages {
		if seen[src] || !products.ValidImageURL(src) {
			continue
		}
		seen[src] = true
		images = append(images, woo.Image{Src: src, Position: i})
	}
	return images
}
