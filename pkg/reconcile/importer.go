// Package reconcile implements the catalog reconciliation engine: it
// materializes the declarative category tree against the remote catalog,
// provisions the attribute vocabulary, classifies each scraped product
// into exactly one leaf category, and uploads normalized payloads with
// partial-failure tolerance.
package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/products"
	"github.com/prowebkong/woosync/pkg/woo"
)

// catalogAPI is the full remote catalog surface the importer composes.
// *woo.Client satisfies it.
type catalogAPI interface {
	ListCategories(ctx context.Context) ([]woo.Category, error)
	CreateCategory(ctx context.Context, name string, parent int) (woo.Category, error)
	ListAttributes(ctx context.Context) ([]woo.Attribute, error)
	CreateAttribute(ctx context.Context, req woo.AttributeRequest) (woo.Attribute, error)
	CreateProduct(ctx context.Context, req woo.ProductRequest) (woo.Product, error)
	UpdateProductImages(ctx context.Context, productID int, images []woo.Image) error
}

// Importer runs the whole batch: materialize, provision, then process
// products one at a time in source order.
type Importer struct {
	client   catalogAPI
	taxonomy []Node
	dryRun   bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithTaxonomy replaces the embedded category hierarchy.
func WithTaxonomy(tree []Node) Option {
	return func(i *Importer) { i.taxonomy = tree }
}

// WithDryRun classifies and builds payloads without creating products.
// Category and attribute materialization still runs; it is idempotent.
func WithDryRun(enabled bool) Option {
	return func(i *Importer) { i.dryRun = enabled }
}

// NewImporter creates an importer over the given catalog client.
func NewImporter(client catalogAPI, opts ...Option) (*Importer, error) {
	tree, err := DefaultTaxonomy()
	if err != nil {
		return nil, errors.WrapParse("yaml", "embedded taxonomy", err)
	}

	imp := &Importer{client: client, taxonomy: tree}
	for _, opt := range opts {
		opt(imp)
	}
	return imp, nil
}

// Result is the per-run summary.
type Result struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Outcomes  []Outcome
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("run %s: uploaded %d/%d products, %d failed",
		r.RunID, r.Succeeded, r.Total, r.Failed)
}

// Run executes the full import. The category and attribute sets are fully
// materialized before any product is classified; classification only
// matches against the known remote category set. Cancellation stops
// issuing new remote calls and returns the partial result with
// ErrCanceled; re-running is safe because every remote-mutating step is
// idempotent.
func (imp *Importer) Run(ctx context.Context, batch []products.RawProduct) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRun(ctx, runID)
	log := logging.Ctx(ctx)

	result := &Result{RunID: runID, Total: len(batch)}
	log.Info().Int("products", len(batch)).Bool("dry_run", imp.dryRun).Msg("Starting import")

	attrs, err := NewProvisioner(imp.client).Ensure(ctx)
	if err != nil {
		return result, err
	}

	existing, err := imp.client.ListCategories(ctx)
	if err != nil {
		if errors.IsCanceled(err) {
			return result, err
		}
		log.Warn().Err(err).Msg("Failed to list categories; materializing against empty state")
	}
	known := NewCategories(existing)

	if err := NewMaterializer(imp.client).Materialize(ctx, imp.taxonomy, known); err != nil {
		return result, err
	}
	log.Info().Int("categories", known.Len()).Int("attributes", len(attrs)).Msg("Catalog state materialized")

	uploader := NewUploader(imp.client, NewClassifier(imp.client, known), attrs, imp.dryRun)

	for i := range batch {
		if ctx.Err() != nil {
			log.Warn().Int("remaining", len(batch)-i).Msg("Import canceled; stopping before next product")
			return result, errors.ErrCanceled
		}

		outcome := uploader.Upload(ctx, &batch[i])
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Succeeded() {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	log.Info().Int("succeeded", result.Succeeded).Int("failed", result.Failed).Msg("Import finished")
	return result, nil
}
