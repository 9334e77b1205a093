package reconcile

import (
	"context"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/woo"
)

// categoryCreator is the slice of the catalog API the materializer and
// the classifier fallback need.
type categoryCreator interface {
	CreateCategory(ctx context.Context, name string, parent int) (woo.Category, error)
}

// Materializer ensures a declarative category hierarchy exists in the
// remote catalog. Materialization is idempotent: categories that already
// exist, locally known or reported by a term_exists conflict, are
// recovered rather than duplicated.
type Materializer struct {
	client categoryCreator
}

// NewMaterializer creates a materializer backed by the given client.
func NewMaterializer(client categoryCreator) *Materializer {
	return &Materializer{client: client}
}

// Materialize walks the hierarchy depth-first and ensures every node
// exists under its resolved parent, accumulating results into known so a
// category created for one branch is visible to later branches. Root
// nodes are created with parent 0, the catalog convention for "no
// parent". Only cancellation aborts the walk; a failed node logs, skips
// its descendants (their parent id is unresolved), and the walk continues
// with its siblings.
func (m *Materializer) Materialize(ctx context.Context, tree []Node, known *Categories) error {
	return m.walk(ctx, tree, 0, known)
}

func (m *Materializer) walk(ctx context.Context, nodes []Node, parent int, known *Categories) error {
	log := logging.Ctx(ctx)

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}

		cat, ok := known.Find(node.Name)
		if !ok {
			created, err := m.client.CreateCategory(ctx, node.Name, parent)
			var te *errors.TermExistsError
			switch {
			case err == nil:
				cat = created
				log.Info().Str("category", node.Name).Int("id", cat.ID).Msg("Created category")
			case errors.As(err, &te):
				cat = woo.Category{ID: te.ResourceID, Name: node.Name, Parent: parent}
				log.Info().Str("category", node.Name).Int("id", cat.ID).Msg("Category already exists")
			case errors.IsCanceled(err):
				return err
			default:
				log.Error().Err(err).Str("category", node.Name).Msg("Failed to create category; skipping subtree")
				continue
			}
			known.Add(cat)
		}

		if len(node.Children) > 0 {
			if err := m.walk(ctx, node.Children, cat.ID, known); err != nil {
				return err
			}
		}
	}
	return nil
}
