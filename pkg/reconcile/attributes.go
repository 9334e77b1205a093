package reconcile

import (
	"context"
	"strings"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/logging"
	"github.com/prowebkong/woosync/pkg/woo"
)

// Vocabulary is the fixed set of structured product attributes provisioned
// once per run and reused across all products.
var Vocabulary = []string{
	"Brand", "Model", "Type", "Function", "Adf",
	"Duplex", "Resolution", "Condition", "Paper Size",
	"Connectivity", "Print Speed",
}

// InVocabulary reports whether a feature key names one of the fixed
// attributes, case-insensitively.
func InVocabulary(key string) bool {
	for _, name := range Vocabulary {
		if strings.EqualFold(name, key) {
			return true
		}
	}
	return false
}

// AttributeSlug derives the remote slug for an attribute display name.
// Slugs, not display names, decide existence: display names may collide
// on casing.
func AttributeSlug(name string) string {
	return "pa_" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Attributes is the provisioned attribute set, keyed by lowercased
// display name.
type Attributes map[string]woo.Attribute

// Find looks up an attribute by display name, case-insensitively.
func (a Attributes) Find(name string) (woo.Attribute, bool) {
	attr, ok := a[strings.ToLower(name)]
	return attr, ok
}

// attributeAPI is the slice of the catalog API the provisioner needs.
type attributeAPI interface {
	ListAttributes(ctx context.Context) ([]woo.Attribute, error)
	CreateAttribute(ctx context.Context, req woo.AttributeRequest) (woo.Attribute, error)
}

// Provisioner ensures the attribute vocabulary exists remotely as
// selectable attributes. Provisioning is idempotent on slug.
type Provisioner struct {
	client     attributeAPI
	vocabulary []string
}

// NewProvisioner creates a provisioner for the fixed vocabulary.
func NewProvisioner(client attributeAPI) *Provisioner {
	return &Provisioner{client: client, vocabulary: Vocabulary}
}

// Ensure returns the full attribute set, pre-existing plus newly created.
// A creation failure logs and leaves that attribute out of the set, so
// classification and upload degrade by omitting it instead of aborting.
// Only cancellation is returned as an error.
func (p *Provisioner) Ensure(ctx context.Context) (Attributes, error) {
	log := logging.Ctx(ctx)
	result := make(Attributes)

	existing, err := p.client.ListAttributes(ctx)
	if err != nil {
		if errors.IsCanceled(err) {
			return result, err
		}
		log.Warn().Err(err).Msg("Failed to list attributes; provisioning against empty state")
	}

	slugs := make(map[string]bool, len(existing))
	for _, attr := range existing {
		slugs[attr.Slug] = true
		result[strings.ToLower(attr.Name)] = attr
	}
	log.Debug().Int("existing", len(existing)).Msg("Fetched attribute definitions")

	for _, name := range p.vocabulary {
		slug := AttributeSlug(name)
		if slugs[slug] {
			continue
		}

		created, err := p.client.CreateAttribute(ctx, woo.AttributeRequest{
			Name:        name,
			Slug:        slug,
			Type:        "select",
			OrderBy:     "menu_order",
			HasArchives: false,
		})
		var te *errors.TermExistsError
		switch {
		case err == nil:
			log.Info().Str("attribute", name).Int("id", created.ID).Msg("Created attribute")
		case errors.As(err, &te):
			created = woo.Attribute{ID: te.ResourceID, Name: name, Slug: slug}
			log.Info().Str("attribute", name).Int("id", created.ID).Msg("Attribute already exists")
		case errors.IsCanceled(err):
			return result, err
		default:
			log.Warn().Err(err).Str("attribute", name).Msg("Failed to create attribute; products will omit it")
			continue
		}

		slugs[slug] = true
		result[strings.ToLower(name)] = created
	}

	return result, nil
}
