package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/products"
	"github.com/prowebkong/woosync/pkg/woo"
)

func newTestUploader(t *testing.T, dryRun bool) (*fakeCatalog, *Uploader) {
	t.Helper()
	fake, known := materializedKnown(t)

	attrs, err := NewProvisioner(fake).Ensure(context.Background())
	require.NoError(t, err)

	return fake, NewUploader(fake, NewClassifier(fake, known), attrs, dryRun)
}

func TestUploadMissingName(t *testing.T) {
	fake, uploader := newTestUploader(t, false)

	outcome := uploader.Upload(context.Background(), &products.RawProduct{
		URL: "https://example.com/products/unnamed",
	})

	assert.Equal(t, OutcomeFailed, outcome.Status)
	assert.Equal(t, "missing name", outcome.Reason)
	assert.Equal(t, "https://example.com/products/unnamed", outcome.URL)
	assert.Empty(t, fake.createdProducts)
}

func TestUploadAssemblesPayload(t *testing.T) {
	fake, uploader := newTestUploader(t, false)

	product := &products.RawProduct{
		URL:                 "https://example.com/products/tk-1170",
		Title:               "Original Kyocera TK-1170 toner cartridge",
		Price:               "KES 12,500.00",
		FullDescriptionHTML: "<p>Toner kit for M2040dn</p>",
	}
	product.Features.Set("Brand", "Kyocera")
	product.Features.Set("Warranty", "1 year")
	product.Features.Set("Duplex", "")

	outcome := uploader.Upload(context.Background(), product)
	require.True(t, outcome.Succeeded())
	assert.NotZero(t, outcome.ProductID)
	assert.Equal(t, `toners\original cartidges`, outcome.Category)

	require.Len(t, fake.createdProducts, 1)
	req := fake.createdProducts[0]
	assert.Equal(t, "Original Kyocera TK-1170 toner cartridge", req.Name)
	assert.Equal(t, "simple", req.Type)
	assert.Equal(t, "publish", req.Status)
	assert.Equal(t, "12500", req.RegularPrice)

	require.Len(t, req.Categories, 1)
	var cat woo.Category
	for _, c := range fake.categories {
		if c.Name == `toners\original cartidges` {
			cat = c
		}
	}
	require.NotZero(t, cat.ID)
	assert.Equal(t, cat.ID, req.Categories[0].ID)

	// Every non-empty feature becomes metadata; only vocabulary keys
	// become structured attributes.
	require.Len(t, req.MetaData, 2)
	assert.Equal(t, "Brand", req.MetaData[0].Key)
	assert.Equal(t, "Warranty", req.MetaData[1].Key)

	require.Len(t, req.Attributes, 1)
	attr := req.Attributes[0]
	assert.Equal(t, "Brand", attr.Name)
	assert.Equal(t, []string{"Kyocera"}, attr.Options)
	assert.True(t, attr.Visible)
	assert.False(t, attr.Variation)

	assert.Contains(t, req.Description, "<h2>KES 12,500.00</h2>")
	assert.Contains(t, req.Description, "Specifications")
	assert.Contains(t, req.Description, "<tr><td><strong>Warranty</strong></td><td>1 year</td></tr>")
	assert.NotContains(t, req.Description, "Duplex", "empty feature values stay out of the table")
	assert.Contains(t, req.Description, "<hr><div class='product-description'><p>Toner kit for M2040dn</p></div>")
}

func TestUploadUnparseablePriceSendsNone(t *testing.T) {
	fake, uploader := newTestUploader(t, false)

	product := &products.RawProduct{
		Title: "Samsung MLT-D101 toner",
		Price: "Call for price",
	}
	outcome := uploader.Upload(context.Background(), product)
	require.True(t, outcome.Succeeded())

	require.Len(t, fake.createdProducts, 1)
	assert.Equal(t, "None", fake.createdProducts[0].RegularPrice)
}

func TestUploadImagePositions(t *testing.T) {
	fake, uploader := newTestUploader(t, false)

	product := &products.RawProduct{
		Title:     "Samsung MLT-D101 toner",
		MainImage: "https://x/a.jpg",
		AllImages: []string{"https://x/a.jpg", "https://x/b.png", "not a url"},
	}
	outcome := uploader.Upload(context.Background(), product)
	require.True(t, outcome.Succeeded())

	images := fake.imageCalls[outcome.ProductID]
	require.Len(t, images, 2)
	assert.Equal(t, woo.Image{Src: "https://x/a.jpg", Position: 0}, images[0])
	assert.Equal(t, woo.Image{Src: "https://x/b.png", Position: 1}, images[1],
		"secondary images keep their source-list index")
}

func TestUploadImageFailureStaysSuccess(t *testing.T) {
	fake, uploader := newTestUploader(t, false)
	fake.imagesErr = errors.New("remote says no")

	product := &products.RawProduct{
		Title:     "Samsung MLT-D101 toner",
		MainImage: "https://x/a.jpg",
		AllImages: []string{"https://x/a.jpg"},
	}
	outcome := uploader.Upload(context.Background(), product)
	assert.True(t, outcome.Succeeded(), "the product exists; image failure is not a product failure")
}

func TestUploadCreateRejected(t *testing.T) {
	fake, uploader := newTestUploader(t, false)
	fake.productErr = &errors.APIError{
		Endpoint:   "products",
		StatusCode: 400,
		Body:       `{"code":"rest_invalid_param"}`,
	}

	outcome := uploader.Upload(context.Background(), &products.RawProduct{
		Title: "Samsung MLT-D101 toner",
	})
	assert.Equal(t, OutcomeFailed, outcome.Status)
	assert.Contains(t, outcome.Reason, "status 400")
	assert.Error(t, outcome.Err)
}

func TestUploadDryRun(t *testing.T) {
	fake, uploader := newTestUploader(t, true)

	outcome := uploader.Upload(context.Background(), &products.RawProduct{
		Title: "Original Kyocera TK-1170 toner cartridge",
		Price: "KES 12,500.00",
	})
	require.True(t, outcome.Succeeded())
	assert.Equal(t, `toners\original cartidges`, outcome.Category, "dry run still classifies")
	assert.Empty(t, fake.createdProducts)
	assert.Empty(t, fake.imageCalls)
}
