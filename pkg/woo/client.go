// Package woo is a typed client for the WooCommerce REST catalog API
// (/wp-json/wc/v3). It covers exactly the surface the import engine
// needs: paged category listing, category/attribute/product creation, and
// the follow-up image update.
//
// Every mutating call waits on a shared token-bucket limiter first, so
// the importer never hammers the remote store regardless of which
// component issues the call.
package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/prowebkong/woosync/internal/transport"
	"github.com/prowebkong/woosync/pkg/constants"
	"github.com/prowebkong/woosync/pkg/errors"
)

// Config holds the remote catalog coordinates and tuning knobs.
type Config struct {
	// BaseURL is the REST root, e.g. https://example.com/wp-json/wc/v3
	BaseURL string

	// ConsumerKey and ConsumerSecret authenticate every call.
	ConsumerKey    string
	ConsumerSecret string

	// PageSize is the per_page value for list calls.
	PageSize int

	// RequestTimeout bounds taxonomy and attribute calls. Product calls
	// get double this, matching their larger payloads.
	RequestTimeout time.Duration

	// PacingDelay is the minimum interval between mutating calls. Zero
	// disables pacing.
	PacingDelay time.Duration
}

// Client talks to one WooCommerce store.
type Client struct {
	base      string
	pageSize  int
	transport *transport.Client
	uploads   *transport.Client
	limiter   *rate.Limiter
}

// New creates a client for the store described by cfg.
func New(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = constants.DefaultPageSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = constants.DefaultHTTPTimeout
	}

	auth := &transport.BasicAuth{Key: cfg.ConsumerKey, Secret: cfg.ConsumerSecret}

	var limiter *rate.Limiter
	if cfg.PacingDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.PacingDelay), 1)
	}

	return &Client{
		base:     cfg.BaseURL,
		pageSize: cfg.PageSize,
		transport: transport.New(auth).
			WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		uploads: transport.New(auth).
			WithHTTPClient(&http.Client{Timeout: 2 * cfg.RequestTimeout}),
		limiter: limiter,
	}
}

// pace blocks until the limiter allows the next mutating call.
func (c *Client) pace(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// ListCategories returns every category in the remote catalog, following
// pages until a short page signals the end.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var all []Category
	for page := 1; ; page++ {
		batch, err := c.listCategoriesPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

func (c *Client) listCategoriesPage(ctx context.Context, page int) ([]Category, error) {
	endpoint := c.endpoint("products/categories", url.Values{
		"per_page": {strconv.Itoa(c.pageSize)},
		"page":     {strconv.Itoa(page)},
	})

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var batch []Category
	if err := transport.DecodeResponse(resp, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// CreateCategory creates a category under the given parent (0 for root).
// A duplicate-term conflict is returned as *errors.TermExistsError so the
// caller can recover the existing id.
func (c *Client) CreateCategory(ctx context.Context, name string, parent int) (Category, error) {
	if err := c.pace(ctx); err != nil {
		return Category{}, err
	}

	resp, err := c.transport.PostJSON(ctx, c.endpoint("products/categories", nil),
		CategoryRequest{Name: name, Parent: parent})
	if err != nil {
		return Category{}, err
	}

	var created Category
	if err := transport.DecodeResponse(resp, &created); err != nil {
		return Category{}, termExists("category", name, err)
	}
	return created, nil
}

// ListAttributes returns every global attribute definition.
func (c *Client) ListAttributes(ctx context.Context) ([]Attribute, error) {
	endpoint := c.endpoint("products/attributes", url.Values{
		"per_page": {strconv.Itoa(c.pageSize)},
	})

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var attrs []Attribute
	if err := transport.DecodeResponse(resp, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// CreateAttribute creates a global attribute definition. Duplicate terms
// come back as *errors.TermExistsError, same as categories.
func (c *Client) CreateAttribute(ctx context.Context, req AttributeRequest) (Attribute, error) {
	if err := c.pace(ctx); err != nil {
		return Attribute{}, err
	}

	resp, err := c.transport.PostJSON(ctx, c.endpoint("products/attributes", nil), req)
	if err != nil {
		return Attribute{}, err
	}

	var created Attribute
	if err := transport.DecodeResponse(resp, &created); err != nil {
		return Attribute{}, termExists("attribute", req.Name, err)
	}
	return created, nil
}

// CreateProduct submits a new product.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (Product, error) {
	if err := c.pace(ctx); err != nil {
		return Product{}, err
	}

	resp, err := c.uploads.PostJSON(ctx, c.endpoint("products", nil), req)
	if err != nil {
		return Product{}, err
	}

	var created Product
	if err := transport.DecodeResponse(resp, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

// UpdateProductImages attaches images to an existing product.
func (c *Client) UpdateProductImages(ctx context.Context, productID int, images []Image) error {
	if err := c.pace(ctx); err != nil {
		return err
	}

	endpoint := c.endpoint(fmt.Sprintf("products/%d", productID), nil)
	resp, err := c.uploads.PutJSON(ctx, endpoint, map[string][]Image{"images": images})
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, nil)
}

// endpoint joins the base URL with a path and optional query parameters.
func (c *Client) endpoint(path string, query url.Values) string {
	endpoint := c.base + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// termExists inspects an API error body for the WooCommerce term_exists
// envelope and converts it into a TermExistsError. Any other error passes
// through unchanged.
func termExists(resource, name string, err error) error {
	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	var envelope errorEnvelope
	if jsonErr := json.Unmarshal([]byte(apiErr.Body), &envelope); jsonErr != nil {
		return err
	}
	if envelope.Code != "term_exists" {
		return err
	}

	return &errors.TermExistsError{
		Resource:   resource,
		Name:       name,
		ResourceID: envelope.Data.ResourceID,
	}
}
