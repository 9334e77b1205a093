package reconcile

import (
	"context"

	"github.com/prowebkong/woosync/pkg/errors"
	"github.com/prowebkong/woosync/pkg/woo"
)

// fakeCatalog is an in-memory catalogAPI for engine tests. Failure modes
// are opt-in per call site so each test forces exactly one behavior.
type fakeCatalog struct {
	nextID     int
	categories []woo.Category
	attributes []woo.Attribute

	createdCategories []woo.Category
	createdAttributes []woo.AttributeRequest
	createdProducts   []woo.ProductRequest
	imageCalls        map[int][]woo.Image

	categoryConflicts  map[string]int // name -> existing resource id
	attributeConflicts map[string]int
	categoryErrs       map[string]error
	attributeErrs      map[string]error
	listCategoriesErr  error
	listAttributesErr  error
	productErr         error
	imagesErr          error

	onCreateProduct func()
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		nextID:     1000,
		imageCalls: make(map[int][]woo.Image),
	}
}

func (f *fakeCatalog) ListCategories(_ context.Context) ([]woo.Category, error) {
	if f.listCategoriesErr != nil {
		return nil, f.listCategoriesErr
	}
	return append([]woo.Category(nil), f.categories...), nil
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, name string, parent int) (woo.Category, error) {
	if err := ctx.Err(); err != nil {
		return woo.Category{}, err
	}
	if id, ok := f.categoryConflicts[name]; ok {
		return woo.Category{}, &errors.TermExistsError{Resource: "category", Name: name, ResourceID: id}
	}
	if err := f.categoryErrs[name]; err != nil {
		return woo.Category{}, err
	}
	f.nextID++
	cat := woo.Category{ID: f.nextID, Name: name, Parent: parent}
	f.categories = append(f.categories, cat)
	f.createdCategories = append(f.createdCategories, cat)
	return cat, nil
}

func (f *fakeCatalog) ListAttributes(_ context.Context) ([]woo.Attribute, error) {
	if f.listAttributesErr != nil {
		return nil, f.listAttributesErr
	}
	return append([]woo.Attribute(nil), f.attributes...), nil
}

func (f *fakeCatalog) CreateAttribute(ctx context.Context, req woo.AttributeRequest) (woo.Attribute, error) {
	if err := ctx.Err(); err != nil {
		return woo.Attribute{}, err
	}
	if id, ok := f.attributeConflicts[req.Name]; ok {
		return woo.Attribute{}, &errors.TermExistsError{Resource: "attribute", Name: req.Name, ResourceID: id}
	}
	if err := f.attributeErrs[req.Name]; err != nil {
		return woo.Attribute{}, err
	}
	f.nextID++
	attr := woo.Attribute{ID: f.nextID, Name: req.Name, Slug: req.Slug}
	f.attributes = append(f.attributes, attr)
	f.createdAttributes = append(f.createdAttributes, req)
	return attr, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, req woo.ProductRequest) (woo.Product, error) {
	if err := ctx.Err(); err != nil {
		return woo.Product{}, err
	}
	if f.onCreateProduct != nil {
		f.onCreateProduct()
	}
	if f.productErr != nil {
		return woo.Product{}, f.productErr
	}
	f.nextID++
	f.createdProducts = append(f.createdProducts, req)
	return woo.Product{ID: f.nextID, Name: req.Name}, nil
}

func (f *fakeCatalog) UpdateProductImages(_ context.Context, productID int, images []woo.Image) error {
	if f.imagesErr != nil {
		return f.imagesErr
	}
	f.imageCalls[productID] = images
	return nil
}
