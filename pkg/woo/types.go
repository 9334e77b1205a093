package woo

// Category is a product category as the remote catalog reports it.
// Parent is 0 for root categories.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Parent int    `json:"parent"`
}

// CategoryRequest is the creation payload for a category.
type CategoryRequest struct {
	Name   string `json:"name"`
	Parent int    `json:"parent"`
}

// Attribute is a global product attribute definition.
type Attribute struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Type    string `json:"type"`
	OrderBy string `json:"order_by"`
}

// AttributeRequest is the creation payload for an attribute definition.
type AttributeRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	OrderBy     string `json:"order_by"`
	HasArchives bool   `json:"has_archives"`
}

// MetaData is a free-form key/value entry attached to a product.
type MetaData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProductAttribute attaches a provisioned attribute to a product with its
// selected option values.
type ProductAttribute struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// CategoryRef references a category by id in a product payload.
type CategoryRef struct {
	ID int `json:"id"`
}

// ProductRequest is the creation payload for a product.
type ProductRequest struct {
	Name         string             `json:"name"`
	Type         string             `json:"type"`
	Status       string             `json:"status"`
	Description  string             `json:"description"`
	RegularPrice string             `json:"regular_price"`
	MetaData     []MetaData         `json:"meta_data"`
	Attributes   []ProductAttribute `json:"attributes"`
	Categories   []CategoryRef      `json:"categories,omitempty"`
}

// Product is the subset of a created product the importer cares about.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Image is one product image with its gallery position.
type Image struct {
	Src      string `json:"src"`
	Position int    `json:"position"`
}

// errorEnvelope is the WooCommerce structured error payload. A
// duplicate-term conflict carries code "term_exists" and the existing
// term's id under data.resource_id.
type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status     int `json:"status"`
		ResourceID int `json:"resource_id"`
	} `json:"data"`
}
