package domain

import "time"

const DefaultSupplier = "BABISHA Collections"

type (
	Product struct {
		ID             string
		Name           string
		Category       string
		Description    string
		Price          float64
		OriginalPrice  *float64
		DiscountPrice  *float64
		Stock          int
		IsActive       bool
		Specifications map[string]string
		Supplier       string
		Rating         float64
		Reviews        int
		OnSale         bool
		Savings        *float64
		Images         []ProductImage
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	// ProductImage keeps both the public URL and the storage path so a
	// product delete can ask the object store to remove the binary.
	// Slice order is display order.
	ProductImage struct {
		URL  string
		Path string
	}
)

// ProductPatch is a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name           *string
	Category       *string
	Description    *string
	Price          *float64
	OriginalPrice  *float64
	DiscountPrice  *float64
	Stock          *int
	IsActive       *bool
	Specifications map[string]string
	Supplier       *string
	Rating         *float64
	Reviews        *int
	OnSale         *bool
	Savings        *float64
	Images         *[]ProductImage
}

// ApplyDefaults fills the documented create-time defaults for fields the
// caller omitted.
func (p *Product) ApplyDefaults() {
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	if p.Supplier == "" {
		p.Supplier = DefaultSupplier
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}

// ImageURLs returns the display-ordered image URLs.
func (p Product) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}
