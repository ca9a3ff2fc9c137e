package schema

// ShopProductTable represents the 'shop.product' table
type ShopProductTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	PriceCents  string
	ImageURL    string
	Category    string
	IsFeatured  string
	CreatedAt   string
	UpdatedAt   string
}

// ShopProduct is the schema definition for shop.product
var ShopProduct = ShopProductTable{
	Table:       "shop.product",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	PriceCents:  "pricecents",
	ImageURL:    "imageurl",
	Category:    "category",
	IsFeatured:  "isfeatured",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t ShopProductTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.PriceCents,
		t.ImageURL, t.Category, t.IsFeatured, t.CreatedAt, t.UpdatedAt,
	}
}
