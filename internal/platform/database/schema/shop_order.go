package schema

// ShopOrderTable represents the 'shop.order' table
type ShopOrderTable struct {
	Table             string
	ID                string
	UserID            string
	TotalCents        string
	ProviderSessionID string
	CreatedAt         string
}

// ShopOrder is the schema definition for shop.order.
// providersessionid carries a UNIQUE constraint: it is the idempotency key
// for checkout-success processing.
var ShopOrder = ShopOrderTable{
	Table:             "shop.order",
	ID:                "id",
	UserID:            "userid",
	TotalCents:        "totalcents",
	ProviderSessionID: "providersessionid",
	CreatedAt:         "createdat",
}

func (t ShopOrderTable) Columns() []string {
	return []string{t.ID, t.UserID, t.TotalCents, t.ProviderSessionID, t.CreatedAt}
}

// ShopOrderItemTable represents the 'shop.order_item' table
type ShopOrderItemTable struct {
	Table          string
	OrderID        string
	ProductID      string
	Quantity       string
	UnitPriceCents string
}

// ShopOrderItem is the schema definition for shop.order_item
var ShopOrderItem = ShopOrderItemTable{
	Table:          "shop.order_item",
	OrderID:        "orderid",
	ProductID:      "productid",
	Quantity:       "quantity",
	UnitPriceCents: "unitpricecents",
}

func (t ShopOrderItemTable) Columns() []string {
	return []string{t.OrderID, t.ProductID, t.Quantity, t.UnitPriceCents}
}
