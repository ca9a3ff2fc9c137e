package schema

// ShopCartItemTable represents the 'shop.cart_item' table
type ShopCartItemTable struct {
	Table     string
	UserID    string
	ProductID string
	Quantity  string
	UpdatedAt string
}

// ShopCartItem is the schema definition for shop.cart_item.
// Primary key is (userid, productid): the cart is a keyed mapping from
// product to quantity, never a list with duplicates.
var ShopCartItem = ShopCartItemTable{
	Table:     "shop.cart_item",
	UserID:    "userid",
	ProductID: "productid",
	Quantity:  "quantity",
	UpdatedAt: "updatedat",
}

func (t ShopCartItemTable) Columns() []string {
	return []string{t.UserID, t.ProductID, t.Quantity, t.UpdatedAt}
}
