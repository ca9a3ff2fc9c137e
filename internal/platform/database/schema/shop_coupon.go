package schema

// ShopCouponTable represents the 'shop.coupon' table
type ShopCouponTable struct {
	Table           string
	ID              string
	Code            string
	UserID          string
	DiscountPercent string
	ExpiresAt       string
	IsActive        string
	CreatedAt       string
}

// ShopCoupon is the schema definition for shop.coupon
var ShopCoupon = ShopCouponTable{
	Table:           "shop.coupon",
	ID:              "id",
	Code:            "code",
	UserID:          "userid",
	DiscountPercent: "discountpercent",
	ExpiresAt:       "expiresat",
	IsActive:        "isactive",
	CreatedAt:       "createdat",
}

func (t ShopCouponTable) Columns() []string {
	return []string{t.ID, t.Code, t.UserID, t.DiscountPercent, t.ExpiresAt, t.IsActive, t.CreatedAt}
}
