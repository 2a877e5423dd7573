package catalog

import "github.com/uptrace/bun"

type Supplier struct {
	bun.BaseModel `bun:"table:suppliers,alias:s"`

	ID                int64  `bun:"id,pk,autoincrement" json:"id"`
	Name              string `bun:"name,notnull" json:"name"`
	ContactInfo       string `bun:"contact_info,notnull" json:"contact_info"`
	ProductCategories string `bun:"product_categories,notnull" json:"product_categories"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	Brand       string  `bun:"brand,notnull" json:"brand"`
	Price       float64 `bun:"price,notnull,type:numeric(10,2)" json:"price"`
	Category    string  `bun:"category,notnull" json:"category"`
	Description string  `bun:"description,notnull" json:"description"`
	SupplierID  *int64  `bun:"supplier_id" json:"supplier_id"`
}
