package entity

import "time"

// Category agrupa productos.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string // hex, ej. #6B7280
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultCategoryColor color asignado cuando no se envía uno.
const DefaultCategoryColor = "#6B7280"

// DefaultCategories se insertan cuando la colección está vacía.
var DefaultCategories = []Category{
	{Name: "Electronics", Color: "#3B82F6", Description: "Electronic devices and accessories"},
	{Name: "Clothing", Color: "#10B981", Description: "Apparel and fashion items"},
	{Name: "Home & Kitchen", Color: "#F59E0B", Description: "Home goods and kitchen supplies"},
	{Name: "Office Supplies", Color: "#6366F1", Description: "Office equipment and supplies"},
	{Name: "Food & Beverages", Color: "#EC4899", Description: "Consumable food and drink items"},
	{Name: "Other", Color: DefaultCategoryColor, Description: "Miscellaneous items"},
}
