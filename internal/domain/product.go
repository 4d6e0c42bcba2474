package domain

import "time"

// Product represents a catalog item. Quantity is available stock and is only
// mutated through the conditional decrement performed at order placement.
type Product struct {
	ID          int64     `json:"id,string" gorm:"primaryKey"`
	Name        string    `gorm:"index" json:"name"`
	Price       float64   `json:"price"`
	Image       string    `gorm:"size:1024" json:"image"`
	Supplier    string    `json:"supplier"`
	Description string    `gorm:"size:2048" json:"description"`
	MinOrderQty int       `json:"minOrderQty"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}
