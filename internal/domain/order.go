package domain

import "time"

// Order represents a placed order. TransactionID and Paid stay empty until the
// client attaches its payment confirmation; neither is verified against the
// payment gateway.
type Order struct {
	ID            int64     `json:"id,string" gorm:"primaryKey"`
	ProductID     int64     `json:"productId,string" gorm:"index"`
	Email         string    `gorm:"index;size:256" json:"email"`
	ProductName   string    `json:"productName"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Address       string    `gorm:"size:1024" json:"address"`
	Phone         string    `gorm:"size:64" json:"phone"`
	TransactionID string    `gorm:"size:256" json:"transactionId"`
	Paid          *bool     `json:"paid,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "shop_order"
}
