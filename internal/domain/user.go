package domain

import "time"

const RoleAdmin = "admin"

// ShopUser represents a storefront account, keyed by email. Role is empty for
// regular users and RoleAdmin for administrators.
type ShopUser struct {
	ID        int64     `json:"id,string" gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:256" json:"email" form:"email"`
	Role      string    `gorm:"size:32" json:"role" form:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (ShopUser) TableName() string {
	return "shop_user"
}
