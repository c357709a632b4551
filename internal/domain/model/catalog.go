package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shop belongs to exactly one vendor; products hang off the shop, which is
// how a settled order item is traced back to the vendor that gets paid.
type Shop struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VendorID  uuid.UUID `gorm:"type:uuid;unique;not null" json:"vendor_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	Vendor *Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// TableName specifies the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// Product is a sellable item.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name       string          `gorm:"not null;size:255" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Attributes JSONB           `gorm:"type:jsonb" json:"attributes,omitempty"`
	CreatedAt  time.Time       `gorm:"default:now()" json:"created_at"`

	Shop *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}
