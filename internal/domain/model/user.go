package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// Role identifies what kind of principal a user is.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
	RoleRider    Role = "rider"
)

// Scan implements sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// User represents a platform principal.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"unique;not null;size:255" json:"email"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Role      Role      `gorm:"size:50;not null" json:"role"`
	Status    string    `gorm:"size:50;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Consumer is a buying principal; it owns the referral code used for
// commission attribution.
type Consumer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;unique;not null" json:"user_id"`
	ReferralCode *string   `gorm:"unique;size:50" json:"referral_code,omitempty"`
	CreatedAt    time.Time `gorm:"default:now()" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Consumer) TableName() string {
	return "consumers"
}

// Vendor is a selling principal and the target of per-order payouts.
type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null" json:"user_id"`
	Status    string    `gorm:"size:50;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}
