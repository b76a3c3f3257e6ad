package cart

import (
	"time"

	"gorm.io/datatypes"
)

// MaxLineQuantity caps a single line.
const MaxLineQuantity = 99

type Cart struct {
	ID            string                      `gorm:"primaryKey;type:char(36)"`
	UserID        *string                     `gorm:"type:char(36);index"`
	Note          string                      `gorm:"type:text"`
	DiscountCodes datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt     time.Time                   `gorm:"precision:3;not null"`
	UpdatedAt     time.Time                   `gorm:"precision:3;not null"`

	Lines []Line `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

// Line is one variant in a cart. A cart holds at most one line per variant.
type Line struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	CartID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_cart_lines_variant,priority:1"`
	VariantID string    `gorm:"type:char(36);not null;uniqueIndex:ux_cart_lines_variant,priority:2"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"precision:3;not null"`
	UpdatedAt time.Time `gorm:"precision:3;not null"`
}

func (Line) TableName() string { return "cart_lines" }

func Models() []any { return []any{&Cart{}, &Line{}} }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
