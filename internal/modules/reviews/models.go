package reviews

import "time"

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

type Review struct {
	ID          string     `gorm:"primaryKey;type:char(36)"`
	ProductID   string     `gorm:"type:char(36);not null;index:ix_reviews_product_status,priority:1"`
	Status      string     `gorm:"type:varchar(16);not null;index:ix_reviews_product_status,priority:2"`
	Rating      int        `gorm:"not null"`
	Title       string     `gorm:"type:varchar(255)"`
	Body        string     `gorm:"type:text;not null"`
	AuthorName  string     `gorm:"type:varchar(120);not null"`
	AuthorEmail string     `gorm:"type:varchar(255);not null"`
	UserID      *string    `gorm:"type:char(36)"`
	CreatedAt   time.Time  `gorm:"precision:3;not null"`
	PublishedAt *time.Time `gorm:"precision:3"`
}

func (Review) TableName() string { return "reviews" }

func Models() []any { return []any{&Review{}} }
