package reviews

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListPublished returns every published review of a product. Catalog scale
// keeps this small; paging happens in memory.
func (r *Repo) ListPublished(ctx context.Context, productID string) ([]Review, error) {
	var out []Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, StatusPublished).
		Order("created_at DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *Repo) ListPending(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []Review
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *Repo) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *Repo) Get(ctx context.Context, id string) (Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error
	return rv, err
}

// Publish flips a review to published. Returns gorm.ErrRecordNotFound for an
// unknown id; publishing twice keeps the first timestamp.
func (r *Repo) Publish(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rv Review
		if err := tx.First(&rv, "id = ?", id).Error; err != nil {
			return err
		}
		if rv.Status == StatusPublished {
			return nil
		}
		return tx.Model(&Review{}).Where("id = ?", id).
			Updates(map[string]any{"status": StatusPublished, "published_at": at}).Error
	})
}
