package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumenstore.com/app/internal/shared/dbx"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, userID *string) (Cart, error) {
	now := time.Now()
	c := Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	err := r.db.WithContext(ctx).Create(&c).Error
	return c, err
}

// Get loads a cart with its lines in the order they were added.
func (r *Repo) Get(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&c, "id = ?", cartID).Error
	return c, err
}

// UserCartID returns the most recently touched cart of a user, or "".
func (r *Repo) UserCartID(ctx context.Context, userID string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Cart{}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

func (r *Repo) SetOwner(ctx context.Context, cartID, userID string) error {
	return r.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{"user_id": userID, "updated_at": time.Now()}).Error
}

// AddLine adds qty of a variant, merging into an existing line. The merged
// quantity is capped at MaxLineQuantity.
func (r *Repo) AddLine(ctx context.Context, cartID, variantID string, qty int) (Line, error) {
	l, err := r.addLine(ctx, cartID, variantID, qty)
	if dbx.IsDuplicateKey(err) {
		// a concurrent first add created the line after our lookup; the
		// second pass finds it and merges
		return r.addLine(ctx, cartID, variantID, qty)
	}
	return l, err
}

func (r *Repo) addLine(ctx context.Context, cartID, variantID string, qty int) (Line, error) {
	var out Line
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		var existing Line
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND variant_id = ?", cartID, variantID).
			First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity = clamp(existing.Quantity+qty, 1, MaxLineQuantity)
			existing.UpdatedAt = now
			if err := tx.Model(&Line{}).Where("id = ?", existing.ID).
				Updates(map[string]any{"quantity": existing.Quantity, "updated_at": now}).Error; err != nil {
				return err
			}
			out = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = Line{
				ID:        uuid.NewString(),
				CartID:    cartID,
				VariantID: variantID,
				Quantity:  clamp(qty, 1, MaxLineQuantity),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&out).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return touch(tx, cartID, now)
	})
	return out, err
}

// SetLineQuantity sets a line's quantity; zero or less deletes it. Returns
// gorm.ErrRecordNotFound when the line is not in the cart.
func (r *Repo) SetLineQuantity(ctx context.Context, cartID, lineID string, qty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l Line
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ? AND cart_id = ?", lineID, cartID).Error; err != nil {
			return err
		}
		now := time.Now()
		if qty <= 0 {
			if err := tx.Delete(&Line{}, "id = ?", l.ID).Error; err != nil {
				return err
			}
		} else if err := tx.Model(&Line{}).Where("id = ?", l.ID).
			Updates(map[string]any{"quantity": clamp(qty, 1, MaxLineQuantity), "updated_at": now}).Error; err != nil {
			return err
		}
		return touch(tx, cartID, now)
	})
}

// RemoveLines deletes the given lines. Ids not in the cart are ignored.
func (r *Repo) RemoveLines(ctx context.Context, cartID string, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND id IN ?", cartID, lineIDs).Delete(&Line{}).Error; err != nil {
			return err
		}
		return touch(tx, cartID, time.Now())
	})
}

func (r *Repo) UpdateNote(ctx context.Context, cartID, note string) error {
	return r.db.WithContext(ctx).Model(&Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"note": note, "updated_at": time.Now()}).Error
}

func (r *Repo) UpdateDiscountCodes(ctx context.Context, cartID string, codes []string) error {
	return r.db.WithContext(ctx).Model(&Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"discount_codes": datatypes.JSONSlice[string](append([]string{}, codes...)), "updated_at": time.Now()}).Error
}

// TotalQuantity sums line quantities for the header badge.
func (r *Repo) TotalQuantity(ctx context.Context, cartID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Line{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&n).Error
	return int(n), err
}

func (r *Repo) Delete(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&Line{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Cart{}, "id = ?", cartID).Error
	})
}

func touch(tx *gorm.DB, cartID string, now time.Time) error {
	return tx.Model(&Cart{}).Where("id = ?", cartID).Update("updated_at", now).Error
}
