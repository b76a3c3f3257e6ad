package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Options.Values", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

func (r *Repo) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *Repo) GetByHandle(ctx context.Context, handle string) (Product, error) {
	var p Product
	err := withDetail(r.db.WithContext(ctx)).
		Where("handle = ? AND status = ?", handle, StatusActive).
		First(&p).Error
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := withDetail(r.db.WithContext(ctx)).First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) HandleTaken(ctx context.Context, handle string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).Where("handle = ?", handle).Count(&n).Error
	return n > 0, err
}

// GetVariants loads variants by id together with their product (options and
// images included). Missing ids are simply absent from the result.
func (r *Repo) GetVariants(ctx context.Context, ids []string) (map[string]Variant, map[string]Product, error) {
	variants := map[string]Variant{}
	products := map[string]Product{}
	if len(ids) == 0 {
		return variants, products, nil
	}

	var rows []Variant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	productIDs := make([]string, 0, len(rows))
	for _, v := range rows {
		variants[v.ID] = v
		if _, ok := products[v.ProductID]; !ok {
			products[v.ProductID] = Product{}
			productIDs = append(productIDs, v.ProductID)
		}
	}
	if len(productIDs) == 0 {
		return variants, products, nil
	}

	var ps []Product
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id IN ?", productIDs).
		Find(&ps).Error; err != nil {
		return nil, nil, err
	}
	for _, p := range ps {
		products[p.ID] = p
	}
	return variants, products, nil
}

func (r *Repo) GetVariant(ctx context.Context, id string) (Variant, error) {
	var v Variant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return v, err
}

// Create inserts a product with its options, values, variants and images in
// one transaction. Missing ids and timestamps are filled in.
func (r *Repo) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	p.CreatedAt, p.UpdatedAt = now, now
	for i := range p.Options {
		o := &p.Options[i]
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		o.Position = i
		for j := range o.Values {
			if o.Values[j].ID == "" {
				o.Values[j].ID = uuid.NewString()
			}
			o.Values[j].Position = j
		}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if v.SKU == "" {
			v.SKU = fmt.Sprintf("%s-%d", strings.ToUpper(p.Handle), i+1)
		}
		v.Position = i
		v.CreatedAt, v.UpdatedAt = now, now
	}
	for i := range p.Images {
		im := &p.Images[i]
		if im.ID == "" {
			im.ID = uuid.NewString()
		}
		im.Position = i
		im.CreatedAt = now
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
}

func (r *Repo) UpdateVariantStock(ctx context.Context, variantID string, qty int, availableForSale bool) error {
	return r.db.WithContext(ctx).Model(&Variant{}).
		Where("id = ?", variantID).
		Updates(map[string]any{
			"quantity_available": qty,
			"available_for_sale": availableForSale,
			"updated_at":         time.Now(),
		}).Error
}

func (r *Repo) NextImagePosition(ctx context.Context, productID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Image{}).Where("product_id = ?", productID).Count(&n).Error
	return int(n), err
}

func (r *Repo) AddImage(ctx context.Context, productID, storageKey, url, alt string, position int) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		Alt:        alt,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) GetImage(ctx context.Context, productID, imageID string) (Image, error) {
	var im Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND product_id = ?", imageID, productID).Error
	return im, err
}

func (r *Repo) DeleteImage(ctx context.Context, productID, imageID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&Image{}).Error
}
