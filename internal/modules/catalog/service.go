package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/internal/shared/dbx"
	"lumenstore.com/app/internal/shared/handle"
	"lumenstore.com/app/internal/storage"
	"lumenstore.com/app/pkg/view"
)

type Service struct {
	repo  *Repo
	store storage.Storage
	theme config.ThemeSettings
	log   *slog.Logger
}

func NewService(repo *Repo, store storage.Storage, theme config.ThemeSettings, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, store: store, theme: theme, log: log}
}

func errProductNotFound() error { return apperr.NotFoundErr("Product not found.") }

// maxListPage bounds the offset query; later pages are always empty.
const maxListPage = 10000

// List builds one page of product cards. page is 1-based.
func (s *Service) List(ctx context.Context, page int) (view.ProductsPage, error) {
	if page < 1 {
		page = 1
	}
	per := s.theme.ProductsPerPage
	if page > maxListPage {
		return view.ProductsPage{Title: "Products", Products: []view.ProductCard{}, Page: page}, nil
	}
	// one extra row tells us whether a next page exists
	items, err := s.repo.ListActive(ctx, per+1, (page-1)*per)
	if err != nil {
		return view.ProductsPage{}, apperr.Wrap(err)
	}
	hasNext := len(items) > per
	if hasNext {
		items = items[:per]
	}

	cards := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, s.card(p))
	}
	return view.ProductsPage{Title: "Products", Products: cards, Page: page, HasNext: hasNext}, nil
}

func (s *Service) card(p Product) view.ProductCard {
	c := view.ProductCard{ID: p.ID, Handle: p.Handle, Title: p.Title, SoldOut: true}
	if len(p.Images) > 0 {
		c.ImageURL = p.Images[0].URL
	}
	if len(p.Variants) > 0 {
		c.Price = p.Variants[0].Price()
	}
	for _, v := range p.Variants {
		if v.AvailableForSale {
			c.SoldOut = false
			c.VariantID = v.ID
			c.Price = v.Price()
			break
		}
	}
	return c
}

// Detail loads a product by handle and resolves the variant selected by the
// query string (option name -> value, or ?variant=<id>).
func (s *Service) Detail(ctx context.Context, productHandle string, q url.Values) (view.ProductPage, error) {
	p, err := s.repo.GetByHandle(ctx, productHandle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.ProductPage{}, errProductNotFound()
		}
		return view.ProductPage{}, apperr.Wrap(err)
	}

	dups := DuplicateOptionTuples(p.Variants)
	if len(dups) > 0 {
		s.log.LogAttrs(ctx, slog.LevelWarn, "duplicate_option_tuples",
			slog.String("product_id", p.ID),
			slog.String("handle", p.Handle),
			slog.Any("variant_groups", dups),
		)
	}

	sel := SelectionFromQuery(p.Options, p.Variants, q)
	variant := ResolveVariant(sel, p.Options, p.Variants)
	controls := BuildOptionControls(p, sel, s.theme.HideUnavailableOptions)

	page := view.ProductPage{
		ID:                p.ID,
		Handle:            p.Handle,
		Title:             p.Title,
		Vendor:            p.Vendor,
		Description:       strings.TrimSpace(p.Description),
		Images:            imageViews(p.Images),
		Options:           OptionViews(p.Handle, controls),
		Variant:           s.variantView(p, variant),
		DuplicateVariants: dups,
	}
	return page, nil
}

// ResolveSelection is Detail without the page chrome: the variant a selection
// lands on plus per-axis availability.
func (s *Service) ResolveSelection(ctx context.Context, productHandle string, q url.Values) (view.VariantView, []view.OptionView, error) {
	page, err := s.Detail(ctx, productHandle, q)
	if err != nil {
		return view.VariantView{}, nil, err
	}
	return page.Variant, page.Options, nil
}

func (s *Service) variantView(p Product, v Variant) view.VariantView {
	vv := view.VariantView{
		ID:                v.ID,
		SKU:               v.SKU,
		Title:             v.Title(),
		SelectedOptions:   SelectedOptionViews(v.SelectedOptions),
		AvailableForSale:  v.AvailableForSale,
		QuantityAvailable: v.QuantityAvailable,
		Virtual:           v.Virtual,
	}
	switch {
	case v.Virtual:
		vv.StatusLabel = s.theme.UnavailableLabel
		// keep a price on screen: the first variant's
		if len(p.Variants) > 0 {
			vv.Price = p.Variants[0].Price()
		}
	case !v.AvailableForSale:
		vv.StatusLabel = s.theme.SoldOutLabel
		vv.Price = v.Price()
		vv.CompareAtPrice = v.CompareAtPrice()
	default:
		vv.Price = v.Price()
		vv.CompareAtPrice = v.CompareAtPrice()
	}
	vv.ImageURL = p.VariantImageURL(v)
	return vv
}

func imageViews(images []Image) []view.ImageView {
	out := make([]view.ImageView, 0, len(images))
	for _, im := range images {
		out = append(out, view.ImageView{ID: im.ID, URL: im.URL, Alt: im.Alt})
	}
	return out
}

// SelectedOptionViews converts an option tuple for rendering.
func SelectedOptionViews(opts []SelectedOption) []view.SelectedOption {
	out := make([]view.SelectedOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, view.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return out
}

// NewProductInput is the shape the seed tool and admin import hand over.
type NewProductInput struct {
	Title       string
	Vendor      string
	Description string
	Options     []Option
	Variants    []Variant
}

// CreateProduct derives a unique handle from the title and stores the product.
func (s *Service) CreateProduct(ctx context.Context, in NewProductInput) (Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Product{}, apperr.InvalidErr("Title is required.", map[string]string{"title": "Title is required."})
	}
	var lookupErr error
	h := handle.Unique(handle.FromTitle(title), func(c string) bool {
		taken, err := s.repo.HandleTaken(ctx, c)
		if err != nil {
			lookupErr = err
			return false
		}
		return taken
	})
	if lookupErr != nil {
		return Product{}, apperr.Wrap(lookupErr)
	}

	p := Product{
		Handle:      h,
		Title:       title,
		Vendor:      in.Vendor,
		Description: in.Description,
		Options:     in.Options,
		Variants:    in.Variants,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		if dbx.IsDuplicateKey(err) {
			return Product{}, apperr.ConflictErr("A product with this handle or SKU already exists.").WithCause(err)
		}
		return Product{}, apperr.Wrap(err)
	}
	if dups := DuplicateOptionTuples(p.Variants); len(dups) > 0 {
		s.log.LogAttrs(ctx, slog.LevelWarn, "duplicate_option_tuples",
			slog.String("product_id", p.ID),
			slog.Any("variant_groups", dups),
		)
	}
	return p, nil
}

// AttachImage uploads r to storage and appends it to the product gallery.
// The stored object is removed again if the row cannot be written.
func (s *Service) AttachImage(ctx context.Context, productID string, r io.Reader, in storage.PutInput, alt string) (Image, error) {
	if s.store == nil {
		return Image{}, apperr.Wrap(errors.New("catalog: no storage configured"))
	}
	if _, err := s.repo.Get(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Image{}, errProductNotFound()
		}
		return Image{}, apperr.Wrap(err)
	}

	res, err := s.store.Put(ctx, r, in)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return Image{}, apperr.InvalidErr("Only PNG, JPEG, WebP and GIF images are accepted.", map[string]string{"image": "Unsupported file type."})
		}
		return Image{}, apperr.Wrap(fmt.Errorf("store image: %w", err))
	}

	pos, err := s.repo.NextImagePosition(ctx, productID)
	if err != nil {
		_ = s.store.Delete(ctx, res.Key)
		return Image{}, apperr.Wrap(err)
	}
	im, err := s.repo.AddImage(ctx, productID, res.Key, res.URL, alt, pos)
	if err != nil {
		if delErr := s.store.Delete(ctx, res.Key); delErr != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "orphaned_image_object",
				slog.String("key", res.Key), slog.Any("err", delErr))
		}
		return Image{}, apperr.Wrap(err)
	}
	return im, nil
}

func (s *Service) RemoveImage(ctx context.Context, productID, imageID string) error {
	im, err := s.repo.GetImage(ctx, productID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundErr("Image not found.")
		}
		return apperr.Wrap(err)
	}
	if err := s.repo.DeleteImage(ctx, productID, imageID); err != nil {
		return apperr.Wrap(err)
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, im.StorageKey); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "image_object_delete_failed",
				slog.String("key", im.StorageKey), slog.Any("err", err))
		}
	}
	return nil
}

// StockInput is an inventory update for one variant. AvailableForSale
// defaults to Quantity > 0.
type StockInput struct {
	Quantity         int
	AvailableForSale *bool
}

// SetStock records a variant's inventory and returns the stored variant.
func (s *Service) SetStock(ctx context.Context, variantID string, in StockInput) (Variant, error) {
	if in.Quantity < 0 {
		msg := "Quantity cannot be negative."
		return Variant{}, apperr.InvalidErr(msg, map[string]string{"quantity": msg})
	}
	if _, err := s.repo.GetVariant(ctx, variantID); err != nil {
		if dbx.IsNotFound(err) {
			return Variant{}, apperr.NotFoundErr("Variant not found.")
		}
		return Variant{}, apperr.Wrap(err)
	}
	available := in.Quantity > 0
	if in.AvailableForSale != nil {
		available = *in.AvailableForSale
	}
	if err := s.repo.UpdateVariantStock(ctx, variantID, in.Quantity, available); err != nil {
		return Variant{}, apperr.Wrap(err)
	}
	v, err := s.repo.GetVariant(ctx, variantID)
	if err != nil {
		return Variant{}, apperr.Wrap(err)
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "variant_stock_set",
		slog.String("variant_id", variantID),
		slog.Int("quantity", v.QuantityAvailable),
		slog.Bool("available_for_sale", v.AvailableForSale))
	return v, nil
}
