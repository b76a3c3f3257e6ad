package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

// VariantSource resolves cart merchandise. *catalog.Repo satisfies it.
type VariantSource interface {
	GetVariants(ctx context.Context, ids []string) (map[string]catalog.Variant, map[string]catalog.Product, error)
}

type Service struct {
	repo     *Repo
	variants VariantSource
	pending  *Pending
	log      *slog.Logger
}

func NewService(repo *Repo, variants VariantSource, pending *Pending, log *slog.Logger) *Service {
	if pending == nil {
		pending = NewPending()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, variants: variants, pending: pending, log: log}
}

var ErrMixedCurrency = errors.New("cart contains multiple currencies")

// Result is the outcome of one cart action. Errors holds per-line problems
// that did not fail the whole action.
type Result struct {
	CartID string
	Errors []string
}

// Ensure returns a usable cart id: cartID when it still exists, else the
// user's latest cart, else a new one. changed reports whether the caller must
// store a new cookie.
func (s *Service) Ensure(ctx context.Context, cartID string, userID *string) (string, bool, error) {
	if cartID != "" {
		if _, err := s.repo.Get(ctx, cartID); err == nil {
			return cartID, false, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, apperr.Wrap(err)
		}
	}
	if userID != nil {
		id, err := s.repo.UserCartID(ctx, *userID)
		if err != nil {
			return "", false, apperr.Wrap(err)
		}
		if id != "" {
			return id, true, nil
		}
	}
	c, err := s.repo.Create(ctx, userID)
	if err != nil {
		return "", false, apperr.Wrap(err)
	}
	return c.ID, true, nil
}

// Apply runs one /cart action against cartID.
func (s *Service) Apply(ctx context.Context, cartID string, in FormInput) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}
	res := Result{CartID: cartID}
	var err error
	switch in.Action {
	case ActionLinesAdd:
		res.Errors, err = s.addLines(ctx, cartID, in.Inputs.Lines)
	case ActionLinesUpdate:
		res.Errors, err = s.updateLines(ctx, cartID, in.Inputs.Lines)
	case ActionLinesRemove:
		err = s.removeLines(ctx, cartID, in.Inputs.LineIDs)
	case ActionNoteUpdate:
		err = s.repo.UpdateNote(ctx, cartID, strings.TrimSpace(*in.Inputs.Note))
	case ActionDiscountCodesUpdate:
		err = s.repo.UpdateDiscountCodes(ctx, cartID, normalizeCodes(in.Inputs.DiscountCodes))
	}
	if err != nil {
		var ae *apperr.AppError
		if errors.As(err, &ae) {
			return res, err
		}
		s.log.LogAttrs(ctx, slog.LevelError, "cart_action_failed",
			slog.String("cart_id", cartID),
			slog.String("action", string(in.Action)),
			slog.Any("err", err),
		)
		return res, apperr.Wrap(err)
	}
	return res, nil
}

func (s *Service) addLines(ctx context.Context, cartID string, lines []LineInput) ([]string, error) {
	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines)+len(c.Lines))
	for _, l := range lines {
		ids = append(ids, strings.TrimSpace(l.MerchandiseID))
	}
	for _, l := range c.Lines {
		ids = append(ids, l.VariantID)
	}
	variants, products, err := s.variants.GetVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	// a cart is priced in the currency of its first line
	currency := ""
	for _, l := range c.Lines {
		if v, ok := variants[l.VariantID]; ok {
			currency = v.Price().CurrencyCode
			break
		}
	}

	var userErrs []string
	added := 0
	for i, l := range lines {
		v, ok := variants[ids[i]]
		if !ok {
			userErrs = append(userErrs, "This item is no longer available.")
			continue
		}
		if !v.AvailableForSale {
			userErrs = append(userErrs, fmt.Sprintf("%s (%s) is sold out.", products[v.ProductID].Title, v.Title()))
			continue
		}
		code := v.Price().CurrencyCode
		if currency != "" && code != currency {
			userErrs = append(userErrs, fmt.Sprintf("%s is priced in %s and cannot be added to a cart in %s.",
				products[v.ProductID].Title, code, currency))
			continue
		}
		qty := 1
		if l.Quantity != nil {
			qty = clamp(*l.Quantity, 1, MaxLineQuantity)
		}
		if _, err := s.repo.AddLine(ctx, cartID, v.ID, qty); err != nil {
			return userErrs, err
		}
		currency = code
		added++
	}
	if added == 0 && len(userErrs) > 0 {
		return userErrs, apperr.ConflictErr(userErrs[0])
	}
	return userErrs, nil
}

func (s *Service) updateLines(ctx context.Context, cartID string, lines []LineInput) ([]string, error) {
	patches := make([]Patch, 0, len(lines))
	for _, l := range lines {
		patches = append(patches, QuantityPatch(l.ID, clamp(*l.Quantity, 0, MaxLineQuantity)))
	}
	patches = s.pending.Begin(cartID, patches...)
	defer s.pending.Release(cartID, patches)

	var userErrs []string
	for _, p := range patches {
		qty := 0
		if p.Quantity != nil {
			qty = *p.Quantity
		}
		err := s.repo.SetLineQuantity(ctx, cartID, p.LineID, qty)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userErrs = append(userErrs, "This cart line no longer exists.")
			continue
		}
		if err != nil {
			return userErrs, err
		}
	}
	return userErrs, nil
}

func (s *Service) removeLines(ctx context.Context, cartID string, lineIDs []string) error {
	patches := make([]Patch, 0, len(lineIDs))
	for _, id := range lineIDs {
		patches = append(patches, RemovePatch(id))
	}
	patches = s.pending.Begin(cartID, patches...)
	defer s.pending.Release(cartID, patches)
	return s.repo.RemoveLines(ctx, cartID, lineIDs)
}

// Page builds the cart as the shopper should see it: server lines with any
// in-flight patches applied. Hidden lines are kept but left out of totals.
func (s *Service) Page(ctx context.Context, cartID string) (view.CartPage, error) {
	empty := view.CartPage{Lines: []view.CartLineView{}}
	if cartID == "" {
		return empty, nil
	}
	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return empty, nil
		}
		return view.CartPage{}, apperr.Wrap(err)
	}

	effective := s.pending.Reconcile(cartID, c.Lines)
	ids := make([]string, 0, len(effective))
	for _, l := range effective {
		ids = append(ids, l.VariantID)
	}
	variants, products, err := s.variants.GetVariants(ctx, ids)
	if err != nil {
		return view.CartPage{}, apperr.Wrap(err)
	}

	page := view.CartPage{
		ID:            c.ID,
		Lines:         make([]view.CartLineView, 0, len(effective)),
		Note:          c.Note,
		DiscountCodes: []string(c.DiscountCodes),
	}
	currency := ""
	for _, l := range effective {
		v, ok := variants[l.VariantID]
		if !ok {
			// variant deleted from the catalog
			continue
		}
		p := products[v.ProductID]
		unit := v.Price()
		lv := view.CartLineView{
			ID:               l.ID,
			VariantID:        v.ID,
			ProductHandle:    p.Handle,
			ProductTitle:     p.Title,
			VariantTitle:     v.Title(),
			SelectedOptions:  catalog.SelectedOptionViews(v.SelectedOptions),
			ImageURL:         p.VariantImageURL(v),
			Quantity:         l.Quantity,
			UnitPrice:        unit,
			LineTotal:        unit.Times(l.Quantity),
			Hidden:           l.Hidden,
			Pending:          l.Pending,
			AvailableForSale: v.AvailableForSale,
		}
		page.Lines = append(page.Lines, lv)
		if l.Hidden {
			continue
		}
		if currency == "" {
			currency = unit.CurrencyCode
		} else if unit.CurrencyCode != currency {
			return view.CartPage{}, apperr.Wrap(fmt.Errorf("cart %s: %w", cartID, ErrMixedCurrency))
		}
		page.TotalQuantity += l.Quantity
		page.Subtotal = page.Subtotal.Add(lv.LineTotal)
	}
	if page.Subtotal.CurrencyCode == "" {
		page.Subtotal.CurrencyCode = currency
	}
	return page, nil
}

// Count is the header badge number.
func (s *Service) Count(ctx context.Context, cartID string) (int, error) {
	if cartID == "" {
		return 0, nil
	}
	n, err := s.repo.TotalQuantity(ctx, cartID)
	if err != nil {
		return 0, apperr.Wrap(err)
	}
	return n, nil
}

// Claim attaches the anonymous cart to a user after login. When the user
// already owns a cart, the anonymous lines are merged into it and the
// anonymous cart is deleted. The returned id is the cart to keep using.
func (s *Service) Claim(ctx context.Context, cartID, userID string) (string, error) {
	owned, err := s.repo.UserCartID(ctx, userID)
	if err != nil {
		return "", apperr.Wrap(err)
	}
	if cartID == "" {
		return owned, nil
	}
	anon, err := s.repo.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return owned, nil
		}
		return "", apperr.Wrap(err)
	}
	if anon.UserID != nil && *anon.UserID != userID {
		// someone else's cart; leave it alone
		return owned, nil
	}
	if owned == "" || owned == cartID {
		if err := s.repo.SetOwner(ctx, cartID, userID); err != nil {
			return "", apperr.Wrap(err)
		}
		return cartID, nil
	}

	for _, l := range anon.Lines {
		if _, err := s.repo.AddLine(ctx, owned, l.VariantID, l.Quantity); err != nil {
			return "", apperr.Wrap(err)
		}
	}
	if err := s.repo.Delete(ctx, cartID); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "cart_merge_cleanup_failed",
			slog.String("cart_id", cartID), slog.Any("err", err))
	}
	return owned, nil
}
