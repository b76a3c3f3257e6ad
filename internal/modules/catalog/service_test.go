package catalog

import (
	"bytes"
	"context"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/internal/storage"
	"lumenstore.com/app/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *Repo) {
	t.Helper()
	db := testutil.OpenDB(t, Models()...)
	repo := NewRepo(db)
	store := storage.NewLocal(t.TempDir(), "/uploads")
	return NewService(repo, store, config.DefaultTheme(), testutil.Logger()), repo
}

func seedTee(t *testing.T, svc *Service) Product {
	t.Helper()
	in := tee()
	p, err := svc.CreateProduct(context.Background(), NewProductInput{
		Title:    "Classic Tée",
		Vendor:   "Lumen",
		Options:  in.Options,
		Variants: in.Variants,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct_DerivesUniqueHandle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := seedTee(t, svc)
	assert.Equal(t, "classic-tee", first.Handle)

	second, err := svc.CreateProduct(ctx, NewProductInput{Title: "Classic Tee"})
	require.NoError(t, err)
	assert.Equal(t, "classic-tee-2", second.Handle)
}

func TestCreateProduct_RequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateProduct(context.Background(), NewProductInput{Title: "  "})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Invalid))
}

func TestDetail_ResolvesSelectionFromQuery(t *testing.T) {
	svc, _ := newTestService(t)
	p := seedTee(t, svc)
	ctx := context.Background()

	page, err := svc.Detail(ctx, p.Handle, url.Values{"Color": {"Blue"}})
	require.NoError(t, err)
	assert.Equal(t, "v-s-blue", page.Variant.ID)
	assert.True(t, page.Variant.AvailableForSale)
	assert.Equal(t, "$27.00", page.Variant.Price.String())
	require.Len(t, page.Options, 2)
	assert.Nil(t, page.DuplicateVariants)

	page, err = svc.Detail(ctx, p.Handle, url.Values{"Size": {"M"}, "Color": {"Red"}})
	require.NoError(t, err)
	assert.False(t, page.Variant.Virtual)
	assert.False(t, page.Variant.AvailableForSale)
	assert.Equal(t, "Sold out", page.Variant.StatusLabel)
}

func TestResolveSelection_VirtualVariant(t *testing.T) {
	svc, _ := newTestService(t)
	p := seedTee(t, svc)

	v, opts, err := svc.ResolveSelection(context.Background(), p.Handle, url.Values{"Size": {"M"}, "Color": {"Blue"}})
	require.NoError(t, err)
	assert.True(t, v.Virtual)
	assert.Empty(t, v.ID)
	assert.Equal(t, -1, v.QuantityAvailable)
	assert.Equal(t, "Unavailable", v.StatusLabel)
	assert.Equal(t, "$25.00", v.Price.String())
	require.Len(t, opts, 2)
}

func TestDetail_UnknownHandle(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Detail(context.Background(), "nope", nil)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestList_PagesAndSoldOut(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedTee(t, svc)
	_, err := svc.CreateProduct(ctx, NewProductInput{
		Title:    "Cap",
		Options:  []Option{axis("Size", "One")},
		Variants: []Variant{{SelectedOptions: opts("Size", "One"), PriceCents: 1500, Currency: "USD"}},
	})
	require.NoError(t, err)

	page, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.False(t, page.HasNext)

	byHandle := map[string]bool{}
	for _, c := range page.Products {
		byHandle[c.Handle] = c.SoldOut
	}
	assert.Equal(t, map[string]bool{"classic-tee": false, "cap": true}, byHandle)
}

func TestSetStock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := seedTee(t, svc)
	id := p.Variants[0].ID

	v, err := svc.SetStock(ctx, id, StockInput{Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, v.QuantityAvailable)
	assert.False(t, v.AvailableForSale)

	preorder := true
	v, err = svc.SetStock(ctx, id, StockInput{Quantity: 0, AvailableForSale: &preorder})
	require.NoError(t, err)
	assert.True(t, v.AvailableForSale)

	v, err = svc.SetStock(ctx, id, StockInput{Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, v.QuantityAvailable)
	assert.True(t, v.AvailableForSale)

	_, err = svc.SetStock(ctx, id, StockInput{Quantity: -1})
	assert.True(t, apperr.Is(err, apperr.Invalid))

	_, err = svc.SetStock(ctx, "nope", StockInput{Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestList_HugePageIsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	seedTee(t, svc)

	page, err := svc.List(context.Background(), math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.False(t, page.HasNext)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestAttachAndRemoveImage(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedTee(t, svc)
	ctx := context.Background()

	im, err := svc.AttachImage(ctx, p.ID, bytes.NewReader(pngHeader),
		storage.PutInput{Filename: "front.png", Size: int64(len(pngHeader))}, "Front")
	require.NoError(t, err)
	assert.Equal(t, 0, im.Position)
	assert.Contains(t, im.URL, "/uploads/")

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)

	require.NoError(t, svc.RemoveImage(ctx, p.ID, im.ID))
	err = svc.RemoveImage(ctx, p.ID, im.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestAttachImage_RejectsUnsupportedType(t *testing.T) {
	svc, _ := newTestService(t)
	p := seedTee(t, svc)

	_, err := svc.AttachImage(context.Background(), p.ID, bytes.NewReader([]byte("hello")),
		storage.PutInput{Filename: "notes.txt"}, "")
	assert.True(t, apperr.Is(err, apperr.Invalid))
}

func TestGetVariants(t *testing.T) {
	svc, repo := newTestService(t)
	p := seedTee(t, svc)

	vs, ps, err := repo.GetVariants(context.Background(), []string{"v-s-red", "missing"})
	require.NoError(t, err)
	require.Contains(t, vs, "v-s-red")
	assert.NotContains(t, vs, "missing")
	assert.Equal(t, p.Handle, ps[vs["v-s-red"].ProductID].Handle)
	assert.Equal(t, "S / Red", vs["v-s-red"].Title())
}
