// Package http assembles the storefront's gin engine: services, middleware
// chain and routes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/internal/http/cartcookie"
	"lumenstore.com/app/internal/http/flash"
	"lumenstore.com/app/internal/http/handlers"
	"lumenstore.com/app/internal/http/handlers/admin"
	"lumenstore.com/app/internal/http/middleware"
	"lumenstore.com/app/internal/http/render"
	"lumenstore.com/app/internal/mailer"
	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/internal/modules/cart"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/modules/reviews"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/internal/storage"
	"lumenstore.com/app/templates"
)

type Deps struct {
	Config  config.Config
	DB      *gorm.DB
	Storage storage.Storage
	Mailer  mailer.Mailer
	Logger  *slog.Logger
}

type Services struct {
	Catalog  *catalog.Service
	Cart     *cart.Service
	Reviews  *reviews.Service
	Accounts *accounts.Service
}

func NewServices(d Deps, opts ...accounts.Option) Services {
	catRepo := catalog.NewRepo(d.DB)
	return Services{
		Catalog:  catalog.NewService(catRepo, d.Storage, d.Config.Theme, d.Logger),
		Cart:     cart.NewService(cart.NewRepo(d.DB), catRepo, cart.NewPending(), d.Logger),
		Reviews:  reviews.NewService(reviews.NewRepo(d.DB), catRepo, d.Mailer, d.Config.Reviews, d.Config.Theme, d.Logger),
		Accounts: accounts.NewService(accounts.NewRepo(d.DB), d.Config.SessionTTL, d.Logger, opts...),
	}
}

func NewRouter(d Deps, svc Services) (*gin.Engine, error) {
	cfg := d.Config
	l := d.Logger

	tmpl, err := templates.Parse(cfg.Theme)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = 8 << 20

	flashCodec := flash.NewCodec(cfg.CookieSecret, cfg.FlashCookie, cfg.CookieSecure)
	cartCodec := cartcookie.New(cfg.CookieSecret, cfg.CartCookie, cfg.CookieSecure)
	sessCfg := middleware.SessionCfg{
		Accounts:   svc.Accounts,
		CookieName: cfg.SessionCookie,
		Secure:     cfg.CookieSecure,
		TTL:        cfg.SessionTTL,
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.ErrorHandler(l, render.ErrorPage),
		middleware.Recovery(l),
	)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.LocalURLPrefix, cfg.Storage.LocalDir)
	}

	app := r.Group("/",
		middleware.FlashMiddleware(flashCodec),
		middleware.SessionMiddleware(sessCfg, l),
		middleware.CSRF(middleware.CSRFCfg{CookieName: cfg.CSRFCookie, Secure: cfg.CookieSecure}),
		middleware.CartCount(cartCodec, svc.Cart, l),
	)

	products := handlers.NewProductsHandler(svc.Catalog, svc.Reviews, flashCodec)
	app.GET("/", products.List)
	app.GET("/products", products.List)
	app.GET("/products/:handle", products.Show)
	app.POST("/products/:handle/reviews", products.SubmitReview)
	app.GET("/api/products/:handle/variant", products.Variant)
	app.GET("/api/products/:handle/reviews", products.Reviews)

	carts := handlers.NewCartHandler(svc.Cart, cartCodec, flashCodec)
	app.GET("/cart", carts.Show)
	app.POST("/cart", carts.Post)
	app.GET("/api/cart", carts.API)

	acct := handlers.NewAccountHandler(svc.Accounts, svc.Cart, cartCodec, flashCodec, sessCfg, l)
	app.GET(middleware.LoginPath, acct.LoginGet)
	app.POST(middleware.LoginPath, acct.LoginPost)
	app.GET("/account/register", acct.RegisterGet)
	app.POST("/account/register", acct.RegisterPost)
	app.POST("/account/logout", acct.Logout)
	app.GET("/account", middleware.RequireAuth(flashCodec), acct.Show)
	app.POST("/account/password", middleware.RequireAuth(flashCodec), acct.ChangePassword)

	adm := app.Group("/admin", middleware.RequireAdmin(flashCodec))
	images := admin.NewImagesHandler(svc.Catalog)
	adm.POST("/products/:id/images", images.Upload)
	adm.DELETE("/products/:id/images/:imageID", images.Delete)
	stock := admin.NewStockHandler(svc.Catalog)
	adm.PUT("/variants/:id/stock", stock.Update)
	moderation := admin.NewReviewsHandler(svc.Reviews, flashCodec)
	adm.GET("/reviews", moderation.Pending)
	adm.POST("/reviews/:id/publish", moderation.Publish)

	r.NoRoute(
		middleware.FlashMiddleware(flashCodec),
		middleware.SessionMiddleware(sessCfg, l),
		func(c *gin.Context) {
			middleware.Fail(c, apperr.NotFoundErr("Page not found."))
		},
	)
	return r, nil
}
