package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/internal/mailer"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/pkg/view"
)

// ProductFinder looks up the product a review belongs to. *catalog.Repo
// satisfies it.
type ProductFinder interface {
	GetByHandle(ctx context.Context, handle string) (catalog.Product, error)
}

type Service struct {
	repo     *Repo
	products ProductFinder
	mail     mailer.Mailer
	cfg      config.ReviewsConfig
	perPage  int
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo *Repo, products ProductFinder, mail mailer.Mailer, cfg config.ReviewsConfig, theme config.ThemeSettings, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		products: products,
		mail:     mail,
		cfg:      cfg,
		perPage:  theme.ReviewsPerPage,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) ParseQuery(v url.Values) Query { return ParseQuery(v, s.perPage) }

// Block is the reviews section of a product page: summary over all published
// reviews plus the requested page.
func (s *Service) Block(ctx context.Context, productID string, q Query) (view.ReviewsBlock, error) {
	all, err := s.repo.ListPublished(ctx, productID)
	if err != nil {
		return view.ReviewsBlock{}, apperr.Wrap(err)
	}
	page := Apply(all, q)
	block := view.ReviewsBlock{
		Summary:    Summarize(all),
		Reviews:    make([]view.ReviewView, 0, len(page.Reviews)),
		Total:      page.Total,
		Page:       page.Query.Page + 1,
		PerPage:    page.Query.PerPage,
		TotalPages: page.TotalPages,
		Sort:       string(page.Query.Sort),
		Rating:     page.Query.Rating,
	}
	for _, r := range page.Reviews {
		block.Reviews = append(block.Reviews, toView(r))
	}
	return block, nil
}

func (s *Service) BlockForHandle(ctx context.Context, handle string, v url.Values) (view.ReviewsBlock, error) {
	p, err := s.product(ctx, handle)
	if err != nil {
		return view.ReviewsBlock{}, err
	}
	return s.Block(ctx, p.ID, s.ParseQuery(v))
}

func (s *Service) product(ctx context.Context, handle string) (catalog.Product, error) {
	p, err := s.products.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, apperr.NotFoundErr("Product not found.")
		}
		return catalog.Product{}, apperr.Wrap(err)
	}
	return p, nil
}

var validate = validator.New()

type SubmitInput struct {
	Rating      int
	Title       string
	Body        string
	AuthorName  string
	AuthorEmail string
	UserID      *string
}

func (in SubmitInput) check() error {
	fields := map[string]string{}
	if in.Rating < 1 || in.Rating > 5 {
		fields["rating"] = "Please choose a rating from 1 to 5."
	}
	if strings.TrimSpace(in.Body) == "" {
		fields["body"] = "Please write a few words."
	}
	if strings.TrimSpace(in.AuthorName) == "" {
		fields["author_name"] = "Please tell us your name."
	}
	if validate.Var(strings.TrimSpace(in.AuthorEmail), "required,email") != nil {
		fields["author_email"] = "Please enter a valid email."
	}
	if len(fields) > 0 {
		return apperr.InvalidErr("Please check the highlighted fields.", fields)
	}
	return nil
}

// Submit stores a review for moderation and notifies the moderator. With
// auto-publish on, the review is visible right away.
func (s *Service) Submit(ctx context.Context, handle string, in SubmitInput) (Review, error) {
	if err := in.check(); err != nil {
		return Review{}, err
	}
	p, err := s.product(ctx, handle)
	if err != nil {
		return Review{}, err
	}

	now := s.now()
	rv := Review{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		Status:      StatusPending,
		Rating:      in.Rating,
		Title:       strings.TrimSpace(in.Title),
		Body:        strings.TrimSpace(in.Body),
		AuthorName:  strings.TrimSpace(in.AuthorName),
		AuthorEmail: strings.ToLower(strings.TrimSpace(in.AuthorEmail)),
		UserID:      in.UserID,
		CreatedAt:   now,
	}
	if s.cfg.AutoPublish {
		rv.Status = StatusPublished
		rv.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, &rv); err != nil {
		return Review{}, apperr.Wrap(err)
	}

	s.notify(ctx, p, rv)
	return rv, nil
}

func (s *Service) notify(ctx context.Context, p catalog.Product, rv Review) {
	if s.mail == nil || s.cfg.ModeratorEmail == "" {
		return
	}
	body := fmt.Sprintf("%s left a %d-star review on %s.\n\n%s\n\n%s\n\nStatus: %s\nReview id: %s\n",
		rv.AuthorName, rv.Rating, p.Title, rv.Title, rv.Body, rv.Status, rv.ID)
	err := s.mail.Send(ctx, mailer.Email{
		To:       []string{s.cfg.ModeratorEmail},
		Subject:  fmt.Sprintf("New %d-star review: %s", rv.Rating, p.Title),
		TextBody: body,
		Headers:  map[string]string{"X-Review-ID": rv.ID},
	})
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "review_notification_failed",
			slog.String("review_id", rv.ID), slog.Any("err", err))
	}
}

func (s *Service) Publish(ctx context.Context, id string) error {
	if err := s.repo.Publish(ctx, id, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundErr("Review not found.")
		}
		return apperr.Wrap(err)
	}
	return nil
}

// Pending lists reviews waiting for moderation, oldest first.
func (s *Service) Pending(ctx context.Context) ([]view.ReviewView, error) {
	rs, err := s.repo.ListPending(ctx, 50)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	out := make([]view.ReviewView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toView(r))
	}
	return out, nil
}

func toView(r Review) view.ReviewView {
	return view.ReviewView{
		ID:        r.ID,
		Rating:    r.Rating,
		Title:     r.Title,
		Body:      r.Body,
		Author:    r.AuthorName,
		Verified:  r.UserID != nil,
		CreatedAt: r.CreatedAt,
	}
}
