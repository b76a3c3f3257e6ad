package accounts

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lumenstore.com/app/internal/shared/apperr"
	"lumenstore.com/app/internal/shared/dbx"
)

const minPasswordLength = 8

// ErrMissingCredentials is shown when the login form is incomplete.
const ErrMissingCredentials = "Please provide both an email and a password"

type Service struct {
	repo       *Repo
	sessionTTL time.Duration
	cost       int
	log        *slog.Logger
	now        func() time.Time
}

type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option { return func(s *Service) { s.cost = cost } }

func NewService(repo *Repo, sessionTTL time.Duration, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{repo: repo, sessionTTL: sessionTTL, cost: bcrypt.DefaultCost, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return User{}, apperr.InvalidErr(ErrMissingCredentials, nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, apperr.InvalidErr("Please enter a valid email.", map[string]string{"email": "Please enter a valid email."})
	}
	if len(in.Password) < minPasswordLength {
		msg := "Password must be at least 8 characters."
		return User{}, apperr.InvalidErr(msg, map[string]string{"password": msg})
	}

	taken := apperr.ConflictErr("An account with this email already exists.")
	taken.Fields = map[string]string{"email": taken.PublicMsg}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, taken
	} else if !dbx.IsNotFound(err) {
		return User{}, apperr.Wrap(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, apperr.Wrap(err)
	}
	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		if dbx.IsDuplicateKey(err) {
			return User{}, taken.WithCause(err)
		}
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}

// Authenticate checks credentials. Unknown email and wrong password give the
// same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, apperr.InvalidErr(ErrMissingCredentials, nil)
	}
	bad := apperr.UnauthorizedErr("Incorrect email or password.")

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if dbx.IsNotFound(err) {
			return User{}, bad
		}
		return User{}, apperr.Wrap(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, bad
	}
	return u, nil
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

// StartSession creates a session and returns the cookie token.
func (s *Service) StartSession(ctx context.Context, userID string) (string, time.Time, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, apperr.Wrap(err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	now := s.now()
	sess := Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		TokenHash:  hashToken(token),
		ExpiresAt:  now.Add(s.sessionTTL),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.repo.CreateSession(ctx, &sess); err != nil {
		return "", time.Time{}, apperr.Wrap(err)
	}
	return token, sess.ExpiresAt, nil
}

// SessionUser resolves a cookie token. ok is false for unknown or expired
// tokens.
func (s *Service) SessionUser(ctx context.Context, token string) (User, bool, error) {
	if token == "" {
		return User{}, false, nil
	}
	now := s.now()
	sess, u, err := s.repo.SessionUser(ctx, hashToken(token), now)
	if err != nil {
		if dbx.IsNotFound(err) {
			return User{}, false, nil
		}
		return User{}, false, apperr.Wrap(err)
	}
	if now.Sub(sess.LastSeenAt) > time.Minute {
		if err := s.repo.TouchSession(ctx, sess.ID, now); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "session_touch_failed", slog.Any("err", err))
		}
	}
	return u, true, nil
}

func (s *Service) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, hashToken(token)); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// ChangePassword replaces the password after checking the current one and
// ends every other session of the user. keepToken is the caller's own
// session cookie.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next, keepToken string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if dbx.IsNotFound(err) {
			return apperr.NotFoundErr("Account not found.")
		}
		return apperr.Wrap(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		msg := "Current password is incorrect."
		return apperr.InvalidErr(msg, map[string]string{"current_password": msg})
	}
	if len(next) < minPasswordLength {
		msg := "Password must be at least 8 characters."
		return apperr.InvalidErr(msg, map[string]string{"password": msg})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return apperr.Wrap(err)
	}
	if err := s.repo.SetPasswordHash(ctx, userID, string(hash)); err != nil {
		return apperr.Wrap(err)
	}
	if err := s.repo.DeleteOtherSessions(ctx, userID, hashToken(keepToken)); err != nil {
		return apperr.Wrap(err)
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "password_changed", slog.String("user_id", userID))
	return nil
}

// PromoteAdmin gives an existing account the admin role.
func (s *Service) PromoteAdmin(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if dbx.IsNotFound(err) {
			return apperr.NotFoundErr("No account with this email.")
		}
		return apperr.Wrap(err)
	}
	if err := s.repo.SetRole(ctx, u.ID, RoleAdmin); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, apperr.Wrap(err)
	}
	return n, nil
}
