package accounts

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, err
}

func (r *Repo) GetByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

func (r *Repo) SetRole(ctx context.Context, userID, role string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).
		Updates(map[string]any{"role": role, "updated_at": time.Now()}).Error
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// SessionUser resolves a live session and its user in one query.
func (r *Repo) SessionUser(ctx context.Context, tokenHash []byte, now time.Time) (Session, User, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&s).Error; err != nil {
		return Session{}, User{}, err
	}
	u, err := r.GetByID(ctx, s.UserID)
	return s, u, err
}

func (r *Repo) TouchSession(ctx context.Context, id string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).Update("last_seen_at", now).Error
}

func (r *Repo) DeleteSession(ctx context.Context, tokenHash []byte) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&Session{}).Error
}

func (r *Repo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}

func (r *Repo) SetPasswordHash(ctx context.Context, userID, hash string) error {
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now()}).Error
}

// DeleteOtherSessions signs the user out everywhere except keepHash.
func (r *Repo) DeleteOtherSessions(ctx context.Context, userID string, keepHash []byte) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash <> ?", userID, keepHash).
		Delete(&Session{}).Error
}
