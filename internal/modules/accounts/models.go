package accounts

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(120)"`
	LastName     string    `gorm:"type:varchar(120)"`
	Role         string    `gorm:"type:varchar(16);not null;default:customer"`
	CreatedAt    time.Time `gorm:"precision:3;not null"`
	UpdatedAt    time.Time `gorm:"precision:3;not null"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Session is a login. The cookie carries a random token; only its SHA-256 is
// stored.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	UserID     string    `gorm:"type:char(36);not null;index:ix_sessions_user_id"`
	TokenHash  []byte    `gorm:"type:binary(32);not null;uniqueIndex:ux_sessions_token_hash"`
	ExpiresAt  time.Time `gorm:"precision:3;not null;index"`
	CreatedAt  time.Time `gorm:"precision:3;not null"`
	LastSeenAt time.Time `gorm:"precision:3;not null"`
}

func (Session) TableName() string { return "sessions" }

func Models() []any { return []any{&User{}, &Session{}} }
