// Package flash carries one-shot messages across a redirect in a signed
// cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"lumenstore.com/app/internal/http/signed"
	"lumenstore.com/app/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

// MaxAge is short: the cookie only has to survive one redirect.
const MaxAge = 2 * time.Minute

type Codec struct {
	signer     signed.Signer
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{signer: signed.New(secret), CookieName: cookieName, Secure: secure}
}

func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return c.signer.Sign(base64.RawURLEncoding.EncodeToString(b)), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, err := c.signer.Verify(v)
	if err != nil {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil || strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	return &f, nil
}

func (c *Codec) CookieMaxAge() int { return int(MaxAge.Seconds()) }
