// Package signed HMAC-signs cookie payloads so the server can trust values it
// handed out earlier.
package signed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalid = errors.New("signed: invalid value")

type Signer struct {
	secret []byte
}

func New(secret []byte) Signer { return Signer{secret: secret} }

func (s Signer) sum(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Sign returns "payload.signature". payload must not contain a dot.
func (s Signer) Sign(payload string) string {
	return payload + "." + s.sum(payload)
}

// Verify splits a signed value and returns the payload if the signature holds.
func (s Signer) Verify(v string) (string, error) {
	i := strings.LastIndexByte(v, '.')
	if i <= 0 || i == len(v)-1 {
		return "", ErrInvalid
	}
	payload, sig := v[:i], v[i+1:]
	if strings.Contains(payload, ".") {
		return "", ErrInvalid
	}
	if !hmac.Equal([]byte(s.sum(payload)), []byte(sig)) {
		return "", ErrInvalid
	}
	return payload, nil
}
