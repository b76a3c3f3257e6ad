package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/config"
)

func TestMailtrapSend(t *testing.T) {
	var got mailtrapPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailtrap(config.MailtrapConfig{APIURL: srv.URL, APIToken: "tok"})
	err := m.Send(context.Background(), Email{
		From:     "shop@lumen.test",
		FromName: "Lumen",
		To:       []string{"mod@lumen.test"},
		Subject:  "New review",
		TextBody: "hello",
		Headers:  map[string]string{"X-Review-ID": "r1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "Lumen", got.From.Name)
	assert.Equal(t, []mailtrapAddress{{Email: "mod@lumen.test"}}, got.To)
	assert.Equal(t, "r1", got.Headers["X-Review-ID"])
	assert.Nil(t, got.Cc)
}

func TestMailtrapSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["bad token"]}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailtrap(config.MailtrapConfig{APIURL: srv.URL, APIToken: "bad"})
	err := m.Send(context.Background(), Email{From: "a@b.test", To: []string{"c@d.test"}, Subject: "s", TextBody: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad token")
}

func TestMailtrapSend_InvalidEmail(t *testing.T) {
	m := NewMailtrap(config.MailtrapConfig{APIURL: "http://127.0.0.1:0", APIToken: "x"})
	assert.Error(t, m.Send(context.Background(), Email{From: "a@b.test", Subject: "s", TextBody: "t"}))
}
