package signed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	s := New([]byte("0123456789abcdef0123456789abcdef"))
	v := s.Sign("cart-123")

	got, err := s.Verify(v)
	require.NoError(t, err)
	assert.Equal(t, "cart-123", got)

	for _, bad := range []string{"", "cart-123", "cart-123.", ".sig", "cart-124" + v[len("cart-123"):], "a.b." + v} {
		_, err := s.Verify(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}

	other := New([]byte("another secret of thirty-two byte"))
	_, err = other.Verify(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
