package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/pkg/view"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("0123456789abcdef0123456789abcdef"), "lumen_flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Added to cart."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Added to cart.", f.Message)

	_, err = c.Decode(v + "x")
	assert.ErrorIs(t, err, ErrInvalid)

	empty, err := c.Encode(view.Flash{Kind: view.FlashInfo})
	require.NoError(t, err)
	_, err = c.Decode(empty)
	assert.ErrorIs(t, err, ErrInvalid)
}
