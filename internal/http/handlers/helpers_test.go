package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReturnTo(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"/cart":                 "/cart",
		"/products/tee?Size=M":  "/products/tee?Size=M",
		"//evil.example":        "",
		"/\\evil.example":       "",
		"https://evil.example/": "",
		"/x?next=http://a":      "",
		"cart":                  "",
		"/a\r\nSet-Cookie: x":   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeReturnTo(in), in)
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("-3"))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 4, parsePage("4"))
}
