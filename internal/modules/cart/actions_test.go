package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/shared/apperr"
)

func TestParseFormInput(t *testing.T) {
	in, err := ParseFormInput(`{"action":"LinesAdd","inputs":{"lines":[{"merchandiseId":"v1","quantity":2}]}}`)
	require.NoError(t, err)
	assert.Equal(t, ActionLinesAdd, in.Action)
	require.Len(t, in.Inputs.Lines, 1)
	assert.Equal(t, "v1", in.Inputs.Lines[0].MerchandiseID)
	assert.Equal(t, 2, *in.Inputs.Lines[0].Quantity)

	in, err = ParseFormInput(`{"action":"DiscountCodesUpdate","inputs":{}}`)
	require.NoError(t, err)
	assert.Empty(t, in.Inputs.DiscountCodes)
}

func TestParseFormInput_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"not json":       `action=LinesAdd`,
		"no action":      `{"inputs":{}}`,
		"unknown":        `{"action":"BuyerIdentityUpdate","inputs":{}}`,
		"add no lines":   `{"action":"LinesAdd","inputs":{"lines":[]}}`,
		"add no variant": `{"action":"LinesAdd","inputs":{"lines":[{"quantity":1}]}}`,
		"update no qty":  `{"action":"LinesUpdate","inputs":{"lines":[{"id":"l1"}]}}`,
		"remove nothing": `{"action":"LinesRemove","inputs":{}}`,
		"note missing":   `{"action":"NoteUpdate","inputs":{}}`,
	}
	for name, raw := range cases {
		_, err := ParseFormInput(raw)
		require.Error(t, err, name)
		assert.True(t, apperr.Is(err, apperr.Invalid), name)
	}
}

func TestNormalizeCodes(t *testing.T) {
	assert.Equal(t, []string{"SUMMER", "VIP"}, normalizeCodes([]string{" summer", "VIP", "", "Summer "}))
	assert.Empty(t, normalizeCodes(nil))
}
