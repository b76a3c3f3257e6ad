package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptionControls_Buttons(t *testing.T) {
	p := tee()
	axes := BuildOptionControls(p, Selection{"Size": "S", "Color": "Red"}, false)
	require.Len(t, axes, 2)

	size := axes[0]
	assert.Equal(t, "Size", size.Axis)
	require.Len(t, size.Controls, 2)

	s, ok := size.Controls[0].(ButtonControl)
	require.True(t, ok)
	assert.True(t, s.Selected)
	assert.True(t, s.Available)

	m := size.Controls[1].(ButtonControl)
	assert.False(t, m.Selected)
	assert.False(t, m.Available)
	assert.Equal(t, Selection{"Size": "M", "Color": "Red"}.Query(), m.Search)
}

func TestBuildOptionControls_HideUnavailableKeepsSelected(t *testing.T) {
	p := tee()
	axes := BuildOptionControls(p, Selection{"Size": "M", "Color": "Red"}, true)

	var sizes []string
	for _, c := range axes[0].Controls {
		sizes = append(sizes, c.Base().Value)
	}
	assert.Equal(t, []string{"S", "M"}, sizes, "M is unavailable but selected")

	var colors []string
	for _, c := range axes[1].Controls {
		colors = append(colors, c.Base().Value)
	}
	assert.Equal(t, []string{"Red"}, colors, "Blue dropped, Red kept because selected")
}

func TestBuildOptionControls_LinkToSiblingProduct(t *testing.T) {
	p := tee()
	p.Options[1].Values[1].LinkedProductHandle = "tee-blue"
	p.Options[1].Values[0].LinkedProductHandle = "tee" // self link stays a button
	p.Options[1].Values[1].SwatchColor = "#1d4ed8"

	axes := BuildOptionControls(p, Selection{"Size": "S", "Color": "Red"}, false)
	colors := axes[1].Controls

	_, isButton := colors[0].(ButtonControl)
	assert.True(t, isButton)

	link, ok := colors[1].(LinkControl)
	require.True(t, ok)
	assert.Equal(t, "/products/tee-blue", link.Href)
	require.NotNil(t, link.Swatch)
	assert.Equal(t, "#1d4ed8", link.Swatch.Color)

	views := OptionViews(p.Handle, axes)
	assert.Equal(t, "button", views[1].Values[0].Kind)
	assert.Contains(t, views[1].Values[0].Href, "/products/tee?")
	assert.Equal(t, "link", views[1].Values[1].Kind)
	assert.Equal(t, "/products/tee-blue", views[1].Values[1].Href)
}
