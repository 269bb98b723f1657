package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionPalette(t *testing.T) {
	p := ConditionPalette()

	assert.Equal(t, "#F1A139", p.Colour("good"))
	assert.Equal(t, "#333333", p.Colour("salvage"))
	assert.Equal(t, DefaultColour, p.Colour("unseen"))
}

func TestPalette_CustomFallback(t *testing.T) {
	p := NewPalette(map[string]string{"a": "#111111"}, "#999999")

	assert.Equal(t, map[string]string{"a": "#111111", "b": "#999999"}, p.For([]string{"a", "b"}))
}

func TestPalette_ZeroValue(t *testing.T) {
	var p Palette
	assert.Equal(t, DefaultColour, p.Colour("anything"))
}
