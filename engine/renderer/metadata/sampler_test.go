package metadata

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressModeResolve(t *testing.T) {
	cases := []struct {
		mode  AddressMode
		in    float32
		out   float32
		valid bool
	}{
		{AddressModeWrap, 1.25, 0.25, true},
		{AddressModeWrap, -0.25, 0.75, true},
		{AddressModeClamp, 1.25, 1.0, true},
		{AddressModeClamp, -3, 0.0, true},
		{AddressModeMirror, 1.25, 0.75, true},
		{AddressModeMirror, -0.25, 0.25, true},
		{AddressModeMirrorOnce, -0.3, 0.3, true},
		{AddressModeMirrorOnce, 1.7, 1.0, true},
		{AddressModeBorder, 0.4, 0.4, true},
		{AddressModeBorder, 1.25, 0, false},
	}
	for _, c := range cases {
		got, ok := c.mode.Resolve(c.in)
		assert.Equal(t, c.valid, ok, "%s(%v)", c.mode, c.in)
		if ok {
			assert.InDelta(t, c.out, got, 1e-6, "%s(%v)", c.mode, c.in)
		}
	}
}

// left column black, right column white
func newStripeTexture(t *testing.T) *Texture {
	tex, err := NewTexture("stripes", 2, 2, 4)
	require.NoError(t, err)
	white := math.NewVec4One()
	black := math.NewVec4(0, 0, 0, 1)
	tex.SetColor(0, 0, black)
	tex.SetColor(0, 1, black)
	tex.SetColor(1, 0, white)
	tex.SetColor(1, 1, white)
	return tex
}

func TestSampleLevelBilinear(t *testing.T) {
	tex := newStripeTexture(t)
	clamp := NewLinearSampler(AddressModeClamp)

	// texel centres return the texel itself
	assert.InDelta(t, 0.0, tex.SampleLevel(clamp, math.NewVec2(0.25, 0.25), 0).X, 1e-6)
	assert.InDelta(t, 1.0, tex.SampleLevel(clamp, math.NewVec2(0.75, 0.25), 0).X, 1e-6)
	// half way between centres blends evenly
	assert.InDelta(t, 0.5, tex.SampleLevel(clamp, math.NewVec2(0.5, 0.5), 0).X, 1e-6)
	// clamp keeps the edge texel
	assert.InDelta(t, 0.0, tex.SampleLevel(clamp, math.NewVec2(0.0, 0.25), 0).X, 1e-6)

	// wrap blends with the opposite edge
	wrap := NewLinearSampler(AddressModeWrap)
	assert.InDelta(t, 0.5, tex.SampleLevel(wrap, math.NewVec2(0.0, 0.25), 0).X, 1e-6)
	assert.InDelta(t, 1.0, tex.SampleLevel(wrap, math.NewVec2(1.75, 0.25), 0).X, 1e-6)
}

func TestSampleLevelBorder(t *testing.T) {
	tex := newStripeTexture(t)
	s := NewLinearSampler(AddressModeBorder)
	s.BorderColor = math.NewVec4(1, 0, 1, 1)

	assert.Equal(t, s.BorderColor, tex.SampleLevel(s, math.NewVec2(1.5, 0.5), 0))
	assert.Equal(t, s.BorderColor, tex.SampleLevel(s, math.NewVec2(0.5, -0.1), 0))
	assert.NotEqual(t, s.BorderColor, tex.SampleLevel(s, math.NewVec2(0.5, 0.5), 0))
}
