package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransform_ScaleFactors(t *testing.T) {
	tr, err := NewTransform(595, 842, PreviewSize{Width: 423, Height: 600})
	require.NoError(t, err)

	assert.InDelta(t, 1.406, tr.ScaleX(), 0.001)
	assert.InDelta(t, 1.403, tr.ScaleY(), 0.001)
}

func TestNewTransform_RejectsNonPositiveSizes(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		preview PreviewSize
	}{
		{"zero page width", 0, 842, PreviewSize{423, 600}},
		{"negative page height", 595, -1, PreviewSize{423, 600}},
		{"zero preview width", 595, 842, PreviewSize{0, 600}},
		{"zero preview height", 595, 842, PreviewSize{423, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransform(tt.w, tt.h, tt.preview)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTransform_FlipsYToBottomOrigin(t *testing.T) {
	tr, err := NewTransform(595, 842, PreviewSize{Width: 423, Height: 600})
	require.NoError(t, err)

	p := tr.Place(Position{X: 0, Y: 0}, 12, 0)

	expectedSize := 12 * tr.ScaleY()
	assert.InDelta(t, expectedSize, p.FontSize, 1e-9, "font scales by the smaller axis")
	assert.InDelta(t, 842-expectedSize, p.Y, 1e-9)
	assert.InDelta(t, 825.16, p.Y, 0.01)
}

func TestTransform_DefaultFontSize(t *testing.T) {
	tr, err := NewTransform(595, 842, PreviewSize{Width: 423, Height: 600})
	require.NoError(t, err)

	assert.Equal(t, tr.FontSize(DefaultFontSize), tr.FontSize(0))
	assert.Equal(t, tr.FontSize(DefaultFontSize), tr.FontSize(-3))
}

func TestTransform_UniformFontScale(t *testing.T) {
	// A wide preview makes the X scale the smaller one.
	tr, err := NewTransform(600, 800, PreviewSize{Width: 1200, Height: 400})
	require.NoError(t, err)

	assert.Equal(t, 0.5, tr.ScaleX())
	assert.Equal(t, 2.0, tr.ScaleY())
	assert.Equal(t, 10.0, tr.FontSize(20))
}

func TestTransform_CenteringKeepsMidpoint(t *testing.T) {
	tr, err := NewTransform(595, 842, PreviewSize{Width: 423, Height: 600})
	require.NoError(t, err)

	pos := Position{X: 200, Y: 300}
	rawX := pos.X * tr.ScaleX()

	prevX := rawX + 1
	for _, width := range []float64{0, 10, 55.5, 120, 300} {
		p := tr.Place(pos, 18, width)
		assert.Less(t, p.X, prevX, "left edge moves left as width grows")
		assert.InDelta(t, rawX, p.X+width/2, 1e-9, "center stays on the placement point")
		prevX = p.X
	}
}
