package renderer

import "math"

// Transform maps editor preview coordinates onto a PDF page measured in points.
type Transform struct {
	pageWidth  float64
	pageHeight float64
	scaleX     float64
	scaleY     float64
}

// Point is a draw position in PDF space with a bottom-left origin.
type Point struct {
	X        float64
	Y        float64
	FontSize float64
}

func NewTransform(pageWidth, pageHeight float64, preview PreviewSize) (Transform, error) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return Transform{}, invalidInput("NewTransform", "page size %gx%g must be positive", pageWidth, pageHeight)
	}
	if preview.Width <= 0 || preview.Height <= 0 {
		return Transform{}, invalidInput("NewTransform", "preview size %gx%g must be positive", preview.Width, preview.Height)
	}
	return Transform{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		scaleX:     pageWidth / preview.Width,
		scaleY:     pageHeight / preview.Height,
	}, nil
}

func (t Transform) ScaleX() float64 { return t.scaleX }
func (t Transform) ScaleY() float64 { return t.scaleY }

// FontSize scales uniformly by the smaller axis so text is never stretched.
func (t Transform) FontSize(editorSize float64) float64 {
	if editorSize <= 0 {
		editorSize = DefaultFontSize
	}
	return editorSize * math.Min(t.scaleX, t.scaleY)
}

// Place returns the left edge and baseline for text whose measured width is
// textWidth. pos marks the horizontal center of the text.
func (t Transform) Place(pos Position, editorFontSize, textWidth float64) Point {
	size := t.FontSize(editorFontSize)
	return Point{
		X:        pos.X*t.scaleX - textWidth/2,
		Y:        t.pageHeight - pos.Y*t.scaleY - size,
		FontSize: size,
	}
}
