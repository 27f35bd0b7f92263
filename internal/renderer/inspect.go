package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	digitorus_pdf "github.com/digitorus/pdf"
)

type PageSize struct {
	Width  float64
	Height float64
}

type PageInfo struct {
	Count int
	Pages []PageSize
}

// First returns the size of the first page.
func (p PageInfo) First() PageSize {
	if len(p.Pages) == 0 {
		return PageSize{}
	}
	return p.Pages[0]
}

const maxPageTreeDepth = 32

// Inspect reads the page count and the MediaBox of every page.
func Inspect(r io.ReaderAt, size int64) (info PageInfo, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("inspect pdf: %v", rec)
		}
	}()

	reader, err := digitorus_pdf.NewReader(r, size)
	if err != nil {
		return PageInfo{}, fmt.Errorf("open pdf: %w", err)
	}

	count := reader.NumPage()
	if count < 1 {
		return PageInfo{}, errors.New("pdf has no pages")
	}

	info.Count = count
	info.Pages = make([]PageSize, 0, count)
	for i := 1; i <= count; i++ {
		w, h, ok := mediaBox(reader.Page(i).V)
		if !ok {
			return PageInfo{}, fmt.Errorf("page %d has no media box", i)
		}
		info.Pages = append(info.Pages, PageSize{Width: w, Height: h})
	}
	return info, nil
}

func InspectBytes(data []byte) (PageInfo, error) {
	return Inspect(bytes.NewReader(data), int64(len(data)))
}

// mediaBox walks up the page tree since MediaBox is inheritable.
func mediaBox(page digitorus_pdf.Value) (float64, float64, bool) {
	v := page
	for depth := 0; depth < maxPageTreeDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == digitorus_pdf.Array && box.Len() == 4 {
			w := math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
			h := math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
			if w > 0 && h > 0 {
				return w, h, true
			}
		}
		v = v.Key("Parent")
	}
	return 0, 0, false
}
