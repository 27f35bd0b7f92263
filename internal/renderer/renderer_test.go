package renderer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"testing"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
)

type memorySource map[string][]byte

func (m memorySource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type failingSource struct{}

func (failingSource) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("disk on fire")
}

func templatePDF(t *testing.T, pages int, w, h float64) []byte {
	t.Helper()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.SetFont("Helvetica", "", 20)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Text(40, 60, fmt.Sprintf("Certificate template page %d", i+1))
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func blankTemplatePDF(t *testing.T, w, h float64) []byte {
	t.Helper()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.AddPage()
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

// xrefStreamPDF builds a one-page PDF 1.5 whose only cross-reference section is
// an uncompressed /Type /XRef stream, the layout modern editors export.
func xrefStreamPDF(t *testing.T, w, h float64) []byte {
	t.Helper()
	content := "BT /F1 18 Tf 40 60 Td (Modern template) Tj ET"
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>", w, h),
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.5\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objects)+2)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := len(objects) + 1
	offsets[xref] = buf.Len()
	var rows bytes.Buffer
	rows.Write([]byte{0, 0, 0, 0, 0, 0xff, 0xff})
	for i := 1; i <= xref; i++ {
		rows.WriteByte(1)
		require.NoError(t, binary.Write(&rows, binary.BigEndian, uint32(offsets[i])))
		rows.Write([]byte{0, 0})
	}
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /XRef /Size %d /W [1 4 2] /Root 1 0 R /Length %d >>\nstream\n", xref, xref+1, rows.Len())
	buf.Write(rows.Bytes())
	fmt.Fprintf(&buf, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", offsets[xref])
	return buf.Bytes()
}

func testRenderer(source TemplateSource) *Renderer {
	return New(source,
		WithPreviewSize(PreviewSize{Width: 423, Height: 600}),
		WithResolver(fixedResolver()),
	)
}

func baseRequest() RenderRequest {
	return RenderRequest{
		Template: TemplateData{
			CertificateFilename: "template.pdf",
			Fields: []FieldPlacement{
				{Type: FieldName, Position: &Position{X: 211, Y: 300}, FontSize: 24},
				{Type: FieldEventName, Position: &Position{X: 211, Y: 200}},
			},
		},
		Attendee: Attendee{ID: "att-1", FirstName: "Marko", LastName: "Đorđević", Email: "marko@example.com"},
		Event:    Event{Name: "Belgrade Go Meetup"},
	}
}

func fixedMeasure(text string, size float64) float64 {
	return float64(len(text)) * size / 2
}

func TestRenderer_Render(t *testing.T) {
	source := memorySource{"template.pdf": templatePDF(t, 1, 595, 842)}
	r := testRenderer(source)

	out, err := r.Render(context.Background(), baseRequest())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	info, err := InspectBytes(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Count)
	assert.InDelta(t, 595, info.First().Width, 0.01)
	assert.InDelta(t, 842, info.First().Height, 0.01)
}

func TestRenderer_RenderXRefStreamTemplate(t *testing.T) {
	tmpl := xrefStreamPDF(t, 595, 842)
	require.True(t, usesStreamXRef(tmpl))

	info, err := InspectBytes(tmpl)
	require.NoError(t, err)
	require.Equal(t, 1, info.Count)

	normalized, err := classicXRef(tmpl)
	require.NoError(t, err)
	assert.False(t, usesStreamXRef(normalized))

	out, err := testRenderer(memorySource{"template.pdf": tmpl}).Render(context.Background(), baseRequest())
	require.NoError(t, err)

	info, err = InspectBytes(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Count)
	assert.InDelta(t, 595, info.First().Width, 0.01)
	assert.InDelta(t, 842, info.First().Height, 0.01)
}

func TestClassicXRef_LeavesTableLayoutAlone(t *testing.T) {
	tmpl := templatePDF(t, 1, 595, 842)
	out, err := classicXRef(tmpl)
	require.NoError(t, err)
	assert.Equal(t, tmpl, out)
}

func TestRenderer_TextLandsWherePlanned(t *testing.T) {
	r := testRenderer(memorySource{"template.pdf": blankTemplatePDF(t, 595, 842)})
	req := baseRequest()
	req.Template.Fields = []FieldPlacement{
		{Type: FieldCustomText, CustomText: "Ada", Position: &Position{X: 211, Y: 150}, FontSize: 24},
		{Type: FieldCustomText, CustomText: "Zed", Position: &Position{X: 100, Y: 480}, FontSize: 12},
	}

	tr, err := NewTransform(595, 842, r.PreviewSize())
	require.NoError(t, err)
	measurer := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: 595, Ht: 842}})
	planned := r.Plan(req, tr, func(text string, size float64) float64 {
		measurer.SetFont("Helvetica", "", size)
		return measurer.GetStringWidth(encodeCoreFont(text))
	})
	require.Len(t, planned, 2)

	out, err := r.Render(context.Background(), req)
	require.NoError(t, err)

	reader, err := digitorus_pdf.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	drawn := reader.Page(1).Content().Text
	require.NotEmpty(t, drawn)

	for _, op := range planned {
		found := false
		for _, text := range drawn {
			if text.S != op.Text[:1] {
				continue
			}
			if math.Abs(text.X-op.X) < 0.05 && math.Abs(text.Y-op.Y) < 0.05 {
				assert.InDelta(t, op.FontSize, text.FontSize, 0.05)
				found = true
				break
			}
		}
		assert.True(t, found, "%q drawn at (%.2f, %.2f)", op.Text, op.X, op.Y)
	}
}

func TestRenderer_RenderKeepsPageStructureWhenNothingResolves(t *testing.T) {
	source := memorySource{"template.pdf": templatePDF(t, 2, 842, 595)}
	r := testRenderer(source)

	req := baseRequest()
	req.Template.Fields = []FieldPlacement{
		{Type: FieldFormField, FormFieldID: "nope", Position: &Position{X: 10, Y: 10}},
		{Type: FieldCustomText, Position: &Position{X: 10, Y: 10}},
	}

	out, err := r.Render(context.Background(), req)
	require.NoError(t, err)

	info, err := InspectBytes(out)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Count)
	for _, p := range info.Pages {
		assert.InDelta(t, 842, p.Width, 0.01)
		assert.InDelta(t, 595, p.Height, 0.01)
	}
}

func TestRenderer_RenderErrors(t *testing.T) {
	good := templatePDF(t, 1, 595, 842)
	local, err := filestore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		source  TemplateSource
		mutate  func(*RenderRequest)
		wantErr error
	}{
		{
			name:    "missing first name",
			source:  memorySource{"template.pdf": good},
			mutate:  func(r *RenderRequest) { r.Attendee.FirstName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing template file reference",
			source:  memorySource{"template.pdf": good},
			mutate:  func(r *RenderRequest) { r.Template.CertificateFilename = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad preview override",
			source:  memorySource{"template.pdf": good},
			mutate:  func(r *RenderRequest) { r.Preview = &PreviewSize{Width: 0, Height: 600} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "template file absent",
			source:  memorySource{},
			wantErr: ErrNotFound,
		},
		{
			name:    "template name escapes the store",
			source:  local,
			mutate:  func(r *RenderRequest) { r.Template.CertificateFilename = "../x" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "store failure",
			source:  failingSource{},
			wantErr: ErrRenderFailure,
		},
		{
			name:    "corrupt template",
			source:  memorySource{"template.pdf": []byte("this is not a pdf")},
			wantErr: ErrRenderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			out, err := testRenderer(tt.source).Render(context.Background(), req)
			assert.Nil(t, out, "no partial output")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRenderer_InvalidInputBeforeIO(t *testing.T) {
	opened := false
	source := sourceFunc(func(context.Context, string) (io.ReadCloser, error) {
		opened = true
		return nil, fs.ErrNotExist
	})

	req := baseRequest()
	req.Attendee.LastName = "  "
	_, err := testRenderer(source).Render(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, opened)
}

type sourceFunc func(ctx context.Context, name string) (io.ReadCloser, error)

func (f sourceFunc) Open(ctx context.Context, name string) (io.ReadCloser, error) { return f(ctx, name) }

func TestRenderer_ObserverSeesOutcome(t *testing.T) {
	var kinds []Kind
	r := New(memorySource{}, WithObserver(func(k Kind, _ time.Duration) { kinds = append(kinds, k) }))

	_, _ = r.Render(context.Background(), baseRequest())
	req := baseRequest()
	req.Attendee.FirstName = ""
	_, _ = r.Render(context.Background(), req)

	assert.Equal(t, []Kind{KindNotFound, KindInvalidInput}, kinds)
}

func TestRenderer_PlanSkipsEmptyAndUnpositionedFields(t *testing.T) {
	r := testRenderer(nil)
	tr, err := NewTransform(595, 842, r.PreviewSize())
	require.NoError(t, err)

	req := baseRequest()
	req.Template.Fields = []FieldPlacement{
		{Type: FieldFormField, FormFieldID: "unknown", Position: &Position{X: 50, Y: 50}},
		{Type: FieldName},
		{Type: FieldCustomText, CustomText: "With honours", Position: &Position{X: 100, Y: 100}, FontSize: 10},
	}

	ops := r.Plan(req, tr, fixedMeasure)
	require.Len(t, ops, 1)
	assert.Equal(t, "With honours", ops[0].Text)

	size := tr.FontSize(10)
	assert.InDelta(t, 100*tr.ScaleX()-fixedMeasure("With honours", size)/2, ops[0].X, 1e-9)
	assert.InDelta(t, 842-100*tr.ScaleY()-size, ops[0].Y, 1e-9)
}

func TestRenderer_PlanLegacyFormat(t *testing.T) {
	r := testRenderer(nil)
	tr, err := NewTransform(595, 842, r.PreviewSize())
	require.NoError(t, err)

	req := baseRequest()
	req.Template.Fields = nil
	req.Template.Name = &LegacyPlacement{Position: &Position{X: 211, Y: 250}, FontSize: 20}
	req.Template.Licence = &LegacyPlacement{Position: &Position{X: 211, Y: 320}}

	ops := r.Plan(req, tr, fixedMeasure)
	require.Len(t, ops, 1, "licence is skipped when the attendee has none")
	assert.Equal(t, "Marko Đorđević", ops[0].Text)
	assert.InDelta(t, 842-250*tr.ScaleY()-tr.FontSize(20), ops[0].Y, 1e-9)

	req.Attendee.Data = map[string]any{"license_number": "LN-77"}
	ops = r.Plan(req, tr, fixedMeasure)
	require.Len(t, ops, 2)
	assert.Equal(t, "Marko Đorđević", ops[0].Text, "name is drawn first")
	assert.Equal(t, "LN-77", ops[1].Text)
}

func TestRenderer_PlanFieldsWinOverLegacy(t *testing.T) {
	r := testRenderer(nil)
	tr, err := NewTransform(595, 842, r.PreviewSize())
	require.NoError(t, err)

	req := baseRequest()
	req.Template.Name = &LegacyPlacement{Position: &Position{X: 1, Y: 1}}
	req.Template.Fields = []FieldPlacement{
		{Type: FieldCustomText, CustomText: "only me", Position: &Position{X: 10, Y: 10}},
	}

	ops := r.Plan(req, tr, fixedMeasure)
	require.Len(t, ops, 1)
	assert.Equal(t, "only me", ops[0].Text)
}

func TestRenderer_PlanEventNameFromTemplate(t *testing.T) {
	r := testRenderer(nil)
	tr, err := NewTransform(595, 842, r.PreviewSize())
	require.NoError(t, err)

	req := baseRequest()
	req.Event = Event{}
	req.Template.EventName = "Saved Name"
	req.Template.Fields = []FieldPlacement{{Type: FieldEventName, Position: &Position{X: 10, Y: 10}}}

	ops := r.Plan(req, tr, fixedMeasure)
	require.Len(t, ops, 1)
	assert.Equal(t, "Saved Name", ops[0].Text)
}

func TestEncodeCoreFont(t *testing.T) {
	assert.Equal(t, "Marko Djordjevic", encodeCoreFont("Marko Đorđević"))
	assert.Equal(t, "\x8aabac", encodeCoreFont("Šabac"), "š is part of Windows-1252")
	assert.Equal(t, "plain", encodeCoreFont("plain"))
	assert.Equal(t, "?", encodeCoreFont("漢"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", notFound("op", fs.ErrNotExist))))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.ErrorIs(t, renderFailure("op", io.ErrUnexpectedEOF), io.ErrUnexpectedEOF, "cause is preserved")
}
