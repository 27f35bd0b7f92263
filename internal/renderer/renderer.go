package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

// TemplateSource reads backing template PDFs. A missing file must be reported
// with an error matching fs.ErrNotExist, and a name the source refuses to
// resolve with one matching fs.ErrInvalid.
type TemplateSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type RenderRequest struct {
	Template TemplateData
	Attendee Attendee
	Event    Event
	// Preview overrides the renderer's configured editor size.
	Preview *PreviewSize
}

// TextOp is one resolved, positioned piece of text.
type TextOp struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
}

// Observer is told the outcome of every render. kind is zero on success.
type Observer func(kind Kind, elapsed time.Duration)

type Option func(*Renderer)

func WithPreviewSize(p PreviewSize) Option {
	return func(r *Renderer) { r.preview = p }
}

func WithResolver(res Resolver) Option {
	return func(r *Renderer) { r.resolver = res }
}

func WithSigner(s *Signer) Option {
	return func(r *Renderer) { r.signer = s }
}

// WithFontFamily selects one of the standard PDF fonts (Helvetica, Times, Courier).
func WithFontFamily(family string) Option {
	return func(r *Renderer) { r.fontFamily = family }
}

func WithObserver(o Observer) Option {
	return func(r *Renderer) { r.observer = o }
}

// Renderer draws attendee data onto certificate templates. It holds no
// per-render state and may be shared between goroutines.
type Renderer struct {
	source     TemplateSource
	preview    PreviewSize
	resolver   Resolver
	signer     *Signer
	fontFamily string
	observer   Observer
}

func New(source TemplateSource, opts ...Option) *Renderer {
	r := &Renderer{
		source:     source,
		preview:    PreviewSize{Width: 423, Height: 600},
		resolver:   NewResolver(),
		fontFamily: "Helvetica",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) PreviewSize() PreviewSize {
	return r.preview
}

// Render returns the template with every resolvable field drawn on its first
// page. Either the whole document is returned or an *Error.
func (r *Renderer) Render(ctx context.Context, req RenderRequest) (out []byte, err error) {
	start := time.Now()
	defer func() {
		if r.observer != nil {
			r.observer(KindOf(err), time.Since(start))
		}
	}()

	preview := r.preview
	if req.Preview != nil {
		preview = *req.Preview
	}
	if err := validate(req, preview); err != nil {
		return nil, err
	}

	data, err := r.load(ctx, req.Template.CertificateFilename)
	if err != nil {
		return nil, err
	}

	info, err := InspectBytes(data)
	if err != nil {
		return nil, renderFailure("Render inspect", err)
	}

	data, err = classicXRef(data)
	if err != nil {
		return nil, renderFailure("Render normalize", err)
	}

	out, err = r.compose(data, info, req, preview)
	if err != nil {
		return nil, renderFailure("Render compose", err)
	}

	if r.signer.IsEnabled() {
		out = r.signer.Sign(out, fmt.Sprintf("Certificate for %s", FullName(req.Attendee)))
	}

	slog.Debug("Certificate rendered",
		"template", req.Template.CertificateFilename,
		"attendee_id", req.Attendee.ID,
		"pages", info.Count,
		"bytes", len(out))
	return out, nil
}

func validate(req RenderRequest, preview PreviewSize) error {
	if strings.TrimSpace(req.Attendee.FirstName) == "" || strings.TrimSpace(req.Attendee.LastName) == "" {
		return invalidInput("Render", "attendee first and last name are required")
	}
	if strings.TrimSpace(req.Template.CertificateFilename) == "" {
		return invalidInput("Render", "template has no certificate file")
	}
	if preview.Width <= 0 || preview.Height <= 0 {
		return invalidInput("Render", "preview size %gx%g must be positive", preview.Width, preview.Height)
	}
	return nil
}

func (r *Renderer) load(ctx context.Context, name string) ([]byte, error) {
	if r.source == nil {
		return nil, renderFailure("Render load", errors.New("no template source configured"))
	}
	rc, err := r.source.Open(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, notFound("Render load", err)
		case errors.Is(err, fs.ErrInvalid):
			return nil, &Error{Kind: KindInvalidInput, Op: "Render load", Err: err}
		}
		return nil, renderFailure("Render load", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound("Render load", err)
		}
		return nil, renderFailure("Render load", err)
	}
	return data, nil
}

// Plan resolves and positions every field of the request without drawing.
// measure returns the width of text at the given point size.
func (r *Renderer) Plan(req RenderRequest, tr Transform, measure func(text string, size float64) float64) []TextOp {
	event := req.Event
	if event.Name == "" {
		event.Name = req.Template.EventName
	}

	var ops []TextOp
	place := func(text string, pos *Position, fontSize float64) {
		if pos == nil || text == "" {
			return
		}
		size := tr.FontSize(fontSize)
		p := tr.Place(*pos, fontSize, measure(text, size))
		ops = append(ops, TextOp{Text: text, X: p.X, Y: p.Y, FontSize: p.FontSize})
	}

	if !req.Template.UsesLegacyFormat() {
		for _, field := range req.Template.Fields {
			if field.Position == nil {
				continue
			}
			place(r.resolver.Resolve(field, req.Attendee, event), field.Position, field.FontSize)
		}
		return ops
	}

	if name := req.Template.Name; name != nil {
		place(FullName(req.Attendee), name.Position, name.FontSize)
	}
	if licence := req.Template.Licence; licence != nil {
		place(LegacyLicence(req.Attendee), licence.Position, licence.FontSize)
	}
	return ops
}

func (r *Renderer) compose(data []byte, info PageInfo, req RenderRequest, preview PreviewSize) (out []byte, err error) {
	// gofpdi reports malformed input by panicking.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf library panic: %v", rec)
		}
	}()

	first := info.First()
	tr, err := NewTransform(first.Width, first.Height, preview)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTextColor(0, 0, 0)

	measure := func(text string, size float64) float64 {
		pdf.SetFont(r.fontFamily, "", size)
		return pdf.GetStringWidth(encodeCoreFont(text))
	}

	importer := gofpdi.NewImporter()
	var rs io.ReadSeeker = bytes.NewReader(data)
	for i, page := range info.Pages {
		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})
		importer.UseImportedTemplate(pdf, tpl, 0, 0, page.Width, page.Height)

		if i != 0 {
			continue
		}
		for _, op := range r.Plan(req, tr, measure) {
			pdf.SetFont(r.fontFamily, "", op.FontSize)
			// gofpdf measures y from the top of the page.
			pdf.Text(op.X, first.Height-op.Y, encodeCoreFont(op.Text))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
