package generator

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	attendeemodel "github.com/sunthewhat/event-cert-api/api/model/attendeeModel"
	certificatemodel "github.com/sunthewhat/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

func templatePDF(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: 842, Ht: 595}})
	pdf.AddPage()
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

type fixture struct {
	gen          *Generator
	events       *eventmodel.MockEventRepository
	attendees    *attendeemodel.MockAttendeeRepository
	certificates *certificatemodel.MockCertificateRepository
	attendee     *model.Attendee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := filestore.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	data := templatePDF(t)
	require.NoError(t, store.Put(context.Background(), "tmpl.pdf", bytes.NewReader(data), int64(len(data)), "application/pdf"))

	f := &fixture{
		events:       eventmodel.NewMockEventRepository(),
		attendees:    attendeemodel.NewMockAttendeeRepository(),
		certificates: certificatemodel.NewMockCertificateRepository(),
		attendee: &model.Attendee{
			ID:        uuid.MustParse("5f0c3c7e-2b7a-4d55-9a2e-6a7f2f0e8b11"),
			FirstName: "Jelena",
			LastName:  "Jović",
			Email:     "jelena@example.com",
			Data:      map[string]any{"licence": "LIC-42"},
		},
	}
	f.attendees.GetByIDFunc = func(id string) (*model.Attendee, error) {
		if id == f.attendee.ID.String() {
			return f.attendee, nil
		}
		return nil, nil
	}
	f.events.GetByIDFunc = func(id int64) (*model.Event, error) {
		if id == 7 {
			return &model.Event{ID: 7, Name: "Go Days"}, nil
		}
		return nil, nil
	}
	f.certificates.GetByEventIDFunc = func(eventID int64) (*model.Certificate, error) {
		if eventID == 7 {
			return &model.Certificate{ID: 1, Event: 7, Data: []byte(`{"certificateFilename":"tmpl.pdf","fields":[{"type":"name","position":{"x":200,"y":300}}]}`)}, nil
		}
		return nil, nil
	}

	r := renderer.New(store, renderer.WithPreviewSize(renderer.PreviewSize{Width: 423, Height: 600}))
	f.gen = New(r, f.events, f.attendees, f.certificates)
	f.gen.now = func() time.Time { return time.UnixMilli(1760000000000) }
	return f
}

func TestGenerator_ForAttendee(t *testing.T) {
	f := newFixture(t)

	res, err := f.gen.ForAttendee(context.Background(), f.attendee.ID.String(), 7, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
	assert.Equal(t, "certificate_Jelena_Jovi__1760000000000.pdf", res.Filename)
	assert.Equal(t, "Go Days", res.Event.Name)

	info, err := renderer.InspectBytes(res.PDF)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Count)
}

func TestGenerator_MissingRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.gen.ForAttendee(ctx, uuid.NewString(), 7, nil)
	assert.ErrorIs(t, err, ErrAttendeeNotFound)

	_, err = f.gen.ForAttendee(ctx, f.attendee.ID.String(), 8, nil)
	assert.ErrorIs(t, err, ErrEventNotFound)

	f.events.GetByIDFunc = func(id int64) (*model.Event, error) { return &model.Event{ID: id}, nil }
	_, err = f.gen.ForAttendee(ctx, f.attendee.ID.String(), 8, nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.True(t, IsNotFound(err))
}

func TestGenerator_PropagatesRendererKinds(t *testing.T) {
	f := newFixture(t)
	f.certificates.GetByEventIDFunc = func(int64) (*model.Certificate, error) {
		return &model.Certificate{Data: []byte(`{"certificateFilename":"gone.pdf"}`)}, nil
	}

	_, err := f.gen.ForAttendee(context.Background(), f.attendee.ID.String(), 7, nil)
	assert.Equal(t, renderer.KindNotFound, renderer.KindOf(err))
	assert.True(t, IsNotFound(err))

	f.attendee.LastName = ""
	_, err = f.gen.ForAttendee(context.Background(), f.attendee.ID.String(), 7, nil)
	assert.Equal(t, renderer.KindInvalidInput, renderer.KindOf(err))
}

func TestGenerator_RepositoryErrors(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	f.certificates.GetByEventIDFunc = func(int64) (*model.Certificate, error) { return nil, boom }

	_, err := f.gen.ForAttendee(context.Background(), f.attendee.ID.String(), 7, nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsNotFound(err))
}

func TestDecodeTemplate(t *testing.T) {
	_, err := DecodeTemplate([]byte(`{"fields": 3}`))
	assert.Equal(t, renderer.KindInvalidInput, renderer.KindOf(err))

	_, err = DecodeTemplate(nil)
	assert.Equal(t, renderer.KindInvalidInput, renderer.KindOf(err))

	tmpl, err := DecodeTemplate([]byte(`{"certificateFilename":"a.pdf","name":{"position":{"x":1,"y":2}}}`))
	require.NoError(t, err)
	assert.True(t, tmpl.UsesLegacyFormat())
	assert.Equal(t, "a.pdf", tmpl.CertificateFilename)
}

func TestToRendererAttendee(t *testing.T) {
	eventID := int64(12)
	a := &model.Attendee{ID: uuid.New(), FirstName: "A", LastName: "B", EventID: &eventID, Data: map[string]any{"phone": "123"}}

	out := ToRendererAttendee(a)
	assert.Equal(t, "12", out.EventID)
	assert.Equal(t, "123", out.Data["phone"])
	assert.Equal(t, a.ID.String(), out.ID)
}

func TestValidateTemplate(t *testing.T) {
	event := &model.Event{Form: []model.FormField{{ID: "f1", Name: "company"}}}

	tests := []struct {
		name    string
		field   renderer.FieldPlacement
		wantErr bool
	}{
		{name: "name field", field: renderer.FieldPlacement{Type: renderer.FieldName}},
		{name: "unknown type", field: renderer.FieldPlacement{Type: "signature"}, wantErr: true},
		{name: "custom text without text", field: renderer.FieldPlacement{Type: renderer.FieldCustomText}, wantErr: true},
		{name: "custom text", field: renderer.FieldPlacement{Type: renderer.FieldCustomText, CustomText: "Hi"}},
		{name: "form field in form", field: renderer.FieldPlacement{Type: renderer.FieldFormField, FormFieldID: "f1"}},
		{name: "form field not in form", field: renderer.FieldPlacement{Type: renderer.FieldFormField, FormFieldID: "f9"}, wantErr: true},
		{name: "form field without id", field: renderer.FieldPlacement{Type: renderer.FieldFormField}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(renderer.TemplateData{Fields: []renderer.FieldPlacement{tt.field}}, event)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
