package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedResolver() Resolver {
	return Resolver{
		Now:                 func() time.Time { return time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC) },
		FuzzyFormFieldMatch: true,
	}
}

func TestResolver_BasicTypes(t *testing.T) {
	r := fixedResolver()
	attendee := Attendee{FirstName: "Ana", LastName: "Petrović"}

	tests := []struct {
		name  string
		field FieldPlacement
		event Event
		want  string
	}{
		{"name", FieldPlacement{Type: FieldName}, Event{}, "Ana Petrović"},
		{"custom text", FieldPlacement{Type: FieldCustomText, CustomText: "Awarded"}, Event{}, "Awarded"},
		{"empty custom text", FieldPlacement{Type: FieldCustomText}, Event{}, ""},
		{"current date", FieldPlacement{Type: FieldCurrentDate}, Event{}, "5. 3. 2026."},
		{"event name", FieldPlacement{Type: FieldEventName}, Event{Name: "DevConf"}, "DevConf"},
		{"event name fallback", FieldPlacement{Type: FieldEventName}, Event{}, "Event"},
		{"unknown type", FieldPlacement{Type: "signature"}, Event{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.field, attendee, tt.event))
		})
	}
}

func TestResolver_CurrentDateUsesLocation(t *testing.T) {
	r := Resolver{
		Now:      func() time.Time { return time.Date(2026, time.March, 5, 23, 30, 0, 0, time.UTC) },
		Location: time.FixedZone("CET", 3600),
	}
	assert.Equal(t, "6. 3. 2026.", r.Resolve(FieldPlacement{Type: FieldCurrentDate}, Attendee{}, Event{}))
}

func TestResolver_FormFieldPrecedence(t *testing.T) {
	event := Event{Form: []FormField{
		{ID: "f1", Name: "email"},
		{ID: "f2", Name: "company"},
		{ID: "f3", Name: "city"},
		{ID: "f4", Name: "licence_no"},
	}}

	tests := []struct {
		name     string
		fieldID  string
		attendee Attendee
		want     string
	}{
		{
			name:    "reserved attribute wins over data",
			fieldID: "f1",
			attendee: Attendee{
				Email: "a@x.com",
				Data:  map[string]any{"email": "data@x.com", "f1": "id@x.com"},
			},
			want: "a@x.com",
		},
		{
			name:     "reserved attribute returned even when empty",
			fieldID:  "f1",
			attendee: Attendee{Data: map[string]any{"email": "data@x.com"}},
			want:     "",
		},
		{
			name:     "declared name",
			fieldID:  "f2",
			attendee: Attendee{Data: map[string]any{"company": "Acme", "f2": "by id"}},
			want:     "Acme",
		},
		{
			name:     "raw id",
			fieldID:  "f3",
			attendee: Attendee{Data: map[string]any{"f3": "Novi Sad", "field_f3": "prefixed"}},
			want:     "Novi Sad",
		},
		{
			name:     "field_ prefixed id",
			fieldID:  "f3",
			attendee: Attendee{Data: map[string]any{"field_f3": "Beograd"}},
			want:     "Beograd",
		},
		{
			name:     "fuzzy substring",
			fieldID:  "f4",
			attendee: Attendee{Data: map[string]any{"old_f4_value": "L-123"}},
			want:     "L-123",
		},
		{
			name:     "numeric values are formatted",
			fieldID:  "f2",
			attendee: Attendee{Data: map[string]any{"company": float64(42)}},
			want:     "42",
		},
		{
			name:     "no match",
			fieldID:  "missing",
			attendee: Attendee{Data: map[string]any{"company": "Acme"}},
			want:     "",
		},
		{
			name:     "nil data",
			fieldID:  "f2",
			attendee: Attendee{},
			want:     "",
		},
	}

	r := fixedResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := FieldPlacement{Type: FieldFormField, FormFieldID: tt.fieldID}
			assert.Equal(t, tt.want, r.Resolve(field, tt.attendee, event))
		})
	}
}

func TestResolver_FuzzyMatchCanBeDisabled(t *testing.T) {
	r := fixedResolver()
	r.FuzzyFormFieldMatch = false

	field := FieldPlacement{Type: FieldFormField, FormFieldID: "f4"}
	attendee := Attendee{Data: map[string]any{"old_f4_value": "L-123"}}

	assert.Equal(t, "", r.Resolve(field, attendee, Event{}))
}

func TestResolver_FuzzyMatchIsDeterministic(t *testing.T) {
	r := fixedResolver()
	field := FieldPlacement{Type: FieldFormField, FormFieldID: "7"}
	attendee := Attendee{Data: map[string]any{"z7": "last", "a7": "first", "m7": "middle"}}

	for i := 0; i < 20; i++ {
		assert.Equal(t, "first", r.Resolve(field, attendee, Event{}))
	}
}

func TestResolver_EmptyFormFieldID(t *testing.T) {
	r := fixedResolver()
	field := FieldPlacement{Type: FieldFormField}
	attendee := Attendee{Data: map[string]any{"anything": "value"}}

	assert.Equal(t, "", r.Resolve(field, attendee, Event{}), "an empty id must not substring-match every key")
}

func TestLegacyLicence(t *testing.T) {
	assert.Equal(t, "", LegacyLicence(Attendee{}))
	assert.Equal(t, "N-1", LegacyLicence(Attendee{Data: map[string]any{"licence_number": "N-9", "license": "N-1"}}))
	assert.Equal(t, "C-7", LegacyLicence(Attendee{Data: map[string]any{"licence": "", "certificate_number": "C-7"}}))
}
