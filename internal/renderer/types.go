package renderer

type FieldType string

const (
	FieldName        FieldType = "name"
	FieldCustomText  FieldType = "custom_text"
	FieldFormField   FieldType = "form_field"
	FieldCurrentDate FieldType = "current_date"
	FieldEventName   FieldType = "event_name"
)

// DefaultFontSize applies to placements saved without a font size.
const DefaultFontSize = 12.0

// ReservedAttendeeAttributes are read from the attendee record itself rather than its data map.
var ReservedAttendeeAttributes = []string{"email", "first_name", "last_name", "event_id"}

// LegacyLicenceKeys are checked in order when drawing the legacy licence field.
var LegacyLicenceKeys = []string{"licence", "license", "certificate_number", "license_number", "licence_number"}

func (t FieldType) Valid() bool {
	switch t {
	case FieldName, FieldCustomText, FieldFormField, FieldCurrentDate, FieldEventName:
		return true
	}
	return false
}

// Position is in editor preview pixels with the origin at the top-left.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FieldPlacement struct {
	Type        FieldType `json:"type"`
	Position    *Position `json:"position,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	CustomText  string    `json:"customText,omitempty"`
	FormFieldID string    `json:"formFieldId,omitempty"`
}

type LegacyPlacement struct {
	Position *Position `json:"position,omitempty"`
	FontSize float64   `json:"fontSize,omitempty"`
}

// TemplateData is the JSON document stored with a certificate template.
// Fields takes precedence; Name and Licence are only honored when Fields is empty.
type TemplateData struct {
	CertificateFilename string           `json:"certificateFilename,omitempty"`
	Fields              []FieldPlacement `json:"fields,omitempty"`
	Name                *LegacyPlacement `json:"name,omitempty"`
	Licence             *LegacyPlacement `json:"licence,omitempty"`
	EventName           string           `json:"eventName,omitempty"`
}

func (d TemplateData) UsesLegacyFormat() bool {
	return len(d.Fields) == 0
}

type Attendee struct {
	ID        string         `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	EventID   string         `json:"event_id"`
	Data      map[string]any `json:"data"`
}

// Attribute returns one of the reserved top-level attendee attributes.
func (a Attendee) Attribute(name string) (string, bool) {
	switch name {
	case "email":
		return a.Email, true
	case "first_name":
		return a.FirstName, true
	case "last_name":
		return a.LastName, true
	case "event_id":
		return a.EventID, true
	}
	return "", false
}

type FormField struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type Event struct {
	Name string      `json:"name"`
	Form []FormField `json:"form"`
}

func (e Event) FormField(id string) (FormField, bool) {
	for _, f := range e.Form {
		if f.ID == id {
			return f, true
		}
	}
	return FormField{}, false
}

// PreviewSize is the pixel size of the editor canvas the placements were made on.
type PreviewSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
