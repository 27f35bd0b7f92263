package renderer

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout renders dates the way the sr-RS locale does, e.g. "15. 10. 2026.".
const DateLayout = "2. 1. 2006."

const fallbackEventName = "Event"

// Resolver produces the text drawn for a field placement.
// An empty result means the field is skipped.
type Resolver struct {
	Now      func() time.Time
	Location *time.Location

	// FuzzyFormFieldMatch enables the last-resort scan of attendee data keys
	// containing the form field id.
	//
	// Deprecated: kept for templates saved before form field ids were mapped
	// to data keys. Disable once stored templates have been migrated.
	FuzzyFormFieldMatch bool
}

func NewResolver() Resolver {
	return Resolver{Now: time.Now, FuzzyFormFieldMatch: true}
}

func (r Resolver) Resolve(field FieldPlacement, attendee Attendee, event Event) string {
	switch field.Type {
	case FieldName:
		return FullName(attendee)
	case FieldCustomText:
		return field.CustomText
	case FieldCurrentDate:
		return r.today()
	case FieldEventName:
		if event.Name != "" {
			return event.Name
		}
		return fallbackEventName
	case FieldFormField:
		return r.formField(field.FormFieldID, attendee, event)
	}
	return ""
}

func (r Resolver) today() string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	t := now()
	if r.Location != nil {
		t = t.In(r.Location)
	}
	return t.Format(DateLayout)
}

func (r Resolver) formField(id string, attendee Attendee, event Event) string {
	if id == "" {
		return ""
	}

	var name string
	if def, ok := event.FormField(id); ok {
		name = def.Name
	}
	if name != "" && slices.Contains(ReservedAttendeeAttributes, name) {
		v, _ := attendee.Attribute(name)
		return v
	}

	if attendee.Data == nil {
		return ""
	}
	if name != "" {
		if v := textValue(attendee.Data[name]); v != "" {
			return v
		}
	}
	if v := textValue(attendee.Data[id]); v != "" {
		return v
	}
	if v := textValue(attendee.Data["field_"+id]); v != "" {
		return v
	}

	if !r.FuzzyFormFieldMatch {
		return ""
	}
	keys := make([]string, 0, len(attendee.Data))
	for k := range attendee.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(k, id) {
			return textValue(attendee.Data[k])
		}
	}
	return ""
}

func FullName(a Attendee) string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// LegacyLicence returns the first licence-like value in the attendee data.
func LegacyLicence(a Attendee) string {
	for _, key := range LegacyLicenceKeys {
		if v := textValue(a.Data[key]); v != "" {
			return v
		}
	}
	return ""
}

// textValue flattens a decoded JSON value to display text. Values that would be
// falsy in the editor (nil, "", false, 0) come back empty.
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		if val == 0 {
			return ""
		}
		return strconv.Itoa(val)
	case int64:
		if val == 0 {
			return ""
		}
		return strconv.FormatInt(val, 10)
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
