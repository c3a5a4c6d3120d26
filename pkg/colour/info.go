package colour

import "maps"

// Info is the descriptive metadata carried by colours, colour groups and camps.
type Info struct {
	// Name identifies the object. It may only contain letters, digits and
	// underscores; the empty string means the object is unnamed.
	Name string

	// Description is short free text, at most MaxDescriptionLength characters.
	Description string

	// Metadata is unstructured data used for querying and additional context.
	Metadata map[string]any
}

// Validate checks the name and description.
func (i Info) Validate() error {
	if err := ValidateName(i.Name); err != nil {
		return err
	}
	return ValidateDescription(i.Description)
}

// Clone returns a copy whose metadata map is not shared with i.
// A nil metadata map becomes an empty one.
func (i Info) Clone() Info {
	out := i
	out.Metadata = maps.Clone(i.Metadata)
	if out.Metadata == nil {
		out.Metadata = map[string]any{}
	}
	return out
}

// NullableString returns nil for the empty string, so unnamed objects encode as JSON null.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, treating nil as the empty string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
