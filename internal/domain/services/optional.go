package services

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for partial-update semantics.
// This enables proper tri-state handling that Go's *string cannot express:
//   - Present=false: field absent (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// SetString returns a present OptionalString holding s.
func SetString(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	// Check for JSON null
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	// Parse as string
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OptionalBool tracks presence and value for boolean fields.
type OptionalBool struct {
	Present bool
	Value   bool
}

// SetBool returns a present OptionalBool holding b.
func SetBool(b bool) OptionalBool {
	return OptionalBool{Present: true, Value: b}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.Present = true
	return json.Unmarshal(data, &o.Value)
}
