// internal/model/optional.go
package model

import "encoding/json"

// OptionalString distinguishes an absent JSON field from an explicit null
// and from a string value.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func Some(v string) OptionalString {
	return OptionalString{Set: true, Valid: true, Value: v}
}

func Null() OptionalString {
	return OptionalString{Set: true}
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Valid = false
		o.Value = ""
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Blank reports whether the field is absent, null or the empty string.
func (o OptionalString) Blank() bool {
	return !o.Set || !o.Valid || o.Value == ""
}

// Ptr returns nil for absent, null or empty values.
func (o OptionalString) Ptr() *string {
	if o.Blank() {
		return nil
	}
	v := o.Value
	return &v
}
