package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar decodes any JSON string, number or boolean into its text form.
// Numbers keep their literal digits, so 2 becomes "2" and 2.50 stays "2.50".
// null leaves the value unchanged. Objects and arrays are rejected.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(v)
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*s = Scalar(data)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a string, number or boolean, got %s", data[:1])
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = Scalar(n)
	}
	return nil
}

// String returns the decoded text
func (s Scalar) String() string {
	return string(s)
}

// StringPtr converts a nullable scalar, keeping nil as nil
func (s *Scalar) StringPtr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
