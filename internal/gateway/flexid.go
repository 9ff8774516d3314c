package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID decodes an identifier that the mock demo API serves as a JSON
// number but the bundled cart API serves as a string. Internally ids are
// always opaque strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal string id: %w", err)
		}
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("json.Unmarshal numeric id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) MarshalJSON() ([]byte, error) {
	// Numeric ids go back on the wire as numbers so the mock API
	// round-trips unchanged.
	if n, err := strconv.ParseInt(string(f), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(f))
}
