package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID accepts an identifier given either as a JSON number or as a string
type ID int64

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identifier %q", raw)
	}
	*id = ID(v)
	return nil
}

// MarshalJSON renders the identifier as a string
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(id), 10))
}
