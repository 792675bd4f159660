package session

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UserProfile is the backend-issued identity document cached next to the
// access token. Only the fields the console reasons about are typed; the
// rest round-trips untouched via the captured source document.
type UserProfile struct {
	ID         string      `json:"_id,omitempty"`
	Email      string      `json:"email,omitempty"`
	FullName   string      `json:"full_name,omitempty"`
	RoleID     FlexValue   `json:"role_id,omitempty"`
	CustomerID CustomerRef `json:"customer_id,omitempty"`

	raw json.RawMessage
}

func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = UserProfile(decoded)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON overlays the typed fields onto the source document so unknown
// backend fields survive a load/store cycle.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	type plain UserProfile
	typed, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	if len(p.raw) == 0 {
		return typed, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &merged); err != nil {
		return typed, nil
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(typed, &overlay); err != nil {
		return nil, err
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// FlexValue holds a field the backend serializes inconsistently (string,
// number, or embedded object). Truthiness follows the upstream contract:
// empty strings, zero, false, and null are all absence.
type FlexValue struct {
	raw json.RawMessage
}

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Truthy reports whether the field carries a usable value.
func (v FlexValue) Truthy() bool {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return strings.TrimSpace(s) != ""
	case '{', '[':
		return true
	default:
		if n, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return n != 0
		}
		return true
	}
}

// String returns the value rendered as an identifier when possible.
func (v FlexValue) String() string {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != "" {
		return obj.ID
	}
	return string(raw)
}

// CustomerRef is the customer linkage on a profile: either a plain id string
// or an embedded customer object carrying its own identifiers.
type CustomerRef struct {
	raw        json.RawMessage
	str        string
	objectID   string
	customerID string
	present    bool
}

func (c *CustomerRef) UnmarshalJSON(data []byte) error {
	*c = CustomerRef{raw: append(json.RawMessage(nil), data...)}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		c.raw = nil
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		c.str = s
		c.present = strings.TrimSpace(s) != ""
		return nil
	}
	if raw[0] == '{' {
		var obj struct {
			ID         string `json:"_id"`
			CustomerID string `json:"customer_id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil
		}
		c.objectID = obj.ID
		c.customerID = obj.CustomerID
		c.present = true
		return nil
	}
	return nil
}

func (c CustomerRef) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.raw, nil
}

// Present reports whether the profile carries any customer linkage.
func (c CustomerRef) Present() bool {
	return c.present
}

// Resolve extracts the customer id, preferring the embedded object's own id,
// then its customer_id field, then the raw string form, then the fallback.
func (c CustomerRef) Resolve(fallback string) string {
	if c.str != "" {
		return c.str
	}
	if c.objectID != "" {
		return c.objectID
	}
	if c.customerID != "" {
		return c.customerID
	}
	return fallback
}
