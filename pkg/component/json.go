package component

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type wire struct {
	Text  string      `json:"text"`
	Bold  *bool       `json:"bold,omitempty"`
	Extra []Component `json:"extra,omitempty"`
}

// MarshalJSON encodes c as {"text": ..., "bold": ..., "extra": [...]}.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Text: c.Text, Bold: c.Bold, Extra: c.Children})
}

// UnmarshalJSON accepts an object, a bare string, or an array whose first
// element is the parent of the rest.
func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("component: empty input")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Text(s)
		return nil
	case '[':
		var parts []Component
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) == 0 {
			return fmt.Errorf("component: empty array")
		}
		*c = parts[0].Append(parts[1:]...)
		return nil
	case '{':
		var w wire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*c = Component{Text: w.Text, Bold: w.Bold, Children: w.Extra}
		return nil
	default:
		return fmt.Errorf("component: unexpected JSON token %q", data[0])
	}
}

// ParseJSON decodes a serialized component.
func ParseJSON(data []byte) (Component, error) {
	var c Component
	err := json.Unmarshal(data, &c)
	return c, err
}
