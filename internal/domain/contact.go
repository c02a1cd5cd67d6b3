package domain

import (
	"encoding/json"

	"github.com/danielgtaylor/huma/v2"
)

// Contact mirrors a record owned by the external contacts service. Only the id
// matters to this server; every other field belongs to the contacts service's
// own schema and round-trips untouched.
type Contact struct {
	ID     *int64
	Fields map[string]any
}

// MarshalJSON flattens the id and pass-through fields into one object.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+1)
	for k, v := range c.Fields {
		out[k] = v
	}
	if c.ID != nil {
		out["id"] = *c.ID
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the id off and keeps the remaining fields verbatim.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = nil
	if idRaw, ok := raw["id"]; ok {
		if string(idRaw) != "null" {
			var id int64
			if err := json.Unmarshal(idRaw, &id); err != nil {
				return err
			}
			c.ID = &id
		}
		delete(raw, "id")
	}

	c.Fields = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		c.Fields[k] = val
	}
	return nil
}

// Schema implements huma.SchemaProvider. The contacts service owns the
// contact schema, so everything beyond the id is an open set of properties.
func (c Contact) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeObject,
		Description: "Contact record owned by the contacts service",
		Properties: map[string]*huma.Schema{
			"id": {Type: huma.TypeInteger, Format: "int64"},
		},
		AdditionalProperties: true,
	}
}
