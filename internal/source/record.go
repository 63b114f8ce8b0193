package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ID is an item identity as published by the source. The endpoint emits
// strings, older fixtures use numbers; both decode to the same text form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", value.Line)
	}
	*id = ID(value.Value)
	return nil
}

// Record is one entry of the lists payload.
type Record struct {
	ID             ID     `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	ScientificName string `json:"scientific_name" yaml:"scientific_name"`
	ListNumber     int    `json:"list_number" yaml:"list_number"`
}

// Payload is the document served by the endpoint.
type Payload struct {
	Lists []Record `json:"lists" yaml:"lists"`
}

// CloneRecords returns a copy of records.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	return append([]Record(nil), records...)
}
