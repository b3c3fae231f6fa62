// Package bsdata holds the raw roster export schema as it arrives from the
// list builder. Every field is optional; unknown fields are ignored.
package bsdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned by Decode when the input exceeds the size cap.
var ErrTooLarge = errors.New("bsdata: input exceeds size limit")

type Document struct {
	Roster *Roster `json:"roster,omitempty"`
}

type Roster struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Costs      []Cost   `json:"costs,omitempty"`
	CostLimits []Cost   `json:"costLimits,omitempty"`
	Forces     []*Force `json:"forces,omitempty"`
}

type Force struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name,omitempty"`
	CatalogueName string           `json:"catalogueName,omitempty"`
	Rules         []Rule           `json:"rules,omitempty"`
	Selections    []*SelectionNode `json:"selections,omitempty"`
}

// SelectionNode is one entry of the selection tree: a unit, model, weapon or
// upgrade. Type is a hint only.
type SelectionNode struct {
	ID         string           `json:"id,omitempty"`
	Name       string           `json:"name,omitempty"`
	EntryID    string           `json:"entryId,omitempty"`
	Type       string           `json:"type,omitempty"`
	Group      string           `json:"group,omitempty"`
	Number     int              `json:"number,omitempty"`
	Categories []Category       `json:"categories,omitempty"`
	Costs      []Cost           `json:"costs,omitempty"`
	Rules      []Rule           `json:"rules,omitempty"`
	Profiles   []Profile        `json:"profiles,omitempty"`
	Selections []*SelectionNode `json:"selections,omitempty"`
}

type Category struct {
	ID      string `json:"id,omitempty"`
	EntryID string `json:"entryId,omitempty"`
	Name    string `json:"name,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

type Cost struct {
	Name   string  `json:"name,omitempty"`
	TypeID string  `json:"typeId,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

type Rule struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type Profile struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name,omitempty"`
	TypeName        string           `json:"typeName,omitempty"`
	Characteristics []Characteristic `json:"characteristics,omitempty"`
}

// Characteristic carries the raw value and, in newer exports, a "$text"
// rendering of it. Either may be missing.
type Characteristic struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
	Text  string `json:"$text,omitempty"`
}

// UnmarshalJSON accepts numeric and boolean characteristic values, which some
// exporters emit unquoted.
func (c *Characteristic) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
		Text  json.RawMessage `json:"$text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name = raw.Name
	c.Value = scalarString(raw.Value)
	c.Text = scalarString(raw.Text)
	return nil
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Decode reads at most maxBytes from r and unmarshals the export document.
// maxBytes <= 0 disables the cap.
func Decode(r io.Reader, maxBytes int64) (*Document, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bsdata: read: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return Unmarshal(data)
}

func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bsdata: decode: %w", err)
	}
	return &doc, nil
}

// FirstForce returns the first non-nil force of the roster, or nil.
func (d *Document) FirstForce() *Force {
	if d == nil || d.Roster == nil {
		return nil
	}
	for _, f := range d.Roster.Forces {
		if f != nil {
			return f
		}
	}
	return nil
}
