// Package spec defines the normalized shape of a generated sheet
// specification and the normalization applied to raw model output.
package spec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Column type enumeration accepted in generated specs.
const (
	ColumnTypeText     = "text"
	ColumnTypeNumber   = "number"
	ColumnTypeCurrency = "currency"
	ColumnTypeDate     = "date"
	ColumnTypeDatetime = "datetime"
	ColumnTypeBoolean  = "boolean"
	ColumnTypeFormula  = "formula"
	ColumnTypeCategory = "category"
)

// ColumnTypes lists the accepted column types in declaration order.
var ColumnTypes = []string{
	ColumnTypeText,
	ColumnTypeNumber,
	ColumnTypeCurrency,
	ColumnTypeDate,
	ColumnTypeDatetime,
	ColumnTypeBoolean,
	ColumnTypeFormula,
	ColumnTypeCategory,
}

// Sheet kinds accepted in generated specs.
const (
	SheetKindData      = "data"
	SheetKindSummary   = "summary"
	SheetKindDashboard = "dashboard"
)

// Column describes one column of a sheet tab.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Formula     string `json:"formula,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Sheet describes one tab of a generated spreadsheet.
type Sheet struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind,omitempty"`
	Columns []Column `json:"columns,omitempty"`
}

// Spec is a normalized description of a generated spreadsheet.
type Spec struct {
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes,omitempty"`
	Sheets   []Sheet  `json:"sheets"`
}

// IsValidColumnType reports whether t is part of the column type enumeration.
func IsValidColumnType(t string) bool {
	for _, candidate := range ColumnTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Parse decodes raw model output into a Spec. The title and at least a
// sheets field must be present; a spec without a title is rejected because
// the schema marks it mandatory and an empty result would be unusable.
func Parse(raw []byte) (Spec, error) {
	// The model occasionally returns sheets as a non-list value even under
	// a strict schema, so decode defensively field by field.
	var loose struct {
		Title    string          `json:"title"`
		Category string          `json:"category"`
		Tags     json.RawMessage `json:"tags"`
		Notes    string          `json:"notes"`
		Sheets   json.RawMessage `json:"sheets"`
	}
	if errUnmarshal := json.Unmarshal(raw, &loose); errUnmarshal != nil {
		return Spec{}, fmt.Errorf("spec: parse model output: %w", errUnmarshal)
	}
	if strings.TrimSpace(loose.Title) == "" {
		return Spec{}, fmt.Errorf("spec: model output missing title")
	}

	out := Spec{
		Title:    strings.TrimSpace(loose.Title),
		Category: strings.TrimSpace(loose.Category),
		Notes:    loose.Notes,
	}

	if len(loose.Tags) > 0 {
		var tags []string
		if errTags := json.Unmarshal(loose.Tags, &tags); errTags == nil && tags != nil {
			out.Tags = tags
		}
	}
	if len(loose.Sheets) > 0 {
		var sheets []Sheet
		if errSheets := json.Unmarshal(loose.Sheets, &sheets); errSheets == nil && sheets != nil {
			out.Sheets = sheets
		}
	}

	return out, nil
}

// Normalize fills defaults on a parsed spec: the requested category is
// backfilled when the model omitted one, tags default to an empty list, and
// sheets defaults to an empty list when missing or malformed. A valid spec
// with zero sheets is stored as-is; emptiness is not an error.
func Normalize(s Spec, requestedCategory string) Spec {
	if s.Category == "" {
		s.Category = strings.TrimSpace(requestedCategory)
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Sheets == nil {
		s.Sheets = []Sheet{}
	}
	return s
}
