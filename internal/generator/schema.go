package generator

import (
	"github.com/sheetsmith/sheetsmith/internal/spec"
	"google.golang.org/genai"
)

// specResponseSchema constrains model output to the sheet spec shape. The
// title and sheets fields are mandatory; everything else may be omitted and
// is backfilled during normalization.
func specResponseSchema() *genai.Schema {
	columnSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString},
			"type": {
				Type: genai.TypeString,
				Enum: spec.ColumnTypes,
			},
			"description": {Type: genai.TypeString},
			"formula":     {Type: genai.TypeString},
			"required":    {Type: genai.TypeBoolean},
		},
		Required: []string{"name", "type"},
	}
	sheetSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString},
			"kind": {
				Type: genai.TypeString,
				Enum: []string{spec.SheetKindData, spec.SheetKindSummary, spec.SheetKindDashboard},
			},
			"columns": {
				Type:  genai.TypeArray,
				Items: columnSchema,
			},
		},
		Required: []string{"name"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    {Type: genai.TypeString},
			"category": {Type: genai.TypeString},
			"tags": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"notes": {Type: genai.TypeString},
			"sheets": {
				Type:  genai.TypeArray,
				Items: sheetSchema,
			},
		},
		Required: []string{"title", "sheets"},
	}
}
