package llm

import (
	"fmt"
	"math"
	"strings"

	"github.com/bytedance/sonic"
)

const SystemPrompt = `You are UniDataAgent, a meticulous research assistant that updates a personal university dashboard.
Hard rules:
1) Output ONLY valid JSON. No markdown, no prose.
2) Follow the exact schema provided. Do not add extra keys.
3) Never invent facts. If you cannot verify, set value to null and explain briefly in notes.
4) Prefer official university sources. If not available, use reputable sources and say so in source.
5) Provide confidence from 0 to 1 for every field you set.
6) Use ISO dates (YYYY-MM-DD). Use a plain number for money without currency symbols unless asked.
7) Keep notes short. No opinions. No motivational text.`

const outputFormat = `Output format (JSON):
{
  "results": [
    {
      "columnKey": "string",
      "value": <appropriate type or null>,
      "source": "string (URL or source name)",
      "confidence": 0.0-1.0,
      "notes": "string or null"
    }
  ]
}

Return ONLY valid JSON matching the schema.`

// BuildUserPrompt renders the per-university instruction. Columns without a
// key are skipped; a request left with none is rejected.
func BuildUserPrompt(req Request) (string, error) {
	if strings.TrimSpace(req.University.Name) == "" {
		return "", fmt.Errorf("%w: university name is required", ErrInvalidRequest)
	}

	var cols strings.Builder
	for _, c := range req.Columns {
		if c.Key == "" {
			continue
		}
		label := c.Label
		if label == "" {
			label = c.Key
		}
		typ := c.Type
		if typ == "" {
			typ = "text"
		}
		fmt.Fprintf(&cols, "- %s (%s): %s", label, c.Key, typ)
		if c.AIInstructions != nil && *c.AIInstructions != "" {
			fmt.Fprintf(&cols, " - %s", *c.AIInstructions)
		}
		cols.WriteByte('\n')
	}
	if cols.Len() == 0 {
		return "", fmt.Errorf("%w: no valid columns provided", ErrInvalidRequest)
	}

	var b strings.Builder
	b.WriteString("Update the following university data:\n\n")
	fmt.Fprintf(&b, "University: %s\n", req.University.Name)
	writeField(&b, "Country", req.University.Country)
	writeField(&b, "State", req.University.State)
	writeField(&b, "City", req.University.City)
	writeField(&b, "Website", req.University.Website)
	b.WriteString("\nColumns to update:\n")
	b.WriteString(cols.String())
	b.WriteString("\n")
	b.WriteString(outputFormat)
	return b.String(), nil
}

func writeField(b *strings.Builder, name string, v *string) {
	if v == nil || *v == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", name, *v)
}

// ParseResults decodes a model answer. Both {"results": [...]} and a bare
// array are accepted, and a single object is treated as a one element list.
func ParseResults(content string) ([]Result, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var parsed any
	if err := sonic.UnmarshalString(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}
	if m, ok := parsed.(map[string]any); ok {
		if inner, ok := m["results"]; ok && inner != nil {
			parsed = inner
		}
	}

	items, ok := parsed.([]any)
	if !ok {
		items = []any{parsed}
	}

	out := make([]Result, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, normalizeResult(m))
	}
	return out, nil
}

func normalizeResult(m map[string]any) Result {
	r := Result{Value: m["value"]}
	if s, ok := m["columnKey"].(string); ok {
		r.ColumnKey = s
	}
	if s, ok := m["source"].(string); ok {
		r.Source = s
	}
	if f, ok := m["confidence"].(float64); ok {
		r.Confidence = ClampConfidence(f)
	}
	if s, ok := m["notes"].(string); ok {
		r.Notes = &s
	}
	return r
}

// ClampConfidence keeps a confidence inside [0, 1]. NaN becomes 0.
func ClampConfidence(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
