package countries

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Undefined replaces text fields that are missing or not strings.
const Undefined = "undefined"

// Wire field names of the REST Countries v2 schema.
const (
	fieldName       = "name"
	fieldNativeName = "nativeName"
	fieldArea       = "area"
	fieldAlphaCode  = "alpha3Code"
	fieldBorders    = "borders"
)

// ErrPayload reports a response body that is not a JSON array.
var ErrPayload = errors.New("payload is not a json array")

// Country is one entry of the country list.
type Country struct {
	Name       string   `json:"name"`
	NativeName string   `json:"nativeName"`
	Area       float64  `json:"area"`
	AlphaCode  string   `json:"alphaCode"`
	Borders    []string `json:"borders"`
}

// Parse decodes a JSON array of country objects. Individual fields that are
// missing or mistyped fall back to defaults; only a top-level payload that is
// not an array fails. Elements that are not objects are skipped.
func Parse(data []byte) ([]Country, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: null", ErrPayload)
	}

	out := make([]Country, 0, len(elements))
	for _, raw := range elements {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, fromObject(obj))
	}
	return out, nil
}

func fromObject(obj map[string]any) Country {
	return Country{
		Name:       stringField(obj, fieldName),
		NativeName: stringField(obj, fieldNativeName),
		Area:       numberField(obj, fieldArea),
		AlphaCode:  stringField(obj, fieldAlphaCode),
		Borders:    stringsField(obj, fieldBorders),
	}
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return Undefined
}

func numberField(obj map[string]any, key string) float64 {
	if v, ok := obj[key].(float64); ok {
		return v
	}
	return 0
}

// stringsField requires every element to be a string; anything else yields an
// empty slice rather than a partial one.
func stringsField(obj map[string]any, key string) []string {
	values, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return []string{}
		}
		out = append(out, s)
	}
	return out
}

// Clone returns a copy of list that shares no backing arrays with it.
func Clone(list []Country) []Country {
	if list == nil {
		return nil
	}
	dup := make([]Country, len(list))
	for i, c := range list {
		dup[i] = c
		if c.Borders != nil {
			dup[i].Borders = make([]string, len(c.Borders))
			copy(dup[i].Borders, c.Borders)
		}
	}
	return dup
}
