package transform

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goschema "github.com/reoring/goschema"
)

func text(v any) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotText, v)
}

// JSON decodes JSON text into any: objects become map[string]any, arrays
// []any and numbers float64.
func JSON() *goschema.UseNode {
	return goschema.Use("json", func(v any) (any, error) {
		b, err := text(v)
		if err != nil {
			return nil, err
		}
		var out any
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// YAML decodes a single YAML document. Mappings are normalised to
// map[string]any so the result validates like decoded JSON.
func YAML() *goschema.UseNode {
	return goschema.Use("yaml", func(v any) (any, error) {
		b, err := text(v)
		if err != nil {
			return nil, err
		}
		var out any
		if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&out); err != nil {
			return nil, err
		}
		return normalize(out), nil
	})
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	default:
		return v
	}
}
