package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iancoleman/strcase"
)

// The client names fields in camelCase and the server in snake_case. Every
// key conversion between the two goes through this file.

// DecamelizeKeys returns v as a generic JSON tree with every object key
// converted from camelCase to snake_case.
func DecamelizeKeys(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling value: %w", err)
	}
	tree, err := parseTree(data)
	if err != nil {
		return nil, err
	}
	return rewriteKeys(tree, strcase.ToSnake), nil
}

// CamelizeKeys returns the JSON document with every object key converted
// from snake_case to camelCase. Keys already in camelCase are unchanged.
func CamelizeKeys(data []byte) ([]byte, error) {
	tree, err := parseTree(data)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(rewriteKeys(tree, strcase.ToLowerCamel))
	if err != nil {
		return nil, fmt.Errorf("marshaling camelized tree: %w", err)
	}
	return out, nil
}

// decodeCamelized decodes a server response into dst, whose tags are
// camelCase.
func decodeCamelized(data []byte, dst any) error {
	camel, err := CamelizeKeys(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(camel, dst)
}

func parseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return tree, nil
}

func rewriteKeys(node any, conv func(string) string) any {
	switch n := node.(type) {
	case map[string]any:
		// When keys collide, one already spelled as the target wins, then
		// the lexically smallest.
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(n))
		for _, k := range keys {
			if conv(k) == k {
				out[k] = rewriteKeys(n[k], conv)
			}
		}
		for _, k := range keys {
			target := conv(k)
			if _, taken := out[target]; !taken {
				out[target] = rewriteKeys(n[k], conv)
			}
		}
		return out
	case []any:
		for i := range n {
			n[i] = rewriteKeys(n[i], conv)
		}
		return n
	default:
		return node
	}
}
