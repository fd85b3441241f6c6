package tools

import (
	"errors"
	"fmt"
)

// requireString extracts a required string parameter from the input map.
func requireString(input map[string]interface{}, key string) (string, error) {
	value, ok := input[key].(string)
	if !ok || value == "" {
		return "", errors.New("missing required parameter: " + key + " (string)")
	}
	return value, nil
}

// optionalString extracts an optional string parameter; absent or null
// yields "".
func optionalString(input map[string]interface{}, key string) string {
	value, _ := input[key].(string)
	return value
}

// optionalBool extracts an optional bool parameter with a default.
func optionalBool(input map[string]interface{}, key string, def bool) bool {
	if value, ok := input[key].(bool); ok {
		return value
	}
	return def
}

// stringSlice extracts a []string parameter from a JSON array value.
// Absent yields nil; a present non-array or an array with non-string
// entries is an error.
func stringSlice(input map[string]interface{}, key string) ([]string, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("parameter %s must be an array of strings", key)
	}

	result := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %s[%d] must be a string", key, i)
		}
		result = append(result, s)
	}
	return result, nil
}
