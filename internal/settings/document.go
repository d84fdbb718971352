// Package settings models the per-tenant settings document: a nested JSON
// object with typed sections, merged and addressed by dot paths.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the decoded JSON form of a tenant's settings.
type Document map[string]any

// Parse decodes a stored settings blob. A nil or blank blob yields the
// default document.
func Parse(raw *string) (Document, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Default(), nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(*raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored settings: %w", err)
	}
	if doc == nil {
		return Default(), nil
	}
	return doc, nil
}

// Encode serializes the document for storage.
func (d Document) Encode() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return string(data), nil
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneMap(d))
}

// Merge deep-merges patch into base and returns the result; neither input
// is modified. When both sides hold a non-null object the two are merged
// recursively, otherwise the patch value replaces the base value. Arrays are
// replaced wholesale and an explicit null is kept as null.
func Merge(base, patch Document) Document {
	return Document(mergeMaps(base, patch))
}

func mergeMaps(base, patch map[string]any) map[string]any {
	out := cloneMap(base)
	if out == nil {
		out = make(map[string]any, len(patch))
	}
	for key, incoming := range patch {
		current, exists := out[key]
		currentMap, currentIsMap := asMap(current)
		incomingMap, incomingIsMap := asMap(incoming)
		if exists && currentIsMap && incomingIsMap {
			out[key] = mergeMaps(currentMap, incomingMap)
			continue
		}
		out[key] = cloneValue(incoming)
	}
	return out
}

// GetPath resolves a dot-separated path such as "security.passwordPolicy.minLength".
// The second result is false when any segment is missing.
func GetPath(doc Document, path string) (any, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}

	var current any = map[string]any(doc)
	for _, segment := range segments {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// SetPath returns a copy of doc with value stored at path. Missing
// intermediate objects are created and non-object intermediates are
// replaced by empty objects.
func SetPath(doc Document, path string, value any) (Document, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	out := doc.Clone()
	if out == nil {
		out = Document{}
	}

	current := map[string]any(out)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := asMap(current[segment])
		if !ok || next == nil {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = cloneValue(value)

	return out, nil
}

// ValidatePath reports ErrInvalidPath for an empty path or an empty segment.
func ValidatePath(path string) error {
	_, err := splitPath(path)
	return err
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Document:
		return map[string]any(m), m != nil
	}
	return nil, false
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Document:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
