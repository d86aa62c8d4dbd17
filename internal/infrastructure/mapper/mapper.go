// Package mapper translates between storage documents and domain
// entities. ToPersistence is sparse: only fields present on the input
// entity appear in the returned document, so a partial update never
// clobbers fields it did not mention. ToDomain tolerates an absent
// document and fills nested value objects with defaults.
package mapper

import (
	"time"

	"github.com/google/uuid"
)

// Document is the schema-flexible shape stored in a collection row.
type Document = map[string]any

// Record is one stored row: the generated key, the document body and the
// store-managed timestamps.
type Record struct {
	ID        uuid.UUID
	Doc       Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mapper converts between one entity type and its persisted document.
type Mapper[T any] interface {
	// ToDomain maps a stored record to a domain entity. A nil document
	// yields a default-valued entity, never a panic; callers check for
	// "not found" before mapping.
	ToDomain(rec Record) *T

	// ToPersistence maps an entity (possibly partial) to a sparse document.
	ToPersistence(e *T) Document

	// NewDocument maps an entity to a full insert document, applying the
	// write-side defaults the sparse mapping leaves out.
	NewDocument(e *T) Document
}

// Document read helpers. Values arrive either as the Go values the write
// path produced or as their JSON-decoded forms after a storage round-trip
// (numbers become float64), so the numeric helpers accept both.

func str(doc Document, key string) string {
	if doc == nil {
		return ""
	}
	s, _ := doc[key].(string)
	return s
}

func num(doc Document, key string) float64 {
	if doc == nil {
		return 0
	}
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func integer(doc Document, key string) int {
	return int(num(doc, key))
}

func boolean(doc Document, key string) bool {
	if doc == nil {
		return false
	}
	b, _ := doc[key].(bool)
	return b
}

func sub(doc Document, key string) Document {
	if doc == nil {
		return nil
	}
	d, _ := doc[key].(Document)
	return d
}

func list(doc Document, key string) []any {
	if doc == nil {
		return nil
	}
	l, _ := doc[key].([]any)
	return l
}

func strList(doc Document, key string) []string {
	raw := list(doc, key)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func docList(doc Document, key string) []Document {
	raw := list(doc, key)
	if raw == nil {
		return nil
	}
	out := make([]Document, 0, len(raw))
	for _, v := range raw {
		if d, ok := v.(Document); ok {
			out = append(out, d)
		}
	}
	return out
}

func strsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func docsToAny(in []Document) []any {
	out := make([]any, len(in))
	for i, d := range in {
		out[i] = d
	}
	return out
}
