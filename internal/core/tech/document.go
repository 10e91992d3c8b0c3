package tech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hay-kot/criterio"
)

// DocumentVersion is written into every export.
const DocumentVersion = "1.0"

// Document is the import/export envelope for a collection.
type Document struct {
	ExportedAt        time.Time `json:"exportedAt"`
	Version           string    `json:"version"`
	TechnologiesCount int       `json:"technologiesCount"`
	Technologies      []Item    `json:"technologies"`
}

// NewDocument snapshots items into an export document with all optional
// fields defaulted.
func NewDocument(items []Item, now time.Time) Document {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Normalize(it, now)
	}
	return Document{
		ExportedAt:        now,
		Version:           DocumentVersion,
		TechnologiesCount: len(out),
		Technologies:      out,
	}
}

// ExportFilename returns the conventional file name for an export taken at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("technology-tracker-export-%s.json", t.Format(dateLayout))
}

// requiredFields must be present as non-empty strings on every imported item.
var requiredFields = []string{"title", "description", "status"}

// ParseDocument decodes an import document and returns its items with
// optional fields defaulted. The top-level shape must be an object holding a
// "technologies" array; a wrong shape returns ErrInvalidDocument. Items
// missing a required field or carrying an invalid status are reported
// together as a *ValidationError.
func ParseDocument(data []byte, now time.Time) ([]Item, error) {
	var envelope struct {
		Technologies json.RawMessage `json:"technologies"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	raw := bytes.TrimSpace(envelope.Technologies)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: missing technologies array", ErrInvalidDocument)
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("%w: technologies must be an array", ErrInvalidDocument)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var errs criterio.FieldErrorsBuilder
	items := make([]Item, 0, len(records))

	for i, rec := range records {
		field := fmt.Sprintf("technologies[%d]", i)

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec, &fields); err != nil || fields == nil {
			errs = errs.Append(field, fmt.Errorf("item #%d must be an object", i+1))
			continue
		}

		ok := true
		for _, name := range requiredFields {
			if !isNonEmptyString(fields[name]) {
				errs = errs.Append(field+"."+name, fmt.Errorf("item #%d: %s is required", i+1, name))
				ok = false
			}
		}
		if notes, present := fields["notes"]; present && !isStringOrNull(notes) {
			errs = errs.Append(field+".notes", fmt.Errorf("item #%d: notes must be a string", i+1))
			ok = false
		}
		if !ok {
			continue
		}

		var it Item
		if err := json.Unmarshal(rec, &it); err != nil {
			errs = errs.Append(field, fmt.Errorf("item #%d: %w", i+1, err))
			continue
		}
		if !it.Status.IsValid() {
			errs = errs.Append(field+".status", fmt.Errorf("item #%d: invalid status %q", i+1, it.Status))
			continue
		}

		items = append(items, Normalize(it, now))
	}

	if err := asValidationError(errs.ToError()); err != nil {
		return nil, err
	}
	return items, nil
}

func isNonEmptyString(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s != ""
}

func isStringOrNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return bytes.Equal(raw, []byte("null")) || (len(raw) > 0 && raw[0] == '"')
}
