package tech

import (
	"fmt"
	"time"

	"github.com/colonyops/techtrack/internal/core/validate"
	"github.com/hay-kot/criterio"
)

// Draft holds the user-supplied fields for a new item.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Notes       string
	Category    string
	Difficulty  Difficulty
	Deadline    Date
	Resources   []string
}

// Build turns the draft into an item with the given id, applying defaults
// and validating it against today's date. Every violated field is reported.
func (d Draft) Build(id ID, now time.Time) (Item, error) {
	it := Normalize(Item{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Notes:       d.Notes,
		Category:    d.Category,
		Difficulty:  d.Difficulty,
		Deadline:    d.Deadline,
		Resources:   d.Resources,
	}, now)
	if it.Status == "" {
		it.Status = StatusNotStarted
	}

	if err := ValidateNew(it, DateOf(now)); err != nil {
		return Item{}, err
	}
	return it, nil
}

// ValidateNew checks an item about to be written, including the rule that a
// deadline must not be earlier than today.
func ValidateNew(it Item, today Date) error {
	var errs criterio.FieldErrorsBuilder
	errs = appendItemErrors(errs, "", it)
	if err := DeadlineNotPast(it.Deadline, today); err != nil {
		errs = errs.Append("deadline", err)
	}
	return asValidationError(errs.ToError())
}

// ValidateCollection checks a full replacement collection. Deadlines are not
// re-checked against today; items may legitimately hold past deadlines.
func ValidateCollection(items []Item) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[ID]bool, len(items))

	for i, it := range items {
		prefix := fmt.Sprintf("technologies[%d].", i)
		errs = appendItemErrors(errs, prefix, it)

		if it.ID == "" {
			errs = errs.Append(prefix+"id", fmt.Errorf("id is required"))
			continue
		}
		if seen[it.ID] {
			errs = errs.Append(prefix+"id", fmt.Errorf("duplicate id %q", it.ID))
			continue
		}
		seen[it.ID] = true
	}

	return asValidationError(errs.ToError())
}

// DeadlineNotPast returns an error when d is set and earlier than today.
func DeadlineNotPast(d, today Date) error {
	if !d.IsZero() && d.Before(today) {
		return fmt.Errorf("deadline %s is in the past", d)
	}
	return nil
}

func appendItemErrors(errs criterio.FieldErrorsBuilder, prefix string, it Item) criterio.FieldErrorsBuilder {
	if err := validate.Title(it.Title); err != nil {
		errs = errs.Append(prefix+"title", err)
	}
	if err := validate.Description(it.Description); err != nil {
		errs = errs.Append(prefix+"description", err)
	}
	if !it.Status.IsValid() {
		errs = errs.Append(prefix+"status", fmt.Errorf("must be one of %s", joinStatuses()))
	}
	if !it.Difficulty.IsValid() {
		errs = errs.Append(prefix+"difficulty", fmt.Errorf("unknown difficulty %q", it.Difficulty))
	}
	for i, r := range it.Resources {
		if err := validate.ResourceURL(r); err != nil {
			errs = errs.Append(fmt.Sprintf("%sresources[%d]", prefix, i), err)
		}
	}

	return errs
}
