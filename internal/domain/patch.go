package domain

// FieldDiff accumulates the field-level outcome of comparing a sparse update
// payload against stored state. Each eligible field is evaluated exactly
// once: a nil patch pointer is "don't touch", an equal value is recorded as
// not-different, a differing value joins the changeset.
//
// Equality is exact value equality: no string normalization, no whitespace
// trimming, booleans and numbers compare by value.
type FieldDiff struct {
	provided int
	changed  []string
	same     []string
}

// DiffValue evaluates a patch field against a required stored field.
func DiffValue[T comparable](d *FieldDiff, field string, patch *T, stored T) {
	if patch == nil {
		return
	}
	d.provided++
	if *patch == stored {
		d.same = append(d.same, field)
		return
	}
	d.changed = append(d.changed, field)
}

// DiffOptional evaluates a patch field against a nullable stored field.
// A value supplied for a field that is currently null always differs.
func DiffOptional[T comparable](d *FieldDiff, field string, patch *T, stored *T) {
	if patch == nil {
		return
	}
	d.provided++
	if stored != nil && *patch == *stored {
		d.same = append(d.same, field)
		return
	}
	d.changed = append(d.changed, field)
}

// MarkProvided records a non-comparable patch slot (a relation id list with
// replace-whole-set semantics) as supplied and changed.
func (d *FieldDiff) MarkProvided(field string) {
	d.provided++
	d.changed = append(d.changed, field)
}

// Changed reports whether the named field is part of the changeset.
func (d *FieldDiff) Changed(field string) bool {
	for _, f := range d.changed {
		if f == field {
			return true
		}
	}
	return false
}

// Empty reports whether no field made it into the changeset.
func (d *FieldDiff) Empty() bool {
	return len(d.changed) == 0
}

// Err validates the accumulated diff. If nothing was supplied at all it
// returns ErrNoUpdatesRequested. If any supplied field equals its stored
// value it returns a FieldsNotDifferentError listing every offending field,
// even when other fields genuinely differ.
func (d *FieldDiff) Err() error {
	if d.provided == 0 {
		return ErrNoUpdatesRequested
	}
	if len(d.same) > 0 {
		return &FieldsNotDifferentError{Fields: d.same}
	}
	return nil
}
