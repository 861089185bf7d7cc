package tzif

import "fmt"

// Limits caps the number of structures that Parse is willing to read
// from a file.
//
// Why have limits? The header specifies the number of structures to
// read as four-octet unsigned integers, so an invalid (or
// maliciously crafted) file could declare gigabytes of data. Parse
// verifies the header against its Limits before any count-sized
// allocation happens.
//
// A nil field means the corresponding count is unchecked.
type Limits struct {
	// MaxTransitions caps the number of transition records.
	MaxTransitions *uint32

	// MaxLocalTimeTypes caps the number of local time type records
	// and, since they share the same index space, the lengths of
	// both flag arrays.
	MaxLocalTimeTypes *uint32

	// MaxAbbrChars caps the size of the abbreviation character pool.
	MaxAbbrChars *uint32

	// MaxLeapSeconds caps the number of leap-second records.
	MaxLeapSeconds *uint32
}

// Cap returns a pointer to n, for building custom Limits values.
func Cap(n uint32) *uint32 { return &n }

// NoLimits returns a Limits value with no caps at all. Reading an
// invalid file may use lots of memory, so reserve this for trusted
// input.
func NoLimits() Limits {
	return Limits{}
}

// SensibleLimits returns caps that pose no danger of using lots of
// memory. The values are taken from the TZ_MAX_* constants in the
// reference distribution's tzfile.h.
func SensibleLimits() Limits {
	return Limits{
		MaxTransitions:    Cap(2000),
		MaxLocalTimeTypes: Cap(256),
		MaxAbbrChars:      Cap(50),
		MaxLeapSeconds:    Cap(50),
	}
}

// Field names a header count for limit violation reports.
type Field uint8

const (
	FieldTransitions Field = iota
	FieldLocalTimeTypes
	FieldLeapSeconds
	FieldUTFlags
	FieldStandardFlags
	FieldAbbrChars
)

func (f Field) String() string {
	switch f {
	case FieldTransitions:
		return "transitions"
	case FieldLocalTimeTypes:
		return "local time types"
	case FieldLeapSeconds:
		return "leap seconds"
	case FieldUTFlags:
		return "UT/local flags"
	case FieldStandardFlags:
		return "standard/wall flags"
	case FieldAbbrChars:
		return "abbreviation chars"
	default:
		return fmt.Sprintf("<undefined field (%d)>", uint8(f))
	}
}

// LimitError reports a header count that exceeds its configured cap.
type LimitError struct {
	// Field is the header count that overflowed.
	Field Field

	// Requested is the count declared by the header.
	Requested uint32

	// Max is the configured cap.
	Max uint32
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("too many %s (tried to read %d, limit was %d)", e.Field, e.Requested, e.Max)
}

// Verify checks the counts declared by h against l. The checks run
// in a fixed order (transitions, local time types, leap seconds,
// UT/local flags, standard/wall flags, abbreviation chars) so the
// first violated limit is reported, not the worst.
func (l Limits) Verify(h Header) error {
	check := func(f Field, requested uint32, max *uint32) error {
		if max != nil && requested > *max {
			return &LimitError{Field: f, Requested: requested, Max: *max}
		}
		return nil
	}

	if err := check(FieldTransitions, h.NumTransitions, l.MaxTransitions); err != nil {
		return err
	}
	if err := check(FieldLocalTimeTypes, h.NumLocalTimeTypes, l.MaxLocalTimeTypes); err != nil {
		return err
	}
	if err := check(FieldLeapSeconds, h.NumLeapSeconds, l.MaxLeapSeconds); err != nil {
		return err
	}
	if err := check(FieldUTFlags, h.NumUTFlags, l.MaxLocalTimeTypes); err != nil {
		return err
	}
	if err := check(FieldStandardFlags, h.NumStandardFlags, l.MaxLocalTimeTypes); err != nil {
		return err
	}
	return check(FieldAbbrChars, h.NumAbbrChars, l.MaxAbbrChars)
}
