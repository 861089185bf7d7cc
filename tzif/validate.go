package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural consistency rules that Parse
// deliberately does not enforce: count agreement between header and
// sections, flag array lengths, NUL termination of the abbreviation
// pool and the ranges of the stored indices. It returns all
// violations joined into one error, or nil.
func Validate(d Data) error {
	var errs []error

	h := d.Header
	if len(d.Transitions) != int(h.NumTransitions) {
		errs = append(errs, fmt.Errorf("inconsistent transitions: header = %d, data = %d", h.NumTransitions, len(d.Transitions)))
	}
	if len(d.LocalTimeTypes) != int(h.NumLocalTimeTypes) {
		errs = append(errs, fmt.Errorf("inconsistent local time types: header = %d, data = %d", h.NumLocalTimeTypes, len(d.LocalTimeTypes)))
	}
	if len(d.LeapSeconds) != int(h.NumLeapSeconds) {
		errs = append(errs, fmt.Errorf("inconsistent leap seconds: header = %d, data = %d", h.NumLeapSeconds, len(d.LeapSeconds)))
	}
	if len(d.AbbrChars) != int(h.NumAbbrChars) {
		errs = append(errs, fmt.Errorf("inconsistent abbreviation chars: header = %d, data = %d", h.NumAbbrChars, len(d.AbbrChars)))
	}
	if len(d.StandardFlags) != int(h.NumStandardFlags) {
		errs = append(errs, fmt.Errorf("inconsistent standard/wall flags: header = %d, data = %d", h.NumStandardFlags, len(d.StandardFlags)))
	}
	if len(d.UTFlags) != int(h.NumUTFlags) {
		errs = append(errs, fmt.Errorf("inconsistent UT/local flags: header = %d, data = %d", h.NumUTFlags, len(d.UTFlags)))
	}

	if h.NumStandardFlags != 0 && h.NumStandardFlags != h.NumLocalTimeTypes {
		errs = append(errs, fmt.Errorf("invalid standard/wall flag count (%d): must be 0 or equal to the local time type count (%d)", h.NumStandardFlags, h.NumLocalTimeTypes))
	}
	if h.NumUTFlags != 0 && h.NumUTFlags != h.NumLocalTimeTypes {
		errs = append(errs, fmt.Errorf("invalid UT/local flag count (%d): must be 0 or equal to the local time type count (%d)", h.NumUTFlags, h.NumLocalTimeTypes))
	}

	if h.NumLocalTimeTypes == 0 {
		errs = append(errs, errors.New("invalid local time type count: must not be zero"))
	}
	if h.NumAbbrChars == 0 {
		errs = append(errs, errors.New("invalid abbreviation char count: must not be zero"))
	} else if len(d.AbbrChars) > 0 && d.AbbrChars[len(d.AbbrChars)-1] != 0 {
		errs = append(errs, errors.New("invalid abbreviation chars: missing NUL terminator"))
	}

	for i, t := range d.Transitions {
		if int(t.TypeIndex) >= len(d.LocalTimeTypes) {
			errs = append(errs, fmt.Errorf("transition %d: type index %d out of range (%d local time types)", i, t.TypeIndex, len(d.LocalTimeTypes)))
		}
	}
	for i, ltt := range d.LocalTimeTypes {
		if int(ltt.NameOffset) >= len(d.AbbrChars) {
			errs = append(errs, fmt.Errorf("local time type %d: name offset %d out of range (%d abbreviation chars)", i, ltt.NameOffset, len(d.AbbrChars)))
		}
	}

	return errors.Join(errs...)
}
