// Package tzcook interprets the raw records of a compiled zoneinfo
// file into a resolved, self-contained timezone model.
//
// Cooking resolves the byte-offset indirections of the raw stage:
// abbreviation pool offsets become strings, the two flag arrays are
// merged into a single classification per local time type, and each
// transition is attached to its resolved type. The raw tzif.Data is
// transient; nothing in the returned Model refers back to it.
package tzcook

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tzgo/zoneinfo/tzif"
)

// Kind classifies how the transition times associated with a local
// time type were specified.
type Kind uint8

const (
	// Wall means transition times are wall-clock time.
	Wall Kind = iota
	// Standard means transition times are standard time.
	Standard
	// UTC means transition times are universal time.
	UTC
)

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Standard:
		return "standard"
	case UTC:
		return "UTC"
	default:
		return fmt.Sprintf("<undefined kind (%d)>", uint8(k))
	}
}

// LocalTimeType describes the local time in a particular timezone
// during a period in which the clocks do not change.
type LocalTimeType struct {
	// Name is the time zone abbreviation, such as "GMT" or "CET".
	Name string

	// Offset is the number of seconds to be added to universal time.
	Offset int64

	// IsDST reports whether this regime is Daylight Saving Time.
	IsDST bool

	// Kind is the classification derived from the file's two flag
	// arrays.
	Kind Kind
}

// Transition is a point in time at which the active local time type
// changes. Many transitions may share the same *LocalTimeType; the
// pointers alias entries of Model.Types rather than copies.
type Transition struct {
	// Timestamp is the UNIX time at which the transition occurs.
	Timestamp int64

	// Type is the local time type in effect from Timestamp on.
	Type *LocalTimeType
}

// LeapSecond records an insertion of leap seconds at a given instant.
type LeapSecond struct {
	// Timestamp is the UNIX time at which the leap second occurs.
	Timestamp int64

	// Count is the total number of leap seconds in effect on or
	// after Timestamp.
	Count int32
}

// Model is the cooked contents of a zoneinfo file.
type Model struct {
	// Base is the regime in effect for all instants before the first
	// entry of Transitions. It is the type of the file's first
	// transition, whose timestamp is discarded, or the catalog's
	// first type if the file records no transitions at all.
	Base *LocalTimeType

	// Transitions is the forward timeline in file order. The file's
	// first transition is not included; it became Base.
	Transitions []Transition

	// LeapSeconds are the file's leap-second records.
	LeapSeconds []LeapSecond

	// Types is the full local time type catalog in file index order.
	// Base and all Transition.Type pointers alias its entries.
	Types []*LocalTimeType
}

// TypeIndexPolicy decides what Cook does with a transition whose type
// index is outside the local time type catalog. Known zoneinfo
// readers disagree here (crash, silent zero, explicit error), so the
// behavior is an explicit policy rather than a silent default.
type TypeIndexPolicy uint8

const (
	// TypeIndexStrict fails the cook with a *TypeIndexError.
	TypeIndexStrict TypeIndexPolicy = iota

	// TypeIndexClamp resolves the transition against catalog index 0
	// instead. Intended for known-sloppy archives; it rewires the
	// transition to an arbitrary regime.
	TypeIndexClamp
)

// ErrNoLocalTimeTypes is returned when a file contains no local time
// types at all. Without at least one, there is nothing to serve as
// the base regime.
var ErrNoLocalTimeTypes = errors.New("no local time types")

// TextError reports an abbreviation that is not valid UTF-8.
type TextError struct {
	// Bytes is the raw name as extracted from the abbreviation pool.
	Bytes []byte
}

func (e *TextError) Error() string {
	return fmt.Sprintf("abbreviation is not valid UTF-8: % x", e.Bytes)
}

// TypeIndexError reports a transition referencing a local time type
// that does not exist.
type TypeIndexError struct {
	// Index is the type index stored in the transition record.
	Index uint8

	// NumTypes is the size of the local time type catalog.
	NumTypes int
}

func (e *TypeIndexError) Error() string {
	return fmt.Sprintf("transition type index %d out of range (%d local time types)", e.Index, e.NumTypes)
}

// extractName isolates the NUL-terminated designation starting at off
// within the abbreviation pool. If the pool ends before a NUL is
// found, the name is simply the remaining bytes.
func extractName(pool []byte, off uint8) []byte {
	if int(off) >= len(pool) {
		return nil
	}
	name := pool[off:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return name
}

// flagAt reads the indicator for type index i, defaulting to false
// when the array is shorter than the type catalog. Files routinely
// carry zero-length flag arrays, so a missing entry is tolerated
// rather than treated as a structural violation.
func flagAt(flags []bool, i int) bool {
	if i >= len(flags) {
		return false
	}
	return flags[i]
}

// classify combines the two indicators of a local time type into its
// Kind. The flag arrays come completely separated in the file, one
// after the other, so this can only run after the whole file has been
// read. UT takes precedence over standard; neither means wall time.
func classify(standard, ut bool) Kind {
	switch {
	case ut:
		return UTC
	case standard:
		return Standard
	default:
		return Wall
	}
}

// Cook interprets a raw record set under TypeIndexStrict.
func Cook(d tzif.Data) (Model, error) {
	return CookWithPolicy(d, TypeIndexStrict)
}

// CookWithPolicy interprets a raw record set into a Model.
//
// The local time type catalog is built first: names are extracted
// from the abbreviation pool and validated as UTF-8, classifications
// are merged from the flag arrays. Each transition is then resolved
// against the catalog, sharing one *LocalTimeType per index. The
// file's first transition, if any, becomes the base regime and its
// timestamp is discarded: the base is modeled as having always been
// in effect, so instants earlier than the first recorded transition
// resolve to a well-defined regime.
//
// Any failure is terminal; no partial model is returned.
func CookWithPolicy(d tzif.Data, policy TypeIndexPolicy) (Model, error) {
	types := make([]*LocalTimeType, len(d.LocalTimeTypes))
	for i, ltt := range d.LocalTimeTypes {
		name := extractName(d.AbbrChars, ltt.NameOffset)
		if !utf8.Valid(name) {
			return Model{}, &TextError{Bytes: name}
		}
		types[i] = &LocalTimeType{
			Name:   string(name),
			Offset: int64(ltt.Offset),
			IsDST:  ltt.IsDST,
			Kind:   classify(flagAt(d.StandardFlags, i), flagAt(d.UTFlags, i)),
		}
	}

	transitions := make([]Transition, 0, len(d.Transitions))
	for _, t := range d.Transitions {
		i := int(t.TypeIndex)
		if i >= len(types) {
			if policy == TypeIndexClamp && len(types) > 0 {
				i = 0
			} else {
				return Model{}, &TypeIndexError{Index: t.TypeIndex, NumTypes: len(types)}
			}
		}
		transitions = append(transitions, Transition{
			Timestamp: int64(t.Timestamp),
			Type:      types[i],
		})
	}

	var leaps []LeapSecond
	for _, ls := range d.LeapSeconds {
		leaps = append(leaps, LeapSecond{
			Timestamp: int64(ls.Timestamp),
			Count:     ls.Count,
		})
	}

	if len(transitions) == 0 {
		if len(types) == 0 {
			return Model{}, ErrNoLocalTimeTypes
		}
		return Model{
			Base:        types[0],
			LeapSeconds: leaps,
			Types:       types,
		}, nil
	}

	return Model{
		Base:        transitions[0].Type,
		Transitions: transitions[1:],
		LeapSeconds: leaps,
		Types:       types,
	}, nil
}

// Decode parses and cooks a zoneinfo buffer under the sensible limit
// profile.
func Decode(buf []byte) (Model, error) {
	d, err := tzif.Parse(buf, tzif.SensibleLimits())
	if err != nil {
		return Model{}, err
	}
	return Cook(d)
}
