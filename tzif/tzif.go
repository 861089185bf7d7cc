// Package tzif reads and writes the binary structures of compiled
// zoneinfo (TZif) files.
//
// This package does a minimum of interpretation: it turns a byte
// buffer into raw records whose fields are plain numeric types,
// defended by a configurable Limits policy. Resolving the records
// into a usable timezone model is the job of package tzcook.
package tzif

import (
	"encoding/binary"
	"fmt"
)

// NOTE: All multi-octet integer values are stored in network octet
// order (high-order octet first, otherwise known as big-endian).
// Signed integer values are represented using two's complement.
var order = binary.BigEndian

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// reservedLen is the size of the reserved region between the magic
// number and the version octet. Its content is not validated.
const reservedLen = 15

// Version represents the version of a TZif file.
// In V1, time values are 32bit (four-octet) and in V2 upwards an
// additional data block with 64bit (eight-octet) time values follows
// the V1 block.
type Version byte

const (
	// V1 represents a version 1 file, containing only the 32bit
	// header and data block.
	V1 Version = 0x00
	// V2 represents a version 2 file, which appends a second header,
	// a 64bit data block and a footer to the version 1 data.
	V2 Version = 0x32
	// V3 represents a version 3 file. Same layout as V2, but the
	// footer TZ string may use extensions from RFC 8536 section 3.3.1.
	V3 Version = 0x33
	// V4 represents a version 4 file as specified in the tzfile(5)
	// man page. Same layout as V2.
	V4 Version = 0x34
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", byte(v))
	}
}

// Header is the fixed-layout header of a data block. On disk it is
// preceded by the magic number and the reserved region:
//
//	+---------------+------------------------+---+
//	|  magic    (4) |  [reserved]       (15) |ver|
//	+---------------+------------------------+---+
//	|  NumUTFlags        (4) |  NumStandardFlags (4) |
//	+------------------------+-----------------------+
//	|  NumLeapSeconds    (4) |  NumTransitions   (4) |
//	+------------------------+-----------------------+
//	|  NumLocalTimeTypes (4) |  NumAbbrChars     (4) |
//	+------------------------+-----------------------+
//
// All six counts are read before any variable-length section; the
// later sections are not self-delimited, their lengths are exactly
// these counts.
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version

	// NumUTFlags is the number of UT/local indicators in the data
	// block. (Equivalent to tzh_ttisgmtcnt in C.)
	NumUTFlags uint32

	// NumStandardFlags is the number of standard/wall indicators in
	// the data block. (Equivalent to tzh_ttisstdcnt in C.)
	NumStandardFlags uint32

	// NumLeapSeconds is the number of leap-second records in the data
	// block. (Equivalent to tzh_leapcnt in C.)
	NumLeapSeconds uint32

	// NumTransitions is the number of transition times in the data
	// block. (Equivalent to tzh_timecnt in C.)
	NumTransitions uint32

	// NumLocalTimeTypes is the number of local time type records in
	// the data block. (Equivalent to tzh_typecnt in C.)
	NumLocalTimeTypes uint32

	// NumAbbrChars is the total number of octets used by the time
	// zone abbreviation strings, including each trailing NUL.
	// (Equivalent to tzh_charcnt in C.)
	NumAbbrChars uint32
}

// TransitionRecord pairs a transition time with the index of the
// local time type that becomes active at that time.
//
// On disk the two halves live in separate arrays: all timestamps
// first, then all type indices, one octet each.
type TransitionRecord struct {
	// Timestamp is the UNIX time at which the rules for computing
	// local time change.
	Timestamp int32

	// TypeIndex is a zero-based index into the local time type
	// records. The format requires it to be < NumLocalTimeTypes,
	// but this package does not enforce that; see tzcook.
	TypeIndex uint8
}

// LocalTimeTypeRecord is a six-octet record describing one local
// time regime.
type LocalTimeTypeRecord struct {
	// Offset is the number of seconds to be added to UT in order to
	// determine local time. (Equivalent to tt_gmtoff in C.)
	Offset int32

	// IsDST reports whether local time should be considered Daylight
	// Saving Time. (Equivalent to tt_isdst in C.)
	IsDST bool

	// NameOffset is the position in the abbreviation character pool
	// at which the NUL-terminated designation of this type starts.
	// (Equivalent to tt_abbrind in C.)
	NameOffset uint8
}

// LeapSecondRecord is an eight-octet record describing one
// leap-second insertion.
type LeapSecondRecord struct {
	// Timestamp is the UNIX time at which the leap second occurs.
	Timestamp int32

	// Count is the total number of leap seconds in effect on or
	// after Timestamp.
	Count int32
}

// Data is the raw 32bit data block of a zoneinfo file: every record
// exactly as stored, byte-offset indirections unresolved. It is the
// input to tzcook.Cook.
type Data struct {
	Header Header

	// Transitions holds the zipped transition time and type index
	// arrays, in file order (ascending by convention, not re-sorted).
	Transitions []TransitionRecord

	// LocalTimeTypes holds one record per local time type.
	LocalTimeTypes []LocalTimeTypeRecord

	// AbbrChars is the flat pool of NUL-terminated abbreviation
	// strings. Designations may overlap if one is a suffix of another.
	AbbrChars []byte

	// LeapSeconds holds the leap-second records.
	LeapSeconds []LeapSecondRecord

	// StandardFlags and UTFlags classify the local time type at the
	// same index. They cover the same index space but occupy disjoint
	// byte ranges at the end of the data block, so a type's
	// classification is only fully known once both have been read.
	StandardFlags []bool
	UTFlags       []bool
}

// Transition64Record is the 64bit form of TransitionRecord, used by
// the second data block of version 2+ files.
type Transition64Record struct {
	Timestamp int64
	TypeIndex uint8
}

// LeapSecond64Record is the 64bit form of LeapSecondRecord.
type LeapSecond64Record struct {
	Timestamp int64
	Count     int32
}

// Block64 is the raw 64bit data block of a version 2+ file. It has
// the same section layout as Data with eight-octet timestamps.
type Block64 struct {
	Transitions    []Transition64Record
	LocalTimeTypes []LocalTimeTypeRecord
	AbbrChars      []byte
	LeapSeconds    []LeapSecond64Record
	StandardFlags  []bool
	UTFlags        []bool
}

// Footer is the footer of a version 2+ file: a TZ environment string
// enclosed in newlines, describing local time after the last
// recorded transition.
type Footer struct {
	TZString []byte
}

// File is a fully read zoneinfo file: the 32bit data plus, for
// version 2+ files, the 64bit data block and footer.
type File struct {
	Data Data

	// Has64 reports whether a second header and 64bit block were
	// present after the 32bit data.
	Has64    bool
	Header64 Header
	Block64  Block64
	Footer   Footer
}
