package tzif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned, wrapped with section context, when the
// buffer is exhausted before a section's declared record count has
// been consumed.
var ErrTruncated = errors.New("unexpected end of data")

// MagicError is returned when the first four octets of a buffer are
// not the TZif magic number. Magic holds the octets actually read,
// which may be fewer than four for a very short buffer.
type MagicError struct {
	Magic []byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic number: % x", e.Magic)
}

// truncated maps the EOF conditions of partial reads to ErrTruncated
// and passes every other error through.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

// parser is a sequential, cursor-based reader over a byte buffer.
// Every read advances the shared position; there is no backtracking
// and no random access.
type parser struct {
	r *bytes.Reader
}

func newParser(buf []byte) *parser {
	return &parser{r: bytes.NewReader(buf)}
}

func (p *parser) readMagic() error {
	var magic [4]byte
	n, err := io.ReadFull(p.r, magic[:])
	if err != nil {
		return &MagicError{Magic: magic[:n]}
	}
	if magic != Magic {
		return &MagicError{Magic: magic[:]}
	}
	return nil
}

func (p *parser) skipReserved() error {
	var reserved [reservedLen]byte
	if _, err := io.ReadFull(p.r, reserved[:]); err != nil {
		return fmt.Errorf("reading reserved region: %w", truncated(err))
	}
	return nil
}

func (p *parser) readHeader() (Header, error) {
	var h Header
	if err := binary.Read(p.r, order, &h); err != nil {
		return h, fmt.Errorf("reading header: %w", truncated(err))
	}
	return h, nil
}

func (p *parser) readTransitions(count int) ([]TransitionRecord, error) {
	if count == 0 {
		return nil, nil
	}
	times := make([]int32, count)
	if err := binary.Read(p.r, order, &times); err != nil {
		return nil, fmt.Errorf("reading transition times: %w", truncated(err))
	}
	indices := make([]uint8, count)
	if err := binary.Read(p.r, order, &indices); err != nil {
		return nil, fmt.Errorf("reading transition types: %w", truncated(err))
	}
	records := make([]TransitionRecord, count)
	for i := range records {
		records[i] = TransitionRecord{Timestamp: times[i], TypeIndex: indices[i]}
	}
	return records, nil
}

func (p *parser) readLocalTimeTypes(count int) ([]LocalTimeTypeRecord, error) {
	if count == 0 {
		return nil, nil
	}
	records := make([]LocalTimeTypeRecord, count)
	for i := range records {
		if err := binary.Read(p.r, order, &records[i]); err != nil {
			return nil, fmt.Errorf("reading local time type record: %w", truncated(err))
		}
	}
	return records, nil
}

func (p *parser) readAbbrChars(count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	pool := make([]byte, count)
	if _, err := io.ReadFull(p.r, pool); err != nil {
		return nil, fmt.Errorf("reading abbreviation chars: %w", truncated(err))
	}
	return pool, nil
}

func (p *parser) readLeapSeconds(count int) ([]LeapSecondRecord, error) {
	if count == 0 {
		return nil, nil
	}
	records := make([]LeapSecondRecord, count)
	for i := range records {
		if err := binary.Read(p.r, order, &records[i]); err != nil {
			return nil, fmt.Errorf("reading leap second record: %w", truncated(err))
		}
	}
	return records, nil
}

func (p *parser) readFlags(section string, count int) ([]bool, error) {
	if count == 0 {
		return nil, nil
	}
	flags := make([]bool, count)
	if err := binary.Read(p.r, order, &flags); err != nil {
		return nil, fmt.Errorf("reading %s: %w", section, truncated(err))
	}
	return flags, nil
}

// Parse reads the 32bit portion of a zoneinfo file from buf: the
// magic number, the reserved region, the header and the six
// variable-length sections whose lengths the header declares.
//
// The header counts are verified against limits before any
// count-sized allocation is made. Parsing is strictly sequential and
// fails on the first violation; no partial result is returned.
//
// A successful parse consumes exactly as many bytes as the header
// dictates. Trailing bytes, such as the 64bit data block of a
// version 2+ file, remain unconsumed; use DecodeFile to read them.
func Parse(buf []byte, limits Limits) (Data, error) {
	p := newParser(buf)
	return p.parseData(limits)
}

func (p *parser) parseData(limits Limits) (Data, error) {
	var d Data

	if err := p.readMagic(); err != nil {
		return d, err
	}
	if err := p.skipReserved(); err != nil {
		return d, err
	}
	h, err := p.readHeader()
	if err != nil {
		return d, err
	}
	if err := limits.Verify(h); err != nil {
		return d, err
	}

	d.Header = h
	if d.Transitions, err = p.readTransitions(int(h.NumTransitions)); err != nil {
		return d, err
	}
	if d.LocalTimeTypes, err = p.readLocalTimeTypes(int(h.NumLocalTimeTypes)); err != nil {
		return d, err
	}
	if d.AbbrChars, err = p.readAbbrChars(int(h.NumAbbrChars)); err != nil {
		return d, err
	}
	if d.LeapSeconds, err = p.readLeapSeconds(int(h.NumLeapSeconds)); err != nil {
		return d, err
	}
	if d.StandardFlags, err = p.readFlags("standard/wall flags", int(h.NumStandardFlags)); err != nil {
		return d, err
	}
	if d.UTFlags, err = p.readFlags("UT/local flags", int(h.NumUTFlags)); err != nil {
		return d, err
	}
	return d, nil
}

func (p *parser) readTransitions64(count int) ([]Transition64Record, error) {
	if count == 0 {
		return nil, nil
	}
	times := make([]int64, count)
	if err := binary.Read(p.r, order, &times); err != nil {
		return nil, fmt.Errorf("reading 64bit transition times: %w", truncated(err))
	}
	indices := make([]uint8, count)
	if err := binary.Read(p.r, order, &indices); err != nil {
		return nil, fmt.Errorf("reading 64bit transition types: %w", truncated(err))
	}
	records := make([]Transition64Record, count)
	for i := range records {
		records[i] = Transition64Record{Timestamp: times[i], TypeIndex: indices[i]}
	}
	return records, nil
}

func (p *parser) readLeapSeconds64(count int) ([]LeapSecond64Record, error) {
	if count == 0 {
		return nil, nil
	}
	records := make([]LeapSecond64Record, count)
	for i := range records {
		if err := binary.Read(p.r, order, &records[i]); err != nil {
			return nil, fmt.Errorf("reading 64bit leap second record: %w", truncated(err))
		}
	}
	return records, nil
}

func (p *parser) parseBlock64(h Header) (Block64, error) {
	var (
		b   Block64
		err error
	)
	if b.Transitions, err = p.readTransitions64(int(h.NumTransitions)); err != nil {
		return b, err
	}
	if b.LocalTimeTypes, err = p.readLocalTimeTypes(int(h.NumLocalTimeTypes)); err != nil {
		return b, err
	}
	if b.AbbrChars, err = p.readAbbrChars(int(h.NumAbbrChars)); err != nil {
		return b, err
	}
	if b.LeapSeconds, err = p.readLeapSeconds64(int(h.NumLeapSeconds)); err != nil {
		return b, err
	}
	if b.StandardFlags, err = p.readFlags("standard/wall flags", int(h.NumStandardFlags)); err != nil {
		return b, err
	}
	if b.UTFlags, err = p.readFlags("UT/local flags", int(h.NumUTFlags)); err != nil {
		return b, err
	}
	return b, nil
}

var asciiNewLine = byte(0x0A)

func (p *parser) readFooter() (Footer, error) {
	var f Footer
	nl, err := p.r.ReadByte()
	if err != nil {
		return f, fmt.Errorf("reading footer: %w", truncated(err))
	}
	if nl != asciiNewLine {
		return f, fmt.Errorf("reading footer: expected newline, got %#02x", nl)
	}
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			return f, fmt.Errorf("reading TZ string: %w", truncated(err))
		}
		if c == asciiNewLine {
			return f, nil
		}
		f.TZString = append(f.TZString, c)
	}
}

// DecodeFile reads a whole zoneinfo file from buf. It parses the
// 32bit portion exactly like Parse and then, if more data follows,
// the second header, the 64bit data block and the footer of a
// version 2+ file. Both headers are verified against limits.
func DecodeFile(buf []byte, limits Limits) (File, error) {
	p := newParser(buf)

	var f File
	d, err := p.parseData(limits)
	if err != nil {
		return f, err
	}
	f.Data = d
	if p.r.Len() == 0 {
		return f, nil
	}

	if err := p.readMagic(); err != nil {
		return f, fmt.Errorf("reading 64bit block: %w", err)
	}
	if err := p.skipReserved(); err != nil {
		return f, err
	}
	if f.Header64, err = p.readHeader(); err != nil {
		return f, err
	}
	if err := limits.Verify(f.Header64); err != nil {
		return f, err
	}
	if f.Block64, err = p.parseBlock64(f.Header64); err != nil {
		return f, err
	}
	if f.Footer, err = p.readFooter(); err != nil {
		return f, err
	}
	f.Has64 = true
	return f, nil
}
