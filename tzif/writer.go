package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Write writes the magic number, an all-zero reserved region and the
// header fields to w.
func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	var reserved [reservedLen]byte
	if _, err := w.Write(reserved[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

func (r LocalTimeTypeRecord) write(w io.Writer) error {
	return binary.Write(w, order, r)
}

// Encode writes the 32bit portion of a zoneinfo file to w: header
// followed by the six data sections, with the split transition and
// flag arrays laid out the way Parse expects them.
func (d Data) Encode(w io.Writer) error {
	if err := d.Header.Write(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	times := make([]int32, len(d.Transitions))
	indices := make([]uint8, len(d.Transitions))
	for i, t := range d.Transitions {
		times[i] = t.Timestamp
		indices[i] = t.TypeIndex
	}
	if err := binary.Write(w, order, times); err != nil {
		return fmt.Errorf("write transition times: %w", err)
	}
	if err := binary.Write(w, order, indices); err != nil {
		return fmt.Errorf("write transition types: %w", err)
	}
	for _, r := range d.LocalTimeTypes {
		if err := r.write(w); err != nil {
			return fmt.Errorf("write local time type record: %w", err)
		}
	}
	if _, err := w.Write(d.AbbrChars); err != nil {
		return fmt.Errorf("write abbreviation chars: %w", err)
	}
	for _, r := range d.LeapSeconds {
		if err := binary.Write(w, order, r); err != nil {
			return fmt.Errorf("write leap second record: %w", err)
		}
	}
	if err := binary.Write(w, order, d.StandardFlags); err != nil {
		return fmt.Errorf("write standard/wall flags: %w", err)
	}
	if err := binary.Write(w, order, d.UTFlags); err != nil {
		return fmt.Errorf("write UT/local flags: %w", err)
	}
	return nil
}

// Encode writes the 64bit data block sections to w, without a header.
func (b Block64) Encode(w io.Writer) error {
	times := make([]int64, len(b.Transitions))
	indices := make([]uint8, len(b.Transitions))
	for i, t := range b.Transitions {
		times[i] = t.Timestamp
		indices[i] = t.TypeIndex
	}
	if err := binary.Write(w, order, times); err != nil {
		return fmt.Errorf("write 64bit transition times: %w", err)
	}
	if err := binary.Write(w, order, indices); err != nil {
		return fmt.Errorf("write 64bit transition types: %w", err)
	}
	for _, r := range b.LocalTimeTypes {
		if err := r.write(w); err != nil {
			return fmt.Errorf("write local time type record: %w", err)
		}
	}
	if _, err := w.Write(b.AbbrChars); err != nil {
		return fmt.Errorf("write abbreviation chars: %w", err)
	}
	for _, r := range b.LeapSeconds {
		if err := binary.Write(w, order, r); err != nil {
			return fmt.Errorf("write 64bit leap second record: %w", err)
		}
	}
	if err := binary.Write(w, order, b.StandardFlags); err != nil {
		return fmt.Errorf("write standard/wall flags: %w", err)
	}
	if err := binary.Write(w, order, b.UTFlags); err != nil {
		return fmt.Errorf("write UT/local flags: %w", err)
	}
	return nil
}

// Write writes the footer to w, enclosing the TZ string in newlines.
func (f Footer) Write(w io.Writer) error {
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return err
	}
	if _, err := w.Write(f.TZString); err != nil {
		return err
	}
	_, err := w.Write([]byte{asciiNewLine})
	return err
}

// Encode writes the whole file to w. The 64bit header, block and
// footer are only written when Has64 is set.
func (f File) Encode(w io.Writer) error {
	if err := f.Data.Encode(w); err != nil {
		return err
	}
	if !f.Has64 {
		return nil
	}
	if err := f.Header64.Write(w); err != nil {
		return fmt.Errorf("write 64bit header: %w", err)
	}
	if err := f.Block64.Encode(w); err != nil {
		return err
	}
	if err := f.Footer.Write(w); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}
