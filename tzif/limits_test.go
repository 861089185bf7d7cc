package tzif

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLimits_Verify(t *testing.T) {
	limits := Limits{
		MaxTransitions:    Cap(10),
		MaxLocalTimeTypes: Cap(4),
		MaxAbbrChars:      Cap(20),
		MaxLeapSeconds:    Cap(2),
	}
	// Every count sits exactly at its cap. The flag arrays share the
	// local time type cap.
	atCap := Header{
		NumUTFlags:        4,
		NumStandardFlags:  4,
		NumLeapSeconds:    2,
		NumTransitions:    10,
		NumLocalTimeTypes: 4,
		NumAbbrChars:      20,
	}
	if err := limits.Verify(atCap); err != nil {
		t.Fatalf("Verify(at cap) = %v, want nil", err)
	}

	tests := []struct {
		name string
		bump func(*Header)
		want *LimitError
	}{
		{
			name: "transitions",
			bump: func(h *Header) { h.NumTransitions = 11 },
			want: &LimitError{Field: FieldTransitions, Requested: 11, Max: 10},
		},
		{
			name: "local time types",
			bump: func(h *Header) { h.NumLocalTimeTypes = 5 },
			want: &LimitError{Field: FieldLocalTimeTypes, Requested: 5, Max: 4},
		},
		{
			name: "leap seconds",
			bump: func(h *Header) { h.NumLeapSeconds = 3 },
			want: &LimitError{Field: FieldLeapSeconds, Requested: 3, Max: 2},
		},
		{
			name: "UT/local flags",
			bump: func(h *Header) { h.NumUTFlags = 5 },
			want: &LimitError{Field: FieldUTFlags, Requested: 5, Max: 4},
		},
		{
			name: "standard/wall flags",
			bump: func(h *Header) { h.NumStandardFlags = 5 },
			want: &LimitError{Field: FieldStandardFlags, Requested: 5, Max: 4},
		},
		{
			name: "abbreviation chars",
			bump: func(h *Header) { h.NumAbbrChars = 21 },
			want: &LimitError{Field: FieldAbbrChars, Requested: 21, Max: 20},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := atCap
			tc.bump(&h)
			err := limits.Verify(h)
			var limitErr *LimitError
			if !errors.As(err, &limitErr) {
				t.Fatalf("Verify() error = %v, want *LimitError", err)
			}
			if diff := cmp.Diff(limitErr, tc.want); diff != "" {
				t.Errorf("LimitError mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestLimits_VerifyOrder(t *testing.T) {
	limits := SensibleLimits()
	h := Header{
		NumUTFlags:        300,
		NumStandardFlags:  300,
		NumLeapSeconds:    60,
		NumTransitions:    3000,
		NumLocalTimeTypes: 300,
		NumAbbrChars:      60,
	}
	// Every count is over its cap. Repairing the reported field one
	// at a time walks the fixed check order; after the last repair the
	// header verifies.
	repairs := []struct {
		field Field
		fix   func(*Header)
	}{
		{FieldTransitions, func(h *Header) { h.NumTransitions = 2000 }},
		{FieldLocalTimeTypes, func(h *Header) { h.NumLocalTimeTypes = 256 }},
		{FieldLeapSeconds, func(h *Header) { h.NumLeapSeconds = 50 }},
		{FieldUTFlags, func(h *Header) { h.NumUTFlags = 256 }},
		{FieldStandardFlags, func(h *Header) { h.NumStandardFlags = 256 }},
		{FieldAbbrChars, func(h *Header) { h.NumAbbrChars = 50 }},
	}
	for _, r := range repairs {
		err := limits.Verify(h)
		var limitErr *LimitError
		if !errors.As(err, &limitErr) {
			t.Fatalf("Verify() error = %v, want *LimitError", err)
		}
		if limitErr.Field != r.field {
			t.Fatalf("Verify() reported %v, want %v", limitErr.Field, r.field)
		}
		r.fix(&h)
	}
	if err := limits.Verify(h); err != nil {
		t.Errorf("Verify(repaired header) = %v, want nil", err)
	}
}

func TestNoLimits(t *testing.T) {
	h := Header{
		NumUTFlags:        1 << 30,
		NumStandardFlags:  1 << 30,
		NumLeapSeconds:    1 << 30,
		NumTransitions:    1 << 30,
		NumLocalTimeTypes: 1 << 30,
		NumAbbrChars:      1 << 30,
	}
	if err := NoLimits().Verify(h); err != nil {
		t.Errorf("Verify() = %v, want nil", err)
	}
}
