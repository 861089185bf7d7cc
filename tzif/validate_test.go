package tzif

import (
	"strings"
	"testing"
)

func validData() Data {
	return Data{
		Header: Header{
			NumUTFlags:        2,
			NumStandardFlags:  2,
			NumTransitions:    1,
			NumLocalTimeTypes: 2,
			NumAbbrChars:      8,
		},
		Transitions: []TransitionRecord{
			{Timestamp: 100, TypeIndex: 1},
		},
		LocalTimeTypes: []LocalTimeTypeRecord{
			{Offset: 3600, NameOffset: 0},
			{Offset: 7200, IsDST: true, NameOffset: 4},
		},
		AbbrChars:     []byte("CET\x00CES\x00"),
		StandardFlags: []bool{true, true},
		UTFlags:       []bool{false, false},
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(validData()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Data)
		want   string
	}{
		{
			name:   "transition count mismatch",
			mutate: func(d *Data) { d.Header.NumTransitions = 5 },
			want:   "inconsistent transitions",
		},
		{
			name:   "flag count neither zero nor type count",
			mutate: func(d *Data) { d.StandardFlags = d.StandardFlags[:1]; d.Header.NumStandardFlags = 1 },
			want:   "invalid standard/wall flag count",
		},
		{
			name: "zero local time types",
			mutate: func(d *Data) {
				d.LocalTimeTypes = nil
				d.Header.NumLocalTimeTypes = 0
			},
			want: "must not be zero",
		},
		{
			name:   "missing terminator",
			mutate: func(d *Data) { d.AbbrChars = []byte("CET\x00CESX") },
			want:   "missing NUL terminator",
		},
		{
			name:   "dangling type index",
			mutate: func(d *Data) { d.Transitions[0].TypeIndex = 9 },
			want:   "type index 9 out of range",
		},
		{
			name:   "dangling name offset",
			mutate: func(d *Data) { d.LocalTimeTypes[1].NameOffset = 200 },
			want:   "name offset 200 out of range",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validData()
			tc.mutate(&d)
			err := Validate(d)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestValidate_JoinsAllViolations(t *testing.T) {
	d := validData()
	d.Header.NumTransitions = 5
	d.Transitions[0].TypeIndex = 9
	err := Validate(d)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"inconsistent transitions", "type index 9 out of range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, want it to mention %q", err, want)
		}
	}
}
