package kicadsexp

import (
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "flat list",
			input: "(at 1.5 -2)",
			want:  "(at 1.5 -2)",
		},
		{
			name:  "nested list",
			input: `(fp_line (start 0 0) (end 1 1) (layer "F.SilkS"))`,
			want:  "(fp_line (start 0 0) (end 1 1) (layer F.SilkS))",
		},
		{
			name:  "quoted string with spaces",
			input: `(descr "two words")`,
			want:  "(descr two words)",
		},
		{
			name:  "comment skipped",
			input: "# header\n(layer F.Cu)",
			want:  "(layer F.Cu)",
		},
		{
			name:    "unclosed list",
			input:   "(footprint (layer F.Cu)",
			wantErr: true,
		},
		{
			name:    "stray close",
			input:   ")",
			wantErr: true,
		},
		{
			name:    "unterminated string",
			input:   `(descr "oops)`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sexps, err := ParseString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseString(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString(%q) unexpected error: %v", tt.input, err)
			}
			if len(sexps) != 1 {
				t.Fatalf("ParseString(%q) returned %d expressions, want 1", tt.input, len(sexps))
			}
			if got := sexps[0].String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuotedStringSymbolValue(t *testing.T) {
	sexps, err := ParseString(`(pad "A 1" smd)`)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	list, ok := sexps[0].(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", sexps[0])
	}
	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}
	if got := list.Get(1).String(); got != "A 1" {
		t.Errorf("Get(1) = %q, want %q", got, "A 1")
	}
}

func TestMultipleTopLevel(t *testing.T) {
	sexps, err := ParseString("(a) (b c) d")
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	if len(sexps) != 3 {
		t.Fatalf("got %d expressions, want 3", len(sexps))
	}
	if !sexps[2].IsLeaf() {
		t.Errorf("third expression should be a leaf")
	}
}
