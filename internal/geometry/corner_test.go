package geometry

import (
	"errors"
	"testing"
)

func TestParseCorner(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Corner
		err  bool
	}{
		"canonical":      {in: "START_END", want: StartEnd},
		"lower case":     {in: "end_start", want: EndStart},
		"padded":         {in: "  END_END ", want: EndEnd},
		"missing inline": {in: "START", err: true},
		"bad side":       {in: "TOP_LEFT", err: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseCorner(tt.in)
			if tt.err {
				if !errors.Is(err, ErrInvalidCorner) {
					t.Fatalf("expected ErrInvalidCorner, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseCorner(%q) = %s, want %s", tt.in, got, tt.want)
			}
			if got.String() != tt.want.String() {
				t.Fatalf("String() = %s", got.String())
			}
		})
	}
}

func TestRectHelpers(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Fatalf("unexpected edges right=%d bottom=%d", r.Right(), r.Bottom())
	}
	if !r.Contains(5, 10) || r.Contains(25, 10) {
		t.Fatalf("Contains() disagrees with half-open edges")
	}
	if !NewRect(1, 1, 0, 3).Empty() || r.Empty() {
		t.Fatalf("Empty() disagrees with zero extents")
	}
}
