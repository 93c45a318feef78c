package recommend

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMovies_WholeTextJSON(t *testing.T) {
	got, err := ParseMovies(`{"movies":["A","B","C"]}`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseMovies_ProseWrappedJSON(t *testing.T) {
	got, err := ParseMovies(`Sure! {"movies":["A","B","C","D"]} Enjoy.`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 titles, got %v", got)
	}
}

func TestParseMovies_TooFewEntries(t *testing.T) {
	if _, err := ParseMovies(`{"movies":["A","B"]}`); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseMovies_MissingOrWrongField(t *testing.T) {
	cases := []string{
		`{"films":["A","B","C"]}`,
		`{"movies":"not an array"}`,
		`["A","B","C"]`,
		`no json here at all`,
		``,
	}
	for _, raw := range cases {
		if _, err := ParseMovies(raw); !errors.Is(err, ErrParse) {
			t.Fatalf("input %q: expected ErrParse, got %v", raw, err)
		}
	}
}

func TestParseMovies_CoercesNonStringEntries(t *testing.T) {
	got, err := ParseMovies(`{"movies":["A", 1917, true]}`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got[1] != "1917" || got[2] != "true" {
		t.Fatalf("unexpected coercion: %v", got)
	}
}

func TestParseMovies_SalvageScanIsCapped(t *testing.T) {
	// The object starts beyond the scan cap; salvage must give up
	// rather than scan the whole reply.
	raw := strings.Repeat("x", maxSalvageScan+10) + `{"movies":["A","B","C"]}`
	if _, err := ParseMovies(raw); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
