package employee

import (
	"errors"
	"testing"
)

func TestParseBand(t *testing.T) {
	b, err := ParseBand(" b3 ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b != BandB3 {
		t.Fatalf("expected B3, got %s", b)
	}

	for _, in := range []string{"", "B6", "senior"} {
		if _, err := ParseBand(in); !errors.Is(err, ErrInvalidBand) {
			t.Fatalf("ParseBand(%q): expected ErrInvalidBand, got %v", in, err)
		}
	}
}
