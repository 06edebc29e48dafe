package employee

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidBand = errors.New("invalid band")

// Band is an organizational level with its own minimum skill requirements.
type Band string

const (
	BandB1 Band = "B1"
	BandB2 Band = "B2"
	BandB3 Band = "B3"
	BandB4 Band = "B4"
	BandB5 Band = "B5"
)

var bands = map[Band]struct{}{
	BandB1: {},
	BandB2: {},
	BandB3: {},
	BandB4: {},
	BandB5: {},
}

func (b Band) Valid() bool {
	_, ok := bands[b]
	return ok
}

func ParseBand(s string) (Band, error) {
	b := Band(strings.ToUpper(strings.TrimSpace(s)))
	if !b.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBand, s)
	}
	return b, nil
}

type Employee struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Department string
	Band       Band
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
