package conv

import (
	"fmt"
	"math"

	"github.com/hupe1980/cohort/core"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = fmt.Errorf("%w: integer overflow", core.ErrInvalidInput)

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%d cannot be converted to uint32 (negative): %w", v, ErrOverflow)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%d cannot be converted to uint32 (too large): %w", v, ErrOverflow)
	}
	return uint32(v), nil
}

// CheckEntityCount reports whether n entities can all be addressed by an
// EntityID, that is whether the largest index n-1 fits.
func CheckEntityCount(n int) error {
	if n == 0 {
		return nil
	}
	if _, err := IntToUint32(n - 1); err != nil {
		return fmt.Errorf("%d entities exceed the id space: %w", n, err)
	}
	return nil
}
