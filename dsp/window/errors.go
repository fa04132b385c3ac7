package window

import "errors"

var (
	errInvalidLength    = errors.New("window: length must be > 0")
	errMismatchedLength = errors.New("window: samples and coefficients length mismatch")
)

func validateLength(size int) error {
	if size <= 0 {
		return errInvalidLength
	}

	return nil
}
