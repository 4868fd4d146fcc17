package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errNotFinite = errors.New("value is not finite")
	errHexFloat  = errors.New("hexadecimal notation is not accepted")
)

// ParseError reports raw input that is not a finite number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid observation %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseObservation parses a multiplier such as "2.31" or "2.31x".
// At most one trailing x is stripped; hex floats are rejected.
func ParseObservation(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if n := len(s); n > 0 && (s[n-1] == 'x' || s[n-1] == 'X') {
		s = strings.TrimSpace(s[:n-1])
	}

	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) >= 2 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, &ParseError{Input: raw, Err: errHexFloat}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Input: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Input: raw, Err: errNotFinite}
	}
	return v, nil
}
