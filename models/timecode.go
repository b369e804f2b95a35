package models

import (
	"fmt"
	"strconv"
)

// TimeCode is a 24 hour clock time encoded as HHMM, e.g. 1:35 PM -> 1335.
// Valid values lie in [700, 2350] and the minute field is below 60, so the
// raw numeric ordering is the chronological ordering.
type TimeCode uint16

const (
	timeCodeMin = 700
	timeCodeMax = 2350
)

type TimeCodeErrorKind int

const (
	TimeCodeNotANumber TimeCodeErrorKind = iota
	TimeCodeOutOfBounds
	TimeCodeInvalidMinutes
)

// TimeCodeError reports a time value that failed validation, keeping the
// offending input for diagnostics.
type TimeCodeError struct {
	Input string
	Kind  TimeCodeErrorKind
}

func (e *TimeCodeError) Error() string {
	switch e.Kind {
	case TimeCodeNotANumber:
		return fmt.Sprintf("time code %q is not a number", e.Input)
	case TimeCodeOutOfBounds:
		return fmt.Sprintf("time code %q is outside %d-%d", e.Input, timeCodeMin, timeCodeMax)
	case TimeCodeInvalidMinutes:
		return fmt.Sprintf("time code %q has a minute field of 60 or more", e.Input)
	}
	return fmt.Sprintf("time code %q is invalid", e.Input)
}

// ParseTimeCode parses an unsigned HHMM integer and validates it.
func ParseTimeCode(s string) (TimeCode, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &TimeCodeError{Input: s, Kind: TimeCodeNotANumber}
	}
	return checkTimeCode(s, uint16(n))
}

// TimeCodeFromInt validates an already numeric HHMM value.
func TimeCodeFromInt(n uint16) (TimeCode, error) {
	return checkTimeCode(strconv.Itoa(int(n)), n)
}

func checkTimeCode(input string, n uint16) (TimeCode, error) {
	if n < timeCodeMin || n > timeCodeMax {
		return 0, &TimeCodeError{Input: input, Kind: TimeCodeOutOfBounds}
	}
	if n%100 >= 60 {
		return 0, &TimeCodeError{Input: input, Kind: TimeCodeInvalidMinutes}
	}
	return TimeCode(n), nil
}

// String renders the code as H:MM, e.g. 735 -> "7:35".
func (t TimeCode) String() string {
	return fmt.Sprintf("%d:%02d", t/100, t%100)
}
