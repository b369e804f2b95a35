package models

import (
	"encoding/json"
	"fmt"
)

// Day is a weekday of the teaching week.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
var dayLetters = [...]string{"M", "T", "W", "R", "F"}

// DayParseError reports day text that matches neither accepted spelling.
type DayParseError struct {
	Input string
}

func (e *DayParseError) Error() string {
	return fmt.Sprintf("unknown day %q", e.Input)
}

// ParseDay accepts the two spellings used by the source data: the Monday
// indexed digits "0".."4" and the letters M, T, W, R, F. Anything else is
// an error, never a default.
func ParseDay(s string) (Day, error) {
	switch s {
	case "0", "M":
		return Monday, nil
	case "1", "T":
		return Tuesday, nil
	case "2", "W":
		return Wednesday, nil
	case "3", "R":
		return Thursday, nil
	case "4", "F":
		return Friday, nil
	}
	return 0, &DayParseError{Input: s}
}

func (d Day) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Letter returns the single letter spelling (M, T, W, R, F).
func (d Day) Letter() string {
	if d < Monday || d > Friday {
		return "?"
	}
	return dayLetters[d]
}

// Days are stored as weekday name strings in the JSON course database.
func (d Day) MarshalJSON() ([]byte, error) {
	if d < Monday || d > Friday {
		return nil, &DayParseError{Input: d.String()}
	}
	return json.Marshal(dayNames[d])
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range dayNames {
		if name == s {
			*d = Day(i)
			return nil
		}
	}
	return &DayParseError{Input: s}
}
