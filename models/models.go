// Package models holds the course schedule record and the validated
// time/day values it is built from. The record is assembled once by an
// ingestion pass and treated as read only afterwards.
package models

import "strings"

// CourseDB is the root of the schedule record.
type CourseDB struct {
	Courses []Course `json:"courses"`
}

// Course is one catalog entry, e.g. CSCI 1200, with its sections.
type Course struct {
	Name     string    `json:"name"`
	Dept     string    `json:"dept"`
	Num      uint16    `json:"num"`
	Sections []Section `json:"sections"`
}

// Section is one offering of a course.
type Section struct {
	// CRN is the registrar's Course Registration Number. It is unique
	// within one ingested record but not across terms.
	CRN     uint32   `json:"crn"`
	Num     uint8    `json:"num"`
	Periods []Period `json:"periods"`
	Notes   []string `json:"notes"`
}

// Period is one recurring weekly meeting block of a section.
type Period struct {
	TimeStart  TimeCode    `json:"time_start"`
	TimeEnd    TimeCode    `json:"time_end"`
	Instructor string      `json:"instructor"`
	Days       []Day       `json:"days"`
	Location   *string     `json:"location,omitempty"`
	PeriodType *PeriodType `json:"period_type,omitempty"`
}

// PeriodType classifies a meeting block. Codes the source does not use
// for the four known kinds pass through verbatim.
type PeriodType string

const (
	Lecture    PeriodType = "Lecture"
	Recitation PeriodType = "Recitation"
	Lab        PeriodType = "Lab"
	Test       PeriodType = "Test"
)

// PeriodTypeFromCode maps the source's period type codes (LEC, REC, LAB,
// TST) onto the known kinds.
func PeriodTypeFromCode(code string) PeriodType {
	switch code {
	case "LEC":
		return Lecture
	case "REC":
		return Recitation
	case "LAB":
		return Lab
	case "TST":
		return Test
	}
	return PeriodType(code)
}

// RoomName returns the usable room name of the period: the trimmed
// location text, or "" when the location is absent, blank, or the "TBA"
// placeholder.
func (p *Period) RoomName() string {
	if p.Location == nil {
		return ""
	}
	loc := strings.TrimSpace(*p.Location)
	if loc == "TBA" {
		return ""
	}
	return loc
}

// HasDay reports whether the period meets on day.
func (p *Period) HasDay(day Day) bool {
	for _, d := range p.Days {
		if d == day {
			return true
		}
	}
	return false
}
