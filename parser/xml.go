package parser

import (
	"encoding/xml"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/whereisclass/whereisclass/models"
)

// The XML dump is already hierarchical, so this path needs no marker
// heuristics: it walks COURSE > SECTION > PERIOD/NOTE subtrees, applying
// the same value validation and the same strict/lenient policy as the
// HTML path. In lenient mode a failed subtree is dropped on its own; its
// siblings still land.

var allDigitsRe = regexp.MustCompile(`^\d+$`)

type xmlRoot struct {
	Courses []xmlCourse `xml:"COURSE"`
}

type xmlCourse struct {
	Name     *string      `xml:"name,attr"`
	Dept     *string      `xml:"dept,attr"`
	Num      *string      `xml:"num,attr"`
	Sections []xmlSection `xml:"SECTION"`
}

type xmlSection struct {
	CRN     *string     `xml:"crn,attr"`
	Num     *string     `xml:"num,attr"`
	Periods []xmlPeriod `xml:"PERIOD"`
	Notes   []string    `xml:"NOTE"`
}

type xmlPeriod struct {
	Start      *string  `xml:"start,attr"`
	End        *string  `xml:"end,attr"`
	Location   *string  `xml:"location,attr"`
	Type       *string  `xml:"type,attr"`
	Instructor *string  `xml:"instructor,attr"`
	Days       []string `xml:"DAY"`
}

// ParseXML reconstructs a CourseDB from a course dump document whose
// root's children are COURSE elements.
func ParseXML(input string, opts Options) (*models.CourseDB, error) {
	var root xmlRoot
	if err := xml.Unmarshal([]byte(input), &root); err != nil {
		return nil, errors.Wrap(err, "reading xml")
	}

	db := &models.CourseDB{Courses: []models.Course{}}
	for _, c := range root.Courses {
		course, err := convertCourse(c, opts)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			logrus.Warnf("dropping course: %v", err)
			continue
		}
		db.Courses = append(db.Courses, *course)
	}
	return db, nil
}

func convertCourse(c xmlCourse, opts Options) (*models.Course, error) {
	if c.Name == nil {
		return nil, &RequiredFieldMissing{Node: "COURSE", Field: "name"}
	}
	if c.Dept == nil {
		return nil, &RequiredFieldMissing{Node: "COURSE", Field: "dept"}
	}
	if c.Num == nil {
		return nil, &RequiredFieldMissing{Node: "COURSE", Field: "num"}
	}
	num, err := strconv.ParseUint(*c.Num, 10, 16)
	if err != nil {
		return nil, &ValueParseError{Field: "course number", Err: err}
	}

	course := &models.Course{
		Name:     *c.Name,
		Dept:     *c.Dept,
		Num:      uint16(num),
		Sections: []models.Section{},
	}
	for _, s := range c.Sections {
		section, err := convertSection(s, opts)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			logrus.Warnf("dropping section: %v", err)
			continue
		}
		course.Sections = append(course.Sections, *section)
	}
	return course, nil
}

func convertSection(s xmlSection, opts Options) (*models.Section, error) {
	if s.CRN == nil {
		return nil, &RequiredFieldMissing{Node: "SECTION", Field: "crn"}
	}
	if s.Num == nil {
		return nil, &RequiredFieldMissing{Node: "SECTION", Field: "num"}
	}
	crn, err := strconv.ParseUint(*s.CRN, 10, 32)
	if err != nil {
		return nil, &ValueParseError{Field: "crn", Err: err}
	}
	num, err := strconv.ParseUint(*s.Num, 10, 8)
	if err != nil {
		return nil, &ValueParseError{Field: "section number", Err: err}
	}

	section := &models.Section{
		CRN:     uint32(crn),
		Num:     uint8(num),
		Periods: []models.Period{},
		Notes:   []string{},
	}
	for _, p := range s.Periods {
		period, err := convertPeriod(p, opts)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			logrus.Warnf("dropping period: %v", err)
			continue
		}
		section.Periods = append(section.Periods, *period)
	}
	for _, note := range s.Notes {
		if note == "" {
			err := &RequiredFieldMissing{Node: "NOTE", Field: "text"}
			if opts.Strict {
				return nil, err
			}
			logrus.Warnf("dropping note: %v", err)
			continue
		}
		section.Notes = append(section.Notes, note)
	}
	return section, nil
}

func convertPeriod(p xmlPeriod, opts Options) (*models.Period, error) {
	if p.Start == nil {
		return nil, &RequiredFieldMissing{Node: "PERIOD", Field: "start"}
	}
	if p.End == nil {
		return nil, &RequiredFieldMissing{Node: "PERIOD", Field: "end"}
	}
	if p.Instructor == nil {
		return nil, &RequiredFieldMissing{Node: "PERIOD", Field: "instructor"}
	}
	if !allDigitsRe.MatchString(*p.Start) || !allDigitsRe.MatchString(*p.End) {
		return nil, &RequiredFieldMissing{Node: "PERIOD", Field: "numeric start/end"}
	}
	start, err := models.ParseTimeCode(*p.Start)
	if err != nil {
		return nil, &ValueParseError{Field: "start time", Err: err}
	}
	end, err := models.ParseTimeCode(*p.End)
	if err != nil {
		return nil, &ValueParseError{Field: "end time", Err: err}
	}

	period := &models.Period{
		TimeStart:  start,
		TimeEnd:    end,
		Instructor: *p.Instructor,
		Days:       []models.Day{},
		Location:   p.Location,
	}
	if p.Type != nil {
		pt := models.PeriodTypeFromCode(*p.Type)
		period.PeriodType = &pt
	}
	for _, d := range p.Days {
		day, err := models.ParseDay(d)
		if err != nil {
			if opts.Strict {
				return nil, &ValueParseError{Field: "day", Err: err}
			}
			logrus.Warnf("dropping day: %v", err)
			continue
		}
		period.Days = append(period.Days, day)
	}
	return period, nil
}
