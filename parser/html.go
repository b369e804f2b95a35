package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/whereisclass/whereisclass/models"
)

// columnMap binds each logical field to its cell index in the listing
// table. The table format is positional and versionless; when it drifts,
// this is the only place to edit.
type columnMap struct {
	crn           int
	sectionMarker int
	dept          int
	catalogNum    int
	courseName    int
	days          int
	timeRange     int
	instructor    int
	location      int
}

var listingColumns = columnMap{
	crn:           1,
	sectionMarker: 4,
	dept:          2,
	catalogNum:    3,
	courseName:    7,
	days:          8,
	timeRange:     9,
	instructor:    19,
	location:      21,
}

const (
	// headerMarker flags a header/meta row that carries no section.
	headerMarker = "H01"
	// firstSectionMarker flags the row that begins a new course.
	firstSectionMarker = "01"
	// fullRowCells is how many cells a complete listing row carries.
	fullRowCells = 22
)

var dayLettersRe = regexp.MustCompile(`^[MTWRF]*$`)

// htmlBuilder carries the running ingestion state. Continuation rows
// have no key back to their parent, only positional adjacency, so the
// builder tracks the course being built by index into its own slice.
type htmlBuilder struct {
	opts    Options
	courses []models.Course
	course  int // index of the course being built, -1 before the first
}

// ParseHTML reconstructs a CourseDB from an HTML listing table. Each
// table row either begins a new course, begins a new section, or adds a
// meeting period to the most recent section; see the row method.
func ParseHTML(input string, opts Options) (*models.CourseDB, error) {
	// The listing tables wrap cell text across lines.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(input, "\n", "")))
	if err != nil {
		return nil, errors.Wrap(err, "reading html")
	}

	b := &htmlBuilder{opts: opts, course: -1}
	var firstErr error
	doc.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if err := b.row(i, tr); err != nil {
			if opts.Strict {
				firstErr = errors.Wrapf(err, "row %d", i)
				return false
			}
			logrus.WithField("row", i).Warnf("dropping period: %v", err)
		}
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return &models.CourseDB{Courses: b.courses}, nil
}

// row folds one table row into the running state. A returned error means
// this row's period was not recorded; the state of sibling rows already
// processed is never touched.
func (b *htmlBuilder) row(idx int, tr *goquery.Selection) error {
	cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
		return td.Text()
	})
	if len(cells) == 0 {
		return nil
	}
	if len(cells) < fullRowCells {
		logrus.WithField("row", idx).Debugf("short row: %d of %d cells", len(cells), fullRowCells)
	}

	marker := cell(cells, listingColumns.sectionMarker)
	if marker == headerMarker {
		return nil
	}

	if marker == firstSectionMarker {
		num, err := strconv.ParseUint(cell(cells, listingColumns.catalogNum), 10, 16)
		if err != nil {
			return &ValueParseError{Field: "course number", Err: err}
		}
		b.courses = append(b.courses, models.Course{
			Name:     cell(cells, listingColumns.courseName),
			Dept:     cell(cells, listingColumns.dept),
			Num:      uint16(num),
			Sections: []models.Section{},
		})
		b.course = len(b.courses) - 1
	} else if b.course < 0 {
		return ErrNoOpenCourse
	}
	course := &b.courses[b.course]

	// A digit-prefixed marker begins a new section; anything else is an
	// extra period row for the most recently created section.
	if len(marker) > 0 && marker[0] >= '0' && marker[0] <= '9' {
		crn, err := strconv.ParseUint(cell(cells, listingColumns.crn), 10, 32)
		if err != nil {
			return &ValueParseError{Field: "crn", Err: err}
		}
		num, err := strconv.ParseUint(marker, 10, 8)
		if err != nil {
			return &ValueParseError{Field: "section number", Err: err}
		}
		course.Sections = append(course.Sections, models.Section{
			CRN:     uint32(crn),
			Num:     uint8(num),
			Periods: []models.Period{},
			Notes:   []string{},
		})
	} else if len(course.Sections) == 0 {
		return ErrNoOpenSection
	}
	section := &course.Sections[len(course.Sections)-1]

	// A day cell of "TBA", or one that is not plain MTWRF letters, means
	// the row carries no schedule info. That is not an error.
	dayCell := cell(cells, listingColumns.days)
	if dayCell == "TBA" || !dayLettersRe.MatchString(dayCell) {
		return nil
	}
	days := make([]models.Day, 0, len(dayCell))
	for _, c := range dayCell {
		day, err := models.ParseDay(string(c))
		if err != nil {
			if b.opts.Strict {
				return &ValueParseError{Field: "day", Err: err}
			}
			logrus.WithField("row", idx).Warnf("dropping day: %v", err)
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil
	}

	timeCell := cell(cells, listingColumns.timeRange)
	if timeCell == "TBA" {
		return nil
	}
	start, end, err := parseTimeRange(timeCell)
	if err != nil {
		return err
	}

	// Normalize "Lastname   (Primary)" style instructor artifacts.
	instructor := strings.ReplaceAll(cell(cells, listingColumns.instructor), "   ", " ")
	instructor = strings.ReplaceAll(instructor, " (", "")

	period := models.Period{
		TimeStart:  start,
		TimeEnd:    end,
		Instructor: instructor,
		Days:       days,
	}
	if loc := strings.TrimSpace(cell(cells, listingColumns.location)); loc != "" {
		period.Location = &loc
	}
	section.Periods = append(section.Periods, period)
	return nil
}

// cell degrades gracefully on short rows: a missing cell reads as empty.
func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// parseTimeRange splits "10:00 am-10:50 am" on its single dash.
func parseTimeRange(s string) (models.TimeCode, models.TimeCode, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, ErrNotTwoTimes
	}
	start, err := parseClockTime(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClockTime(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseClockTime reads one "<h>:<mm> am|pm" token. The numeric part is
// whatever digits remain after stripping punctuation, shifted by 1200
// for pm times below 1200 (so "12:35 pm" stays 1235 and "1:35 pm"
// becomes 1335), then validated as a TimeCode.
func parseClockTime(s string) (models.TimeCode, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return 0, ErrMissingAMPM
	}
	var pm bool
	switch parts[1] {
	case "am":
	case "pm":
		pm = true
	default:
		return 0, ErrMalformedAMPM
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, parts[0])
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, &ValueParseError{Field: "time", Err: err}
	}
	if pm && n < 1200 {
		n += 1200
	}
	tc, err := models.TimeCodeFromInt(uint16(n))
	if err != nil {
		return 0, &ValueParseError{Field: "time", Err: err}
	}
	return tc, nil
}
