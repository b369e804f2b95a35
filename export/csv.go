package export

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/whereisclass/whereisclass/models"
)

// PeriodRow is one scheduled meeting flattened for CSV export.
type PeriodRow struct {
	Dept       string `csv:"dept"`
	CourseNum  uint16 `csv:"course_num"`
	CourseName string `csv:"course_name"`
	CRN        uint32 `csv:"crn"`
	Section    uint8  `csv:"section"`
	Days       string `csv:"days"`
	TimeStart  uint16 `csv:"time_start"`
	TimeEnd    uint16 `csv:"time_end"`
	Instructor string `csv:"instructor"`
	Location   string `csv:"location"`
}

// FlattenPeriods lists every period of the database in tree order, one
// row per period, with the day set spelled as MTWRF letters.
func FlattenPeriods(db *models.CourseDB) []PeriodRow {
	rows := []PeriodRow{}
	for _, course := range db.Courses {
		for _, section := range course.Sections {
			for _, period := range section.Periods {
				letters := make([]string, 0, len(period.Days))
				for _, day := range period.Days {
					letters = append(letters, day.Letter())
				}
				rows = append(rows, PeriodRow{
					Dept:       course.Dept,
					CourseNum:  course.Num,
					CourseName: course.Name,
					CRN:        section.CRN,
					Section:    section.Num,
					Days:       strings.Join(letters, ""),
					TimeStart:  uint16(period.TimeStart),
					TimeEnd:    uint16(period.TimeEnd),
					Instructor: period.Instructor,
					Location:   period.RoomName(),
				})
			}
		}
	}
	return rows
}

// ToCSV writes the flattened period listing to path.
func ToCSV(path string, db *models.CourseDB) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := gocsv.Marshal(FlattenPeriods(db), f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.WithStack(f.Close())
}
