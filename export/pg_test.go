package export

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whereisclass/whereisclass/models"
)

func newExportMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
	}
	return sqlxDB, mock, cleanup
}

func strPtr(s string) *string { return &s }

func sampleDB() *models.CourseDB {
	return &models.CourseDB{Courses: []models.Course{
		{
			Name: "INTRO TO SYSTEMS",
			Dept: "CSCI",
			Num:  1200,
			Sections: []models.Section{
				{
					CRN: 10001,
					Num: 1,
					Periods: []models.Period{
						{
							TimeStart:  1000,
							TimeEnd:    1050,
							Instructor: "Turner",
							Days:       []models.Day{models.Monday, models.Wednesday},
							Location:   strPtr("SAGE 2715"),
						},
						{
							TimeStart:  1400,
							TimeEnd:    1450,
							Instructor: "Turner",
							Days:       []models.Day{models.Friday},
							Location:   strPtr("TBA"),
						},
					},
				},
			},
		},
	}}
}

func TestToPostgres(t *testing.T) {
	db, mock, cleanup := newExportMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO departments (id, short_name) VALUES ($1, $2)`)).
		WithArgs(1, "CSCI").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO buildings (id, name) VALUES ($1, $2)`)).
		WithArgs(1, "Sage").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO courses (id, name, dept, num) VALUES ($1, $2, $3, $4)`)).
		WithArgs(1, "Intro To Systems", 1, 1200).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sections (id, crn, num, course) VALUES ($1, $2, $3, $4)`)).
		WithArgs(1, 10001, 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO rooms (id, building_id, room) VALUES ($1, $2, $3)`)).
		WithArgs(1, 1, "2715").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO days (id, monday, tuesday, wednesday, thursday, friday) VALUES ($1, $2, $3, $4, $5, $6)`)).
		WithArgs(1, true, false, true, false, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO periods (id, section, time_start, time_end, location, days) VALUES ($1, $2, $3, $4, $5, $6)`)).
		WithArgs(1, 1, 1000, 1050, 1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// The TBA period must not produce room/day/period rows.
	require.NoError(t, ToPostgres(db, sampleDB()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToPostgresRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newExportMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO departments`)).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := ToPostgres(db, sampleDB())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitLocation(t *testing.T) {
	building, room, ok := splitLocation("SAGE 2715")
	require.True(t, ok)
	assert.Equal(t, "Sage", building)
	assert.Equal(t, "2715", room)

	building, room, ok = splitLocation("DARRIN COMM CTR 308")
	require.True(t, ok)
	assert.Equal(t, "Darrin Comm Ctr", building)
	assert.Equal(t, "308", room)

	_, _, ok = splitLocation("ONLINE")
	assert.False(t, ok)
}

func TestDedupHelpers(t *testing.T) {
	db := sampleDB()
	assert.Equal(t, []string{"CSCI"}, departments(db))
	assert.Equal(t, []string{"Sage"}, buildings(db))
	assert.Equal(t, daySet{monday: true, wednesday: true}, newDaySet([]models.Day{models.Monday, models.Wednesday}))
}
