// Package export writes a course database out to external collaborators:
// a normalized Postgres schema and a flat CSV listing.
package export

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/whereisclass/whereisclass/models"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// PGConfig carries the Postgres connection settings.
type PGConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c PGConfig) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

// OpenPG connects and applies any pending schema migrations.
func OpenPG(cfg PGConfig, migrationsDir string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	applied, err := migrate.Exec(db.DB, "postgres", &migrate.FileMigrationSource{Dir: migrationsDir}, migrate.Up)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Printf("Applied %v migrations", applied)
	return db, nil
}

// ToPostgres writes db into the relational schema in one transaction:
// either the whole database lands or none of it.
func ToPostgres(conn *sqlx.DB, db *models.CourseDB) error {
	tx, err := conn.Begin()
	if err != nil {
		return errors.WithStack(err)
	}
	if err := insertAll(tx, db); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}
	return errors.WithStack(tx.Commit())
}

// daySet keys the days dedup table by the five weekday flags.
type daySet struct {
	monday, tuesday, wednesday, thursday, friday bool
}

func newDaySet(days []models.Day) daySet {
	var s daySet
	for _, d := range days {
		switch d {
		case models.Monday:
			s.monday = true
		case models.Tuesday:
			s.tuesday = true
		case models.Wednesday:
			s.wednesday = true
		case models.Thursday:
			s.thursday = true
		case models.Friday:
			s.friday = true
		}
	}
	return s
}

func insertAll(tx *sql.Tx, db *models.CourseDB) error {
	deptIDs, err := insertDepartments(tx, db)
	if err != nil {
		return err
	}
	buildingIDs, err := insertBuildings(tx, db)
	if err != nil {
		return err
	}

	type roomKey struct {
		building int
		room     string
	}
	roomIDs := map[roomKey]int{}
	dayIDs := map[daySet]int{}

	courseID, sectionID, periodID := 1, 1, 1
	nextRoomID, nextDayID := 1, 1
	for _, course := range db.Courses {
		_, err := tx.Exec(`INSERT INTO courses (id, name, dept, num) VALUES ($1, $2, $3, $4)`,
			courseID, titleCaser.String(course.Name), deptIDs[course.Dept], int(course.Num))
		if err != nil {
			return errors.WithStack(err)
		}
		for _, section := range course.Sections {
			_, err := tx.Exec(`INSERT INTO sections (id, crn, num, course) VALUES ($1, $2, $3, $4)`,
				sectionID, int(section.CRN), int(section.Num), courseID)
			if err != nil {
				return errors.WithStack(err)
			}
			for _, period := range section.Periods {
				name := period.RoomName()
				if name == "" {
					continue
				}
				building, room, ok := splitLocation(name)
				if !ok {
					continue
				}
				key := roomKey{building: buildingIDs[building], room: room}
				roomID, exists := roomIDs[key]
				if !exists {
					roomID = nextRoomID
					nextRoomID++
					_, err := tx.Exec(`INSERT INTO rooms (id, building_id, room) VALUES ($1, $2, $3)`,
						roomID, key.building, key.room)
					if err != nil {
						return errors.WithStack(err)
					}
					roomIDs[key] = roomID
				}

				set := newDaySet(period.Days)
				dayID, exists := dayIDs[set]
				if !exists {
					dayID = nextDayID
					nextDayID++
					_, err := tx.Exec(`INSERT INTO days (id, monday, tuesday, wednesday, thursday, friday) VALUES ($1, $2, $3, $4, $5, $6)`,
						dayID, set.monday, set.tuesday, set.wednesday, set.thursday, set.friday)
					if err != nil {
						return errors.WithStack(err)
					}
					dayIDs[set] = dayID
				}

				_, err := tx.Exec(`INSERT INTO periods (id, section, time_start, time_end, location, days) VALUES ($1, $2, $3, $4, $5, $6)`,
					periodID, sectionID, int(period.TimeStart), int(period.TimeEnd), roomID, dayID)
				if err != nil {
					return errors.WithStack(err)
				}
				periodID++
			}
			sectionID++
		}
		courseID++
	}
	return nil
}

func insertDepartments(tx *sql.Tx, db *models.CourseDB) (map[string]int, error) {
	names := departments(db)
	ids := assignIDs(names)
	for _, dept := range names {
		if _, err := tx.Exec(`INSERT INTO departments (id, short_name) VALUES ($1, $2)`, ids[dept], dept); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return ids, nil
}

func insertBuildings(tx *sql.Tx, db *models.CourseDB) (map[string]int, error) {
	names := buildings(db)
	ids := assignIDs(names)
	for _, building := range names {
		if _, err := tx.Exec(`INSERT INTO buildings (id, name) VALUES ($1, $2)`, ids[building], building); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return ids, nil
}

// departments collects the distinct department codes of the database.
func departments(db *models.CourseDB) []string {
	set := map[string]struct{}{}
	for _, course := range db.Courses {
		set[course.Dept] = struct{}{}
	}
	return sortedKeys(set)
}

// buildings collects the distinct title-cased building names of every
// period that has a usable location.
func buildings(db *models.CourseDB) []string {
	set := map[string]struct{}{}
	for _, course := range db.Courses {
		for _, section := range course.Sections {
			for _, period := range section.Periods {
				name := period.RoomName()
				if name == "" {
					continue
				}
				if building, _, ok := splitLocation(name); ok {
					set[building] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(set)
}

// splitLocation divides "SAGE 2715" into its title-cased building name
// and room number at the last space.
func splitLocation(loc string) (building, room string, ok bool) {
	i := strings.LastIndex(loc, " ")
	if i < 0 {
		return "", "", false
	}
	return titleCaser.String(loc[:i]), loc[i+1:], true
}

// assignIDs gives each name a stable id starting at 1. Names arrive
// sorted so repeated exports of the same database assign the same ids.
func assignIDs(names []string) map[string]int {
	ids := make(map[string]int, len(names))
	for i, name := range names {
		ids[name] = i + 1
	}
	return ids
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
