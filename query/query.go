// Package query answers room occupancy and availability questions
// against a loaded course database. All operations are read only and
// scan the record directly; no index is built.
package query

import (
	"sort"

	"github.com/whereisclass/whereisclass/models"
)

// FindCoursesInRoomAt is the point-in-time form of FindCoursesInRoom.
func FindCoursesInRoomAt(db *models.CourseDB, room string, at models.TimeCode, day models.Day) []models.Course {
	return FindCoursesInRoom(db, room, at, at, day)
}

// FindCoursesInRoom returns the courses holding a period in room that
// conflicts with [start, end] on day. A course is appended once per
// conflicting period, so a course with several conflicting periods
// appears several times. Callers may rely on that count, so the result
// is deliberately not deduplicated.
//
// Room comparison is case sensitive; periods without a usable room
// (absent, blank, or TBA locations) never match.
func FindCoursesInRoom(db *models.CourseDB, room string, start, end models.TimeCode, day models.Day) []models.Course {
	var clash []models.Course
	for _, course := range db.Courses {
		for _, section := range course.Sections {
			for _, period := range section.Periods {
				name := period.RoomName()
				if name == "" || name != room {
					continue
				}
				if !period.HasDay(day) {
					continue
				}
				if conflicts(period.TimeStart, period.TimeEnd, start, end) {
					clash = append(clash, course)
				}
			}
		}
	}
	return clash
}

// conflicts reports whether the query range [qStart, qEnd] overlaps the
// period interval [pStart, pEnd]. Both ends are inclusive: equality at
// an endpoint counts as a conflict.
func conflicts(pStart, pEnd, qStart, qEnd models.TimeCode) bool {
	startInside := pStart <= qStart && pEnd >= qStart
	endInside := pStart <= qEnd && pEnd >= qEnd
	covers := qStart <= pStart && qEnd >= pEnd
	return startInside || endInside || covers
}

// FindEmptyRooms returns every room named anywhere in the database that
// has no conflicting period in [start, end] on day, sorted ascending,
// each room once.
func FindEmptyRooms(db *models.CourseDB, start, end models.TimeCode, day models.Day) []string {
	seen := map[string]struct{}{}
	for _, course := range db.Courses {
		for _, section := range course.Sections {
			for _, period := range section.Periods {
				if name := period.RoomName(); name != "" {
					seen[name] = struct{}{}
				}
			}
		}
	}

	empty := []string{}
	for name := range seen {
		if len(FindCoursesInRoom(db, name, start, end, day)) == 0 {
			empty = append(empty, name)
		}
	}
	sort.Strings(empty)
	return empty
}
