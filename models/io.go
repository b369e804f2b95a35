package models

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadCourseDB reads a JSON course database written by SaveCourseDB.
func LoadCourseDB(path string) (*CourseDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var db CourseDB
	if err := json.NewDecoder(f).Decode(&db); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return &db, nil
}

// SaveCourseDB writes the database as indented JSON.
func SaveCourseDB(path string, db *CourseDB) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(db); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.WithStack(f.Close())
}
