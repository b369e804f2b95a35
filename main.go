package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/whereisclass/whereisclass/export"
	"github.com/whereisclass/whereisclass/models"
	"github.com/whereisclass/whereisclass/parser"
	"github.com/whereisclass/whereisclass/query"
)

const (
	envPostgresDBKey       = "WIC_POSTGRES_DB"
	envPostgresUserKey     = "WIC_POSTGRES_USER"
	envPostgresPasswordKey = "WIC_POSTGRES_PASSWORD"
	envPostgresHostKey     = "WIC_POSTGRES_HOST"
	envPostgresPortKey     = "WIC_POSTGRES_PORT"

	migrationsDir = "migrations"
)

var (
	strictMode     bool
	forceOverwrite bool
)

func main() {
	root := &cobra.Command{
		Use:          "whereisclass",
		Short:        "A toolkit to find out nifty information about the RPI master schedule.",
		SilenceUsage: true,
	}

	parseHTML := &cobra.Command{
		Use:   "parsehtml <file> <output>",
		Short: "Parse an HTML file containing just a table of all classes formatted like SIS into JSON.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], args[1], parser.ParseHTML)
		},
	}
	parseRCOS := &cobra.Command{
		Use:   "parsercos <file> <output>",
		Short: "Parse an RCOS XML file into JSON.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], args[1], parser.ParseXML)
		},
	}
	for _, c := range []*cobra.Command{parseHTML, parseRCOS} {
		c.Flags().BoolVar(&strictMode, "strict", false, "abort on the first malformed unit instead of dropping it")
		c.Flags().BoolVarP(&forceOverwrite, "force", "f", false, "forcibly overwrite the output file")
	}

	findCourse := &cobra.Command{
		Use:   "find-course-in-room <db> <room> <time> <day>",
		Short: "Determines which courses are being held in a given room at a given time.",
		Args:  cobra.ExactArgs(4),
		RunE:  runFindCourseInRoom,
	}
	emptyRooms := &cobra.Command{
		Use:   "empty-rooms <db> <time-start> <time-end> <day>",
		Short: "Find empty rooms for a given time range.",
		Args:  cobra.ExactArgs(4),
		RunE:  runEmptyRooms,
	}
	exportPG := &cobra.Command{
		Use:   "export-pg <db>",
		Short: "Export a JSON course DB into the relational Postgres schema.",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportPG,
	}
	exportCSV := &cobra.Command{
		Use:   "export-csv <db> <output>",
		Short: "Export a JSON course DB as one flat CSV row per period.",
		Args:  cobra.ExactArgs(2),
		RunE:  runExportCSV,
	}

	root.AddCommand(parseHTML, parseRCOS, findCourse, emptyRooms, exportPG, exportCSV)
	if err := root.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func runParse(input, output string, parse func(string, parser.Options) (*models.CourseDB, error)) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.WithStack(err)
	}
	if !forceOverwrite {
		if _, err := os.Stat(output); err == nil {
			return errors.Errorf("%s already exists, pass --force to overwrite", output)
		}
	}

	db, err := parse(string(raw), parser.Options{Strict: strictMode})
	if err != nil {
		return err
	}
	fmt.Printf("Read %d courses\n", len(db.Courses))
	return models.SaveCourseDB(output, db)
}

func runFindCourseInRoom(cmd *cobra.Command, args []string) error {
	db, err := models.LoadCourseDB(args[0])
	if err != nil {
		return err
	}
	room := args[1]
	at, err := models.ParseTimeCode(args[2])
	if err != nil {
		return err
	}
	day, err := models.ParseDay(args[3])
	if err != nil {
		return err
	}

	courses := query.FindCoursesInRoomAt(db, room, at, day)
	fmt.Printf("%s -- \n", room)
	fmt.Printf("Found the following course%s:\n", plural(len(courses)))
	for _, course := range courses {
		fmt.Printf("%s %d -- %s\n", course.Dept, course.Num, course.Name)
	}
	return nil
}

func runEmptyRooms(cmd *cobra.Command, args []string) error {
	db, err := models.LoadCourseDB(args[0])
	if err != nil {
		return err
	}
	start, err := models.ParseTimeCode(args[1])
	if err != nil {
		return err
	}
	end, err := models.ParseTimeCode(args[2])
	if err != nil {
		return err
	}
	day, err := models.ParseDay(args[3])
	if err != nil {
		return err
	}

	empty := query.FindEmptyRooms(db, start, end, day)
	fmt.Printf("%d empty room%s found between %s and %s:\n\n", len(empty), plural(len(empty)), start, end)
	for _, room := range empty {
		fmt.Println(room)
	}
	return nil
}

func runExportPG(cmd *cobra.Command, args []string) error {
	envKeys := []string{envPostgresDBKey, envPostgresUserKey, envPostgresPasswordKey, envPostgresHostKey, envPostgresPortKey}
	for _, key := range envKeys {
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			return errors.Errorf("%s is not set or empty", key)
		}
	}

	db, err := models.LoadCourseDB(args[0])
	if err != nil {
		return err
	}

	conn, err := export.OpenPG(export.PGConfig{
		Host:     os.Getenv(envPostgresHostKey),
		Port:     os.Getenv(envPostgresPortKey),
		User:     os.Getenv(envPostgresUserKey),
		Password: os.Getenv(envPostgresPasswordKey),
		DBName:   os.Getenv(envPostgresDBKey),
	}, migrationsDir)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := export.ToPostgres(conn, db); err != nil {
		return err
	}
	log.Println("done")
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	db, err := models.LoadCourseDB(args[0])
	if err != nil {
		return err
	}
	return export.ToCSV(args[1], db)
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}
