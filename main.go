package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/surveysavvy/surveysavvy/app"
	"github.com/surveysavvy/surveysavvy/config"
	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/model"
	"github.com/surveysavvy/surveysavvy/services"
	"github.com/surveysavvy/surveysavvy/services/cron"
	"github.com/surveysavvy/surveysavvy/services/extract"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: surveysavvy <command> [flags]

Commands:
  import    Import unit survey PDF reports into the database
  generate  Generate a synthetic survey database
  export    Export the database to CSV files or an XLSX workbook
  serve     Run the read-only dashboard server
  watch     Re-scan an import folder on a schedule

Run 'surveysavvy <command> -h' for command flags.`)
}

func main() {
	log.SetFlags(log.LstdFlags)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// openStore opens the database at dbPath and runs migrations plus the
// question seed.
func openStore(dbPath string) (*database.GORMStore, error) {
	store, err := database.OpenSQLite(dbPath, os.Getenv("GO_ENV"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Init(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func newImporter(store *database.GORMStore, jsonDir string, debug bool) *services.ImportService {
	extractor := extract.NewExtractor(model.DefaultDisciplineNames(), debug)
	importer := services.NewImportService(store.GetDB(), extractor)
	importer.JSONDumpDir = jsonDir
	return importer
}

func runImport(args []string) error {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	pdfPath := flags.String("pdf", "", "Path to a single PDF report")
	folder := flags.String("folder", "", "Folder of PDF reports to import")
	dbPath := flags.String("db", "unit_survey.db", "Path to database file")
	jsonDir := flags.String("json", "", "Directory for extracted-record JSON dumps")
	debug := flags.Bool("debug", false, "Log per-page extraction detail")
	flags.Parse(args)

	if (*pdfPath == "") == (*folder == "") {
		return fmt.Errorf("exactly one of -pdf or -folder is required")
	}

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	importer := newImporter(store, *jsonDir, *debug)

	if *pdfPath != "" {
		result := importer.ImportFile(*pdfPath)
		if !result.Success {
			return fmt.Errorf("import failed: %s", result.Message)
		}
		log.Printf("Imported %s (%s semester %d %d): %d benchmarks, %d results, %d comments, %d questions skipped",
			result.File, result.UnitCode, result.Semester, result.Year,
			result.BenchmarksAdded, result.ResultsAdded, result.CommentsAdded, result.QuestionsSkipped)
		return nil
	}

	batch, err := importer.ImportFolder(*folder)
	if err != nil {
		return err
	}
	log.Printf("Batch finished: %d files, %d imported, %d failed", batch.Total, batch.Successful, batch.Failed)
	if batch.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", batch.Failed, batch.Total)
	}
	return nil
}

func runGenerate(args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	dbPath := flags.String("db", "unit_survey.db", "Path to output database file")
	years := flags.Int("years", 5, "Number of years to generate data for")
	units := flags.Int("units", 30, "Number of units to generate")
	startYear := flags.Int("start-year", 0, "Starting year (default: current year - years + 1)")
	seed := flags.Int64("seed", 42, "Random seed for reproducibility")
	force := flags.Bool("force", false, "Overwrite an existing database file")
	flags.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		if !*force {
			return fmt.Errorf("%s already exists (use -force to overwrite)", *dbPath)
		}
		if err := os.Remove(*dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	start := *startYear
	if start == 0 {
		start = time.Now().Year() - *years + 1
	}
	end := start + *years - 1

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Printf("Generating %d units, %d-%d (seed %d)...", *units, start, end, *seed)

	generator := services.NewGeneratorService(store.GetDB(), *seed)
	if err := generator.Generate(*units, start, end); err != nil {
		return err
	}

	log.Printf("Generated database written to %s", *dbPath)
	return nil
}

func runExport(args []string) error {
	flags := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := flags.String("db", "unit_survey.db", "Path to database file")
	outDir := flags.String("output", "exports", "Directory for CSV files")
	xlsxPath := flags.String("xlsx", "", "Write a single XLSX workbook instead of CSV files")
	flags.Parse(args)

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	exporter := services.NewExportService(store.GetDB())

	if *xlsxPath != "" {
		if err := exporter.ExportXLSX(*xlsxPath); err != nil {
			return err
		}
		log.Printf("Exported workbook to %s", *xlsxPath)
		return nil
	}

	if err := exporter.ExportCSV(*outDir); err != nil {
		return err
	}
	log.Printf("Exported CSV files to %s/", *outDir)
	return nil
}

func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := flags.String("db", "", "Path to database file (overrides DB_PATH)")
	port := flags.Int("port", 0, "Listen port (overrides PORT)")
	flags.Parse(args)

	// flags win over the environment the server reads
	if *dbPath != "" {
		os.Setenv("DB_PATH", *dbPath)
	}
	if *port != 0 {
		os.Setenv("PORT", fmt.Sprintf("%d", *port))
	}

	return app.SetupAndRunServer()
}

func runWatch(args []string) error {
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet("watch", flag.ExitOnError)
	folder := flags.String("folder", getEnv.IMPORT_DIR, "Folder to watch for PDF reports")
	dbPath := flags.String("db", getEnv.DB_PATH, "Path to database file")
	schedule := flags.String("schedule", getEnv.IMPORT_SCHEDULE, "Cron schedule (six-field, with seconds)")
	jsonDir := flags.String("json", getEnv.JSON_DUMP_DIR, "Directory for extracted-record JSON dumps")
	debug := flags.Bool("debug", getEnv.DEBUG, "Log per-page extraction detail")
	flags.Parse(args)

	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	importer := newImporter(store, *jsonDir, *debug)

	manager := cron.NewCronManager(importer, *folder, *schedule)
	if err := manager.Start(); err != nil {
		return fmt.Errorf("failed to start folder watch: %w", err)
	}
	defer manager.Stop()

	// run one scan immediately, then let the scheduler take over
	manager.ScanImportFolder()

	select {}
}
