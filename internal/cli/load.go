package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/cartographer/internal/config"
	"github.com/mvp-joe/cartographer/internal/overlay"
	"github.com/mvp-joe/cartographer/internal/srg"
)

// maxLineSize bounds a single input line. Mapping lines are short; the
// limit only guards against binary input.
const maxLineSize = 1 << 20

// readLines reads a text file into lines without their terminators.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// writeLines writes lines to path, one per line, replacing any existing file.
func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// importOptions translates the import section of the configuration.
func importOptions(cfg *config.Config, logger *log.Logger, progress srg.ProgressReporter) []srg.Option {
	return []srg.Option{
		srg.WithWorkers(cfg.Import.Workers),
		srg.WithDescriptorCacheSize(cfg.Import.DescriptorCacheSize),
		srg.WithVerbose(cfg.Import.Verbose),
		srg.WithLogger(logger),
		srg.WithProgress(progress),
	}
}

// importDatabase builds a database from the raw mapping files.
func importDatabase(cfg *config.Config, logger *log.Logger, progress srg.ProgressReporter) (*srg.Database, *srg.Report, error) {
	var in srg.Input
	for _, f := range []struct {
		path string
		into *[]string
	}{
		{cfg.Inputs.Mappings, &in.Mappings},
		{cfg.Inputs.Statics, &in.Statics},
		{cfg.Inputs.Constructors, &in.Constructors},
	} {
		lines, err := readLines(f.path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read input: %w", err)
		}
		*f.into = lines
	}

	return srg.Import(in, importOptions(cfg, logger, progress)...)
}

// readDatabase deserializes the database file at cfg.Database.Path.
func readDatabase(cfg *config.Config, logger *log.Logger) (*srg.Database, *srg.Report, error) {
	lines, err := readLines(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return srg.Deserialize(lines, srg.WithLogger(logger), srg.WithVerbose(cfg.Import.Verbose))
}

// openDatabase reuses the serialized database when it exists; otherwise it
// imports the raw files and saves the result for next time.
func openDatabase(cfg *config.Config, out io.Writer, logger *log.Logger, progress srg.ProgressReporter) (*srg.Database, error) {
	if _, err := os.Stat(cfg.Database.Path); err == nil {
		fmt.Fprintln(out, "SRG database exists on disk, deserializing...")
		start := time.Now()
		db, report, err := readDatabase(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize %s: %w", cfg.Database.Path, err)
		}
		report.Print(out, "SRG Deserialize")
		fmt.Fprintf(out, "Time elapsed for deserialization: %s\n", time.Since(start))
		return db, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	fmt.Fprintln(out, "Importing SRG database from MCPConfig files...")
	return importAndSave(cfg, out, logger, progress)
}

// importAndSave imports the raw files, prints the report and writes the
// serialized database.
func importAndSave(cfg *config.Config, out io.Writer, logger *log.Logger, progress srg.ProgressReporter) (*srg.Database, error) {
	start := time.Now()
	db, report, err := importDatabase(cfg, logger, progress)
	if err != nil {
		return nil, err
	}
	report.Print(out, "SRG Import")
	fmt.Fprintf(out, "Time elapsed for import: %s\n", time.Since(start))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Exporting imported SRG database to %s...\n", cfg.Database.Path)
	start = time.Now()
	if err := writeLines(cfg.Database.Path, db.Serialize()); err != nil {
		return nil, fmt.Errorf("failed to export database: %w", err)
	}
	fmt.Fprintf(out, "Time elapsed for export: %s\n", time.Since(start))
	return db, nil
}

// openOverlay reads the overlay tables, or returns nil when the overlay is
// disabled.
func openOverlay(cfg *config.Config, logger *log.Logger) (*overlay.Database, error) {
	if !cfg.Overlay.Enabled() {
		return nil, nil
	}

	var in overlay.Input
	for _, f := range []struct {
		path string
		into *[]string
	}{
		{cfg.Overlay.Fields, &in.Fields},
		{cfg.Overlay.Methods, &in.Methods},
		{cfg.Overlay.Params, &in.Params},
	} {
		lines, err := readLines(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read overlay: %w", err)
		}
		*f.into = lines
	}

	return overlay.Parse(in,
		overlay.WithWorkers(cfg.Import.Workers),
		overlay.WithLogger(logger),
		overlay.WithVerbose(cfg.Import.Verbose),
	)
}
