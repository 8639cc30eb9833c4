package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Output file names written by WriteResult.
const (
	PinTableFile       = "pins.csv"
	DeclarationsFile   = "declarations.v"
	InstantiationsFile = "instantiations.v"
	SourceListFile     = "files.txt"
)

// WriteResult writes a generation result into dir, creating it if
// needed. The fragments are meant to be spliced into a larger design
// by the build tooling; the pin table feeds the constraint generator.
func WriteResult(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writePinTable(filepath.Join(dir, PinTableFile), result); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, DeclarationsFile), result.Declarations); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, InstantiationsFile), result.Instantiations); err != nil {
		return err
	}
	return writeLines(filepath.Join(dir, SourceListFile), result.SourceFiles)
}

func writePinTable(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "pin", "direction", "pullup"}); err != nil {
		return fmt.Errorf("write pin table: %w", err)
	}
	for _, b := range result.PinBindings {
		row := []string{b.Name, b.Pin, string(b.Direction), strconv.FormatBool(b.Pullup)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write pin table: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeLines(path string, lines []string) error {
	data := strings.Join(lines, "\n")
	if len(lines) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
