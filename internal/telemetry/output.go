package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends records of one type to a stream, writing the header
// only once.
type CSVWriter[T any] struct {
	w             io.Writer
	headerWritten bool
}

// NewCSVWriter wraps w.
func NewCSVWriter[T any](w io.Writer) *CSVWriter[T] {
	return &CSVWriter[T]{w: w}
}

// Write appends records. An empty batch writes nothing.
func (c *CSVWriter[T]) Write(records []T) error {
	if len(records) == 0 {
		return nil
	}
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.w); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.w)
}

// OutputManager writes events.csv and runs.csv into a directory.
// A nil manager discards everything.
type OutputManager struct {
	dir       string
	eventFile *os.File
	runFile   *os.File
	events    *CSVWriter[EventRecord]
	runs      *CSVWriter[RunRecord]
}

// NewOutputManager creates the output directory and files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}
	om.eventFile = f
	om.events = NewCSVWriter[EventRecord](f)

	f, err = os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		om.eventFile.Close()
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}
	om.runFile = f
	om.runs = NewCSVWriter[RunRecord](f)

	return om, nil
}

// WriteEvents appends event rows to events.csv.
func (om *OutputManager) WriteEvents(records []EventRecord) error {
	if om == nil {
		return nil
	}
	if err := om.events.Write(records); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// WriteRun appends one row to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	if om == nil {
		return nil
	}
	if err := om.runs.Write([]RunRecord{r}); err != nil {
		return fmt.Errorf("writing run: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.eventFile, om.runFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadRuns parses a runs.csv stream.
func ReadRuns(r io.Reader) ([]RunRecord, error) {
	var runs []RunRecord
	if err := gocsv.Unmarshal(r, &runs); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return runs, nil
}
