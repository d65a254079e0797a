package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/herb-scraper/internal/herb"
)

// maxLineSize bounds one JSONL line; mapper captures of widespread herbs
// run to several megabytes.
const maxLineSize = 64 << 20

// Storage handles the checkpoint files of a run
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating it if needed.
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// HerbListPath returns the path of the herb list checkpoint
func (s *Storage) HerbListPath() string {
	return filepath.Join(s.dataDir, "raw", "lists", "raw_herb_list.json")
}

// RawPath returns the path of the raw capture checkpoint
func (s *Storage) RawPath() string {
	return filepath.Join(s.dataDir, "raw", "herbs_data", "raw.jsonl")
}

// ParsedPath returns the path of the normalized record checkpoint
func (s *Storage) ParsedPath() string {
	return filepath.Join(s.dataDir, "raw", "herbs_data", "parsed.jsonl")
}

// OutputPath returns the date-stamped Lua output path for day
func (s *Storage) OutputPath(day time.Time) string {
	return filepath.Join(s.dataDir, "output", fmt.Sprintf("HerbData%s.lua", day.Format("20060102")))
}

// SaveHerbList writes the herb descriptors as an indented JSON array.
func (s *Storage) SaveHerbList(herbs []herb.Descriptor) error {
	data, err := json.MarshalIndent(herbs, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding herb list: %w", err)
	}

	path := s.HerbListPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating list directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing herb list: %w", err)
	}
	return nil
}

// LoadHerbList reads the herb descriptors saved by SaveHerbList.
func (s *Storage) LoadHerbList() ([]herb.Descriptor, error) {
	data, err := os.ReadFile(s.HerbListPath())
	if err != nil {
		return nil, fmt.Errorf("reading herb list: %w", err)
	}

	var herbs []herb.Descriptor
	if err := json.Unmarshal(data, &herbs); err != nil {
		return nil, fmt.Errorf("parsing herb list: %w", err)
	}
	return herbs, nil
}

// CreateRaw truncates the raw capture checkpoint and returns a writer for it.
func (s *Storage) CreateRaw() (*LineWriter, error) {
	return createLines(s.RawPath())
}

// ReadCaptures reads every raw capture. Lines that fail to decode are
// reported to onError (when non-nil) and skipped.
func (s *Storage) ReadCaptures(onError func(line int, err error)) ([]herb.RawCapture, error) {
	var captures []herb.RawCapture
	err := scanLines(s.RawPath(), func(line int, data []byte) {
		var c herb.RawCapture
		if err := json.Unmarshal(data, &c); err != nil {
			if onError != nil {
				onError(line, err)
			}
			return
		}
		captures = append(captures, c)
	})
	return captures, err
}

// SaveRecords replaces the parsed checkpoint with records, one per line.
func (s *Storage) SaveRecords(records []*herb.Record) error {
	w, err := createLines(s.ParsedPath())
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			w.Close() // nolint:errcheck
			return err
		}
	}
	return w.Close()
}

// LoadRecords reads the parsed checkpoint. Lines that fail to decode are
// reported to onError (when non-nil) and skipped.
func (s *Storage) LoadRecords(onError func(line int, err error)) ([]*herb.Record, error) {
	var records []*herb.Record
	err := scanLines(s.ParsedPath(), func(line int, data []byte) {
		var rec herb.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			if onError != nil {
				onError(line, err)
			}
			return
		}
		records = append(records, &rec)
	})
	return records, err
}

// CreateOutput creates the Lua output file for day.
func (s *Storage) CreateOutput(day time.Time) (*os.File, error) {
	path := s.OutputPath(day)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

// LineWriter appends JSON values to a file, one per line
type LineWriter struct {
	f   *os.File
	buf *bufio.Writer
	n   int
}

func createLines(path string) (*LineWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &LineWriter{f: f, buf: bufio.NewWriter(f)}, nil
}

// Write encodes v as one JSON line.
func (w *LineWriter) Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding line %d: %w", w.n+1, err)
	}
	data = append(data, '\n')
	if _, err := w.buf.Write(data); err != nil {
		return fmt.Errorf("writing line %d: %w", w.n+1, err)
	}
	w.n++
	return nil
}

// Lines returns the number of lines written.
func (w *LineWriter) Lines() int {
	return w.n
}

// Close flushes and closes the file.
func (w *LineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close() // nolint:errcheck
		return fmt.Errorf("flushing %s: %w", filepath.Base(w.f.Name()), err)
	}
	return w.f.Close()
}

// scanLines calls fn for every non-blank line of path with its 1-based number.
func scanLines(path string, fn func(line int, data []byte)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		fn(line, data)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return nil
}
