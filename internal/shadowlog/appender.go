package shadowlog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
)

// ShadowHeader is the column set the recorder appends. It is a superset of
// the required report columns; readers resolve columns by name.
var ShadowHeader = []string{
	"ts_signal_ms",
	"signal_id",
	"market_id",
	"strategy",
	"bucket",
	"q_req",
	"q_set",
	"set_ratio",
	"pnl_set",
	"pnl_left_total",
	"pnl_total",
}

const (
	flushEveryRecords = 200
	flushEvery        = time.Second
)

// Appender is an append-only CSV writer for the shadow log.
// On open it writes the header if the file is empty; if an existing file
// carries a different header, the file is rotated aside rather than mixed.
type Appender struct {
	path string
	file *os.File
	w    *csv.Writer

	pending   int
	lastFlush time.Time
}

// OpenAppender opens (or creates) the shadow log at path for appending.
func OpenAppender(path string, header []string) (*Appender, error) {
	expected := strings.Join(header, ",")

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		got, err := readFirstLine(path)
		if err != nil {
			return nil, fmt.Errorf("read header %s: %w", path, err)
		}
		if got != expected {
			backup := fmt.Sprintf("%s.schema_mismatch.%d", path, time.Now().UnixMilli())
			if err := os.Rename(path, backup); err != nil {
				return nil, fmt.Errorf("rotate schema-mismatched log %s: %w", path, err)
			}
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	a := &Appender{
		path:      path,
		file:      file,
		w:         csv.NewWriter(file),
		lastFlush: time.Now(),
	}

	if info.Size() == 0 {
		if err := a.w.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("write header %s: %w", path, err)
		}
		a.w.Flush()
		if err := a.w.Error(); err != nil {
			file.Close()
			return nil, fmt.Errorf("flush header %s: %w", path, err)
		}
	}

	return a, nil
}

// Append writes one record and flushes when the pending count or elapsed
// time exceeds the flush policy.
func (a *Appender) Append(record []string) error {
	if err := a.w.Write(record); err != nil {
		return fmt.Errorf("append %s: %w", a.path, err)
	}
	a.pending++

	if a.pending >= flushEveryRecords || time.Since(a.lastFlush) >= flushEvery {
		return a.Flush()
	}
	return nil
}

// Flush forces buffered records to the file.
func (a *Appender) Flush() error {
	a.w.Flush()
	if err := a.w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", a.path, err)
	}
	a.pending = 0
	a.lastFlush = time.Now()
	return nil
}

// Close flushes, syncs and closes the underlying file.
func (a *Appender) Close() error {
	if err := a.Flush(); err != nil {
		a.file.Close()
		return err
	}
	if err := a.file.Sync(); err != nil {
		a.file.Close()
		return fmt.Errorf("sync %s: %w", a.path, err)
	}
	return a.file.Close()
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimRight(scanner.Text(), "\r\n"), nil
}
