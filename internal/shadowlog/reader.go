// Package shadowlog reads and appends the shadow_log.csv on-disk format.
package shadowlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"polymarket-shadow-lab/internal/domain"
)

// Required report columns. The log may carry any number of extra columns
// (leg prices, fills, notes); they are ignored here.
const (
	colPnLTotal = "pnl_total"
	colQSet     = "q_set"
	colQReq     = "q_req"
	colBucket   = "bucket"
	colStrategy = "strategy"
)

// ReadFile reads a shadow log from path. See Read.
func ReadFile(path string) ([]domain.ShadowRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shadow log: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read parses shadow records from CSV input. The first row is a header that
// must name all required columns; rows are parsed strictly, with no
// partial-record tolerance: a missing or non-numeric field aborts the read.
func Read(r io.Reader) ([]domain.ShadowRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.ShadowRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndex maps each required column to its position in the header.
type columnIndex struct {
	pnlTotal int
	qSet     int
	qReq     int
	bucket   int
	strategy int
}

func resolveColumns(header []string) (*columnIndex, error) {
	find := func(name string) (int, error) {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("missing required column: %s", name)
	}

	var cols columnIndex
	var err error
	if cols.pnlTotal, err = find(colPnLTotal); err != nil {
		return nil, err
	}
	if cols.qSet, err = find(colQSet); err != nil {
		return nil, err
	}
	if cols.qReq, err = find(colQReq); err != nil {
		return nil, err
	}
	if cols.bucket, err = find(colBucket); err != nil {
		return nil, err
	}
	if cols.strategy, err = find(colStrategy); err != nil {
		return nil, err
	}
	return &cols, nil
}

func parseRow(row []string, cols *columnIndex) (domain.ShadowRecord, error) {
	var rec domain.ShadowRecord
	var err error

	if rec.PnLTotal, err = parseFloat(row, cols.pnlTotal, colPnLTotal); err != nil {
		return rec, err
	}
	if rec.QSet, err = parseFloat(row, cols.qSet, colQSet); err != nil {
		return rec, err
	}
	if rec.QReq, err = parseFloat(row, cols.qReq, colQReq); err != nil {
		return rec, err
	}

	rec.Bucket, err = field(row, cols.bucket, colBucket)
	if err != nil {
		return rec, err
	}
	rec.Strategy, err = field(row, cols.strategy, colStrategy)
	if err != nil {
		return rec, err
	}
	return rec, nil
}

func field(row []string, idx int, name string) (string, error) {
	if idx >= len(row) {
		return "", fmt.Errorf("missing field %s", name)
	}
	return strings.TrimSpace(row[idx]), nil
}

func parseFloat(row []string, idx int, name string) (float64, error) {
	s, err := field(row, idx, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s %q: not finite", name, s)
	}
	return v, nil
}
