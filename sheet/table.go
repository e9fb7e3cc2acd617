/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package sheet reads the league's Games and Players tables from spreadsheet
// exports and links each game's team slots to player rows.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/mikeb26/foosstats/foos"
	"github.com/xuri/excelize/v2"
)

type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

func (f Format) String() string {
	if f == FormatCSV {
		return "csv"
	} else if f == FormatXLSX {
		return "xlsx"
	} else {
		return "?"
	}
}

// FormatOf infers the export format from a path or URL's extension.
// Anything that is not an Excel workbook is read as CSV.
func FormatOf(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// Table is one sheet of an export. Every record has an entry for every
// header column.
type Table struct {
	Name   string
	Header []string
	Rows   []foos.Record
}

// ReadXLSX reads the named sheet of a workbook, or its first sheet when
// sheetName is empty.
func ReadXLSX(r io.Reader, sheetName string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("XLSX file has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return newTable(sheetName, rows)
}

// ReadCSV reads a CSV export. Rows may have differing lengths.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return newTable("", rows)
}

func newTable(name string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Name: name, Header: header}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(foos.Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
