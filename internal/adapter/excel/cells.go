package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

type column string

// header maps a canonical column to its index in the sheet.
type header map[column]int

func normalize(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// readHeader resolves the header row against aliases. Every required
// column must be present.
func readHeader(row []string, aliases map[string]column, required []column) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		if col, ok := aliases[normalize(name)]; ok {
			if _, dup := h[col]; !dup {
				h[col] = i
			}
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingColumn, col)
		}
	}
	return h, nil
}

// record is one data row with its 1-based sheet row number.
type record struct {
	h     header
	cells []string
	num   int
}

func (r record) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r record) has(col column) bool {
	_, ok := r.h[col]
	return ok
}

func (r record) str(col column) string {
	i, ok := r.h[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r record) malformed(col column, err error) error {
	return fmt.Errorf("%w: row %d column %s: %v", types.ErrMalformedCell, r.num, col, err)
}

func (r record) float(col column) (float64, error) {
	s := r.str(col)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, r.malformed(col, err)
	}
	return v, nil
}

// optionalFloat reports false for an empty cell.
func (r record) optionalFloat(col column) (float64, bool, error) {
	if r.str(col) == "" {
		return 0, false, nil
	}
	v, err := r.float(col)
	return v, err == nil, err
}

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"02.01.2006",
}

// date accepts Excel serial dates and the common text layouts.
func (r record) date(col column) (time.Time, error) {
	s := r.str(col)
	if s == "" {
		return time.Time{}, r.malformed(col, fmt.Errorf("empty date"))
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, r.malformed(col, err)
		}
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, r.malformed(col, fmt.Errorf("unrecognized date %q", s))
}

// each walks data rows after the header, skipping blank ones.
func each(all [][]string, h header, fn func(r record) error) error {
	for i, cells := range all[1:] {
		r := record{h: h, cells: cells, num: i + 2}
		if r.blank() {
			continue
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
