// Package dataset loads point sets from delimited text files.
//
// The expected layout is one header row followed by one row per point, with
// at least the id, latitude and longitude columns. The configured delimiter
// (";" by default) is tried first; if the header then lacks a required column
// the delimiter is sniffed from the first lines and the data parsed again.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/tourlab/geo"
)

// DefaultRequiredColumns are checked when Options.RequiredColumns is nil.
var DefaultRequiredColumns = []string{
	"id", "region", "municipality", "settlement", "type", "latitude_dd", "longitude_dd",
}

// sniffCandidates are the delimiters SniffDelimiter chooses from, in tie order.
var sniffCandidates = []rune{',', ';', '\t', '|'}

// sniffLines is how many leading lines SniffDelimiter inspects.
const sniffLines = 5

var (
	ErrNoHeader       = errors.New("dataset: missing header row")
	ErrMissingColumns = errors.New("dataset: missing required columns")
	ErrBadID          = errors.New("dataset: id is not an integer")
	ErrDuplicateID    = errors.New("dataset: duplicate id")
	ErrBadCoordinate  = errors.New("dataset: coordinate is not a finite number")
)

// Options configures parsing. The zero value uses the defaults below.
type Options struct {
	// Delimiter is tried first (default ';').
	Delimiter rune

	// RequiredColumns must all be present in the header (nil ⇒ DefaultRequiredColumns).
	RequiredColumns []string

	// IDColumn, LatColumn, LonColumn name the columns that make up a point
	// (defaults "id", "latitude_dd", "longitude_dd").
	IDColumn  string
	LatColumn string
	LonColumn string

	// ScaleDegrees divides both coordinates by 100.
	ScaleDegrees bool
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ';'
	}
	if o.RequiredColumns == nil {
		o.RequiredColumns = DefaultRequiredColumns
	}
	if o.IDColumn == "" {
		o.IDColumn = "id"
	}
	if o.LatColumn == "" {
		o.LatColumn = "latitude_dd"
	}
	if o.LonColumn == "" {
		o.LonColumn = "longitude_dd"
	}

	return o
}

// Record is one data row with every column kept by name.
type Record struct {
	ID     int64
	Fields map[string]string
}

// Get returns the value of column name (empty if absent).
func (r Record) Get(name string) string { return r.Fields[name] }

// Dataset is a parsed point file. Points[i] and Records[i] describe the same row.
type Dataset struct {
	Header    []string
	Delimiter rune
	Points    []geo.Point
	Records   []Record
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.Points) }

// IDs returns the point identifiers in file order.
func (d *Dataset) IDs() []int64 { return geo.IDs(d.Points) }

// Load reads and parses the file at path.
func Load(path string, opts Options) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	ds, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// Parse parses an in-memory file.
func Parse(data []byte, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	rows, err := readAll(data, opts.Delimiter)
	if err == nil && len(missing(rows, opts)) == 0 {
		return build(rows, opts.Delimiter, opts)
	}

	// Wrong delimiter (or a parse error caused by one): sniff and retry.
	sniffed := SniffDelimiter(data)
	if sniffed != opts.Delimiter {
		if rows2, err2 := readAll(data, sniffed); err2 == nil {
			if len(missing(rows2, opts)) == 0 {
				return build(rows2, sniffed, opts)
			}
			rows, err = rows2, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing(rows, opts), ", "))
}

// SniffDelimiter picks the candidate delimiter that splits the first lines into
// the same number (>1) of fields most often; ',' if none qualifies.
func SniffDelimiter(data []byte) rune {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() && len(lines) < sniffLines {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ','
	}

	var (
		best      = ','
		bestCount = 0
	)
	for _, c := range sniffCandidates {
		count := strings.Count(lines[0], string(c))
		if count == 0 || count <= bestCount {
			continue
		}
		consistent := true
		for _, l := range lines[1:] {
			if strings.Count(l, string(c)) != count {
				consistent = false
				break
			}
		}
		if consistent {
			best, bestCount = c, count
		}
	}

	return best
}

func readAll(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = false

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

// missing lists required columns absent from the header row.
func missing(rows [][]string, opts Options) []string {
	if len(rows) == 0 {
		return opts.RequiredColumns
	}
	have := make(map[string]bool, len(rows[0]))
	for _, h := range rows[0] {
		have[strings.TrimSpace(h)] = true
	}
	var out []string
	for _, c := range append(append([]string{}, opts.RequiredColumns...), opts.IDColumn, opts.LatColumn, opts.LonColumn) {
		if !have[c] && !contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}

func build(rows [][]string, delim rune, opts Options) (*Dataset, error) {
	header := make([]string, len(rows[0]))
	col := make(map[string]int, len(header))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		col[header[i]] = i
	}

	var (
		idCol  = col[opts.IDColumn]
		latCol = col[opts.LatColumn]
		lonCol = col[opts.LonColumn]
		scale  = 1.0
		seen   = make(map[int64]int, len(rows))
		ds     = &Dataset{
			Header:    header,
			Delimiter: delim,
			Points:    make([]geo.Point, 0, len(rows)-1),
			Records:   make([]Record, 0, len(rows)-1),
		}
	)
	if opts.ScaleDegrees {
		scale = 100
	}

	for i, row := range rows[1:] {
		line := i + 2
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		id, err := strconv.ParseInt(field(row, idCol), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadID, line, field(row, idCol))
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: line %d: %d (first on line %d)", ErrDuplicateID, line, id, prev)
		}
		seen[id] = line

		lat, err := parseCoord(field(row, latCol))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrBadCoordinate, line, opts.LatColumn)
		}
		lon, err := parseCoord(field(row, lonCol))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrBadCoordinate, line, opts.LonColumn)
		}

		fields := make(map[string]string, len(header))
		for j, h := range header {
			fields[h] = field(row, j)
		}
		ds.Points = append(ds.Points, geo.Point{ID: id, X: lon / scale, Y: lat / scale})
		ds.Records = append(ds.Records, Record{ID: id, Fields: fields})
	}

	return ds, nil
}

func field(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}

	return ""
}

// parseCoord accepts "." or "," as the decimal separator.
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrBadCoordinate
	}

	return v, nil
}
