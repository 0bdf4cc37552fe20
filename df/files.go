package df

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// All code interacting with files is here

const (
	Sep    = ','
	Strict = true
)

// Missing are the default strings that denote a missing value.
var Missing = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// Files reads delimited text files with a header row.
type Files struct {
	FieldNames []string
	Sep        rune
	Missing    []string
	Strict     bool

	file     *os.File
	fileName string
}

type FileOpt func(f *Files) error

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:     Sep,
		Missing: Missing,
		Strict:  Strict,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// *********** Options ***********

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '\n' || sep == '\r' || sep == '"' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

// FileMissing replaces the strings that are read as missing values.
func FileMissing(vals ...string) FileOpt {
	return func(f *Files) error {
		f.Missing = vals
		return nil
	}
}

// FileStrict requires every row to have the same number of fields as the header.
// If false, short rows are padded with missing values and long rows are an error.
func FileStrict(strict bool) FileOpt {
	return func(f *Files) error {
		f.Strict = strict
		return nil
	}
}

// *********** Methods ***********

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// FileLoad reads the open file in f into a DF and closes it. Column types are imputed from the data.
func FileLoad(f *Files) (*DF, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open file in FileLoad")
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f.file, f)
}

// ReadCSV reads delimited data from r using the settings in f.
func ReadCSV(r io.Reader, f *Files) (*DF, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep
	rdr.FieldsPerRecord = -1

	var (
		header []string
		e      error
	)
	if header, e = rdr.Read(); e != nil {
		if e == io.EOF {
			return nil, fmt.Errorf("%s: no header row", f.fileName)
		}

		return nil, e
	}

	for ind, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if has(h, header[:ind]) {
			return nil, fmt.Errorf("duplicate field name %s", h)
		}
		header[ind] = h
	}

	raw := make([][]string, len(header))
	missing := make([][]bool, len(header))
	for line := 2; ; line++ {
		var row []string
		if row, e = rdr.Read(); e == io.EOF {
			break
		}

		if e != nil {
			return nil, e
		}

		if len(row) > len(header) || (f.Strict && len(row) != len(header)) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(row))
		}

		for ind := range header {
			val := ""
			if ind < len(row) {
				val = strings.TrimSpace(row[ind])
			}

			raw[ind] = append(raw[ind], val)
			missing[ind] = append(missing[ind], has(val, f.Missing))
		}
	}

	if len(raw) == 0 || len(raw[0]) == 0 {
		return nil, fmt.Errorf("%s: no data rows", f.fileName)
	}

	var cols []Column
	for ind, name := range header {
		var (
			data any
			col  *Col
		)

		if data, e = toSlc(raw[ind], missing[ind], bestType(raw[ind], missing[ind])); e != nil {
			return nil, fmt.Errorf("field %s: %w", name, e)
		}

		if col, e = NewCol(data, ColName(name)); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	f.FieldNames = header

	return NewDF(cols...)
}
