package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hupe1980/cohort/record"
)

var (
	errNotFinite = errors.New("feature is not a finite number")
	errNoColumns = errors.New("header has no columns")
)

// Table is a parsed dataset together with its column names.
type Table struct {
	// Dataset holds the parsed entities.
	Dataset *record.Dataset
	// Features names the feature columns in order.
	Features []string
	// Label names the label column.
	Label string
}

type readOptions struct {
	delimiter rune
}

// ReadOption configures Read.
type ReadOption func(*readOptions)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) ReadOption {
	return func(o *readOptions) {
		o.delimiter = r
	}
}

// Read parses a CSV dataset from r.
func Read(r io.Reader, optFns ...ReadOption) (*record.Dataset, error) {
	t, err := ReadTable(r, optFns...)
	if err != nil {
		return nil, err
	}
	return t.Dataset, nil
}

// ReadTable parses a CSV dataset from r and keeps the header names.
func ReadTable(r io.Reader, optFns ...ReadOption) (*Table, error) {
	opts := readOptions{delimiter: ','}
	for _, fn := range optFns {
		fn(&opts)
	}

	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, record.ErrEmptyDataset
		}
		return nil, err
	}

	// Cells are loaded as strings so that parse failures can be reported
	// with their position instead of silently becoming NaN.
	df := dataframe.ReadCSV(br,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithDelimiter(opts.delimiter),
	)
	if df.Err != nil {
		return nil, csvError(df.Err)
	}

	rows := df.Records()
	names := rows[0]
	if len(names) == 0 {
		return nil, &ErrMalformedRecord{Line: 1, Err: errNoColumns}
	}
	dim := len(names) - 1

	entities := make([]record.Entity, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		features := make([]float64, dim)
		for j := 0; j < dim; j++ {
			v, err := parseFeature(row[j])
			if err != nil {
				return nil, &ErrMalformedRecord{Line: line, Column: j + 1, Value: row[j], Err: err}
			}
			features[j] = v
		}
		label, err := strconv.ParseUint(strings.TrimSpace(row[dim]), 10, 8)
		if err != nil {
			return nil, &ErrMalformedRecord{Line: line, Column: dim + 1, Value: row[dim], Err: err}
		}
		entities = append(entities, record.Entity{Features: features, Label: uint8(label)})
	}

	ds, err := record.NewDataset(entities)
	if err != nil {
		return nil, err
	}
	return &Table{
		Dataset:  ds,
		Features: append([]string(nil), names[:dim]...),
		Label:    names[dim],
	}, nil
}

func parseFeature(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ErrMalformedRecord{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}
