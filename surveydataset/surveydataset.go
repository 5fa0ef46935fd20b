// Package surveydataset assembles the aligned actual, survey, and weight
// column sets consumed by the metric engine from tabular sources.
package surveydataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/surveytse/tse/columnset"
)

var (
	ErrMissingColumn = errors.New("column not found in header")
	ErrNoHeader      = errors.New("no header record")
	ErrNoRecords     = errors.New("no data records")
)

// SurveyDataset bundles the three aligned inputs of the metric engine. Actual
// and Survey are paired by column position, and each weight set pairs
// positionally with Survey.
type SurveyDataset struct {
	Actual  *columnset.ColumnSet
	Survey  *columnset.ColumnSet
	Weights []*columnset.ColumnSet
}

// ColumnSpec names which header columns feed each column set. Every entry in
// Weights describes one weighting scheme and must name as many columns as
// Survey does.
type ColumnSpec struct {
	Actual  []string
	Survey  []string
	Weights [][]string
}

// FromCSV reads a headered CSV stream and assembles the named columns into a
// SurveyDataset. All named columns must exist in the header and every cell of
// a named column must parse as a float.
func FromCSV(r io.Reader, spec ColumnSpec) (*SurveyDataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv records, %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	header := records[0]
	data := records[1:]
	if len(data) == 0 {
		return nil, ErrNoRecords
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	pull := func(names []string) (*columnset.ColumnSet, error) {
		cols := make([][]float64, len(names))
		for j, name := range names {
			c, ok := idx[name]
			if !ok {
				return nil, fmt.Errorf("%q, %w", name, ErrMissingColumn)
			}
			col := make([]float64, len(data))
			for i, rec := range data {
				v, err := strconv.ParseFloat(rec[c], 64)
				if err != nil {
					return nil, fmt.Errorf("row %d column %q, %w", i+2, name, err)
				}
				col[i] = v
			}
			cols[j] = col
		}
		return columnset.New(names, cols)
	}

	actual, err := pull(spec.Actual)
	if err != nil {
		return nil, fmt.Errorf("actual columns, %w", err)
	}
	survey, err := pull(spec.Survey)
	if err != nil {
		return nil, fmt.Errorf("survey columns, %w", err)
	}
	weights := make([]*columnset.ColumnSet, 0, len(spec.Weights))
	for k, names := range spec.Weights {
		w, err := pull(names)
		if err != nil {
			return nil, fmt.Errorf("weighting scheme %d, %w", k+1, err)
		}
		weights = append(weights, w)
	}

	return &SurveyDataset{
		Actual:  actual,
		Survey:  survey,
		Weights: weights,
	}, nil
}
