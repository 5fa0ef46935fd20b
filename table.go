package tse

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/surveytse/tse/metric"
)

// sigDigits is the fixed significant-digit precision of rendered values.
const sigDigits = 7

// FormatValue renders a metric value as a display string with a fixed
// significant-digit precision. Rendered strings are a report artifact and are
// never parsed back into numbers.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', sigDigits, 64)
}

// headers returns the ordered metric column headers. aMSE expands into three
// adjacent sub-columns for the total, bias², and variance components.
func (r *Result) headers() []string {
	headers := make([]string, 0, len(r.Metrics)+2)
	headers = append(headers, "scheme")
	for _, kind := range r.Metrics {
		if kind == metric.MSE {
			headers = append(headers, string(metric.MSE), "· bias²", "· var")
			continue
		}
		headers = append(headers, string(kind))
	}
	return headers
}

// rows returns the display rows in scheme order, unweighted first.
func (r *Result) rows() [][]string {
	rows := make([][]string, 0, len(r.Schemes))
	for _, s := range r.Schemes {
		row := make([]string, 0, len(r.Metrics)+2)
		row = append(row, s.Label)
		for _, kind := range r.Metrics {
			if kind == metric.MSE && s.MSE != nil {
				row = append(row,
					FormatValue(s.MSE.Total),
					FormatValue(s.MSE.BiasSq),
					FormatValue(s.MSE.Variance),
				)
				continue
			}
			row = append(row, FormatValue(s.Values[kind]))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTable renders the result as a terminal table with one row per
// weighting scheme.
func (r *Result) WriteTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(r.headers())
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(r.rows()); err != nil {
		return err
	}
	return table.Render()
}

// WriteCSV writes the formatted result rows as CSV with a header record.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(r.headers()); err != nil {
		return err
	}
	for _, row := range r.rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) String() string {
	var sb strings.Builder
	if err := r.WriteTable(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}
