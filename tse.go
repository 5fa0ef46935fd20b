// Package tse computes averaged total survey error metrics comparing a gold
// standard reference dataset against a surveyed dataset, unweighted and under
// an arbitrary number of weighting schemes.
package tse

import (
	"errors"
	"fmt"

	"github.com/surveytse/tse/columnset"
	"github.com/surveytse/tse/metric"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrDimensionMismatch = errors.New("actual, survey, and weight dimensions disagree")
	ErrNoData            = errors.New("no columns in actual or survey")
)

// Engine computes averaged metrics for every weighting scheme. Scheme 0 is
// always the unweighted baseline and runs through the same weighted pipeline
// with identity weights, so the unweighted values and a caller-supplied
// all-ones scheme are computed by the exact same code path.
type Engine struct {
	opt *Options

	actual  *columnset.ColumnSet
	survey  *columnset.ColumnSet
	weights []*columnset.ColumnSet
}

// New creates an Engine over an actual and survey ColumnSet along with zero or
// more weighting schemes. Actual and survey must share the same shape with
// columns paired by position, and every weighting scheme must match the survey
// shape. If no options are provided a default is used.
func New(actual, survey *columnset.ColumnSet, weights []*columnset.ColumnSet, opt *Options) (*Engine, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if actual == nil {
		return nil, fmt.Errorf("actual, %w", columnset.ErrUninitializedSet)
	}
	if survey == nil {
		return nil, fmt.Errorf("survey, %w", columnset.ErrUninitializedSet)
	}

	am, an := actual.Shape()
	sm, sn := survey.Shape()
	if an == 0 {
		return nil, ErrNoData
	}
	if am != sm || an != sn {
		return nil, fmt.Errorf("actual is %dx%d but survey is %dx%d, %w", am, an, sm, sn, ErrDimensionMismatch)
	}
	for k, w := range weights {
		if w == nil {
			return nil, fmt.Errorf("weighting scheme %d, %w", k+1, columnset.ErrUninitializedSet)
		}
		wm, wn := w.Shape()
		if wm != sm || wn != sn {
			return nil, fmt.Errorf("weighting scheme %d is %dx%d but survey is %dx%d, %w", k+1, wm, wn, sm, sn, ErrDimensionMismatch)
		}
	}

	return &Engine{
		opt:     opt,
		actual:  actual,
		survey:  survey,
		weights: weights,
	}, nil
}

// SchemeLabel returns the display label for scheme k where 0 is the
// unweighted baseline.
func SchemeLabel(k int) string {
	if k == 0 {
		return "unweighted"
	}
	return fmt.Sprintf("weighting scheme %d", k)
}

// weightedSurvey applies scheme k elementwise to the survey columns. Scheme 0
// multiplies by identity weights rather than short-circuiting so every scheme
// shares one pipeline.
func (e *Engine) weightedSurvey(k int) ([][]float64, error) {
	m, n := e.survey.Shape()

	var w *columnset.ColumnSet
	if k == 0 {
		ones, err := columnset.Ones(m, n)
		if err != nil {
			return nil, err
		}
		w = ones
	} else {
		w = e.weights[k-1]
	}

	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		sCol, err := e.survey.Col(j)
		if err != nil {
			return nil, err
		}
		wCol, err := w.Col(j)
		if err != nil {
			return nil, err
		}
		dst := make([]float64, m)
		floats.MulTo(dst, sCol, wCol)
		cols[j] = dst
	}
	return cols, nil
}

// run derives the weighted survey once per scheme and evaluates every
// requested metric against that single derivation, so all metrics of a report
// see the exact same weighted values.
func (e *Engine) run(kinds []metric.Kind) (*Result, error) {
	actualCols := e.actual.Cols()

	schemes := make([]SchemeResult, 0, len(e.weights)+1)
	for k := 0; k <= len(e.weights); k++ {
		weighted, err := e.weightedSurvey(k)
		if err != nil {
			return nil, fmt.Errorf("unable to weight survey for %s, %w", SchemeLabel(k), err)
		}

		row := SchemeResult{
			Label:  SchemeLabel(k),
			Values: make(map[metric.Kind]float64, len(kinds)),
		}
		for _, kind := range kinds {
			if kind == metric.MSE {
				comp, err := metric.Decompose(actualCols, weighted)
				if err != nil {
					return nil, fmt.Errorf("%s for %s, %w", kind, row.Label, err)
				}
				row.Values[kind] = comp.Total
				row.MSE = &comp
				continue
			}
			v, err := metric.Eval(kind, actualCols, weighted, e.opt.Metric)
			if err != nil {
				return nil, fmt.Errorf("%s for %s, %w", kind, row.Label, err)
			}
			row.Values[kind] = v
		}
		schemes = append(schemes, row)
	}

	return &Result{
		Metrics: kinds,
		Schemes: schemes,
	}, nil
}

// Ave computes a single averaged metric for the unweighted baseline and every
// weighting scheme.
func (e *Engine) Ave(kind metric.Kind) (*Result, error) {
	if _, err := metric.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	return e.run([]metric.Kind{kind})
}

func (e *Engine) AveMAE() (*Result, error) { return e.Ave(metric.MAE) }

// AveMSE includes the bias² and variance decomposition per scheme.
func (e *Engine) AveMSE() (*Result, error) { return e.Ave(metric.MSE) }

func (e *Engine) AveRMSE() (*Result, error) { return e.Ave(metric.RMSE) }

func (e *Engine) AveMSLE() (*Result, error) { return e.Ave(metric.MSLE) }

func (e *Engine) AveRMSLE() (*Result, error) { return e.Ave(metric.RMSLE) }

func (e *Engine) AveMAPE() (*Result, error) { return e.Ave(metric.MAPE) }

func (e *Engine) AveSMAPE() (*Result, error) { return e.Ave(metric.SMAPE) }

func (e *Engine) AveRAE() (*Result, error) { return e.Ave(metric.RAE) }

func (e *Engine) AveRSE() (*Result, error) { return e.Ave(metric.RSE) }

func (e *Engine) AveRRSE() (*Result, error) { return e.Ave(metric.RRSE) }

// FullScaleDependent computes aMAE, aMSE with decomposition, aRMSE, aMSLE, and
// aRMSLE in one pass sharing a single weighted survey derivation per scheme.
func (e *Engine) FullScaleDependent() (*Result, error) {
	return e.run(metric.ScaleDependent())
}

// FullScaleIndependent computes aMAPE, aSMAPE, aRAE, aRSE, and aRRSE in one
// pass sharing a single weighted survey derivation per scheme.
func (e *Engine) FullScaleIndependent() (*Result, error) {
	return e.run(metric.ScaleIndependent())
}
