// Package metric implements the averaged total survey error formulas. Every
// metric follows the same reduction pattern: an elementwise error transform of
// paired actual and weighted survey columns, a per-column reduction to one
// value per column, and a final mean across columns.
package metric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrUnknownKind      = errors.New("unknown metric kind")
	ErrColCountMismatch = errors.New("actual and weighted survey have different column counts")
	ErrLenMismatch      = errors.New("actual and weighted survey columns have different lengths")
	ErrNoColumns        = errors.New("no columns to reduce")
	ErrNoRows           = errors.New("column has no rows")
	ErrLogDomain        = errors.New("logarithm of a non-positive quantity")
	ErrZeroDenominator  = errors.New("zero denominator in relative error")
	ErrDecomposition    = errors.New("bias-variance decomposition does not sum to the mean squared error")
)

// Kind identifies one averaged survey error metric.
type Kind string

const (
	MAE   Kind = "aMAE"
	MSE   Kind = "aMSE"
	RMSE  Kind = "aRMSE"
	MSLE  Kind = "aMSLE"
	RMSLE Kind = "aRMSLE"
	MAPE  Kind = "aMAPE"
	SMAPE Kind = "aSMAPE"
	RAE   Kind = "aRAE"
	RSE   Kind = "aRSE"
	RRSE  Kind = "aRRSE"
)

// ScaleDependent returns the metric kinds expressed in the units of the
// underlying variable, in report order.
func ScaleDependent() []Kind {
	return []Kind{MAE, MSE, RMSE, MSLE, RMSLE}
}

// ScaleIndependent returns the normalized metric kinds comparable across
// variables of different scale, in report order.
func ScaleIndependent() []Kind {
	return []Kind{MAPE, SMAPE, RAE, RSE, RRSE}
}

// ParseKind maps a metric name such as "aMAE" to its Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := reductions[k]; !ok {
		return "", fmt.Errorf("%q, %w", s, ErrUnknownKind)
	}
	return k, nil
}

// Options controls formula level behavior.
type Options struct {
	// PropagateNonFinite reports ±Inf/NaN for zero denominators in
	// aMAPE/aRAE/aRSE/aRRSE instead of failing with ErrZeroDenominator.
	// The 0/0 case of aSMAPE is always defined as 0 regardless of policy.
	PropagateNonFinite bool
}

// columnStat reduces one pair of equal-length columns to a single value.
type columnStat func(actual, weighted []float64, opt *Options) (float64, error)

var reductions = map[Kind]columnStat{
	MAE:   maeCol,
	MSE:   mseCol,
	RMSE:  rmseCol,
	MSLE:  msleCol,
	RMSLE: rmsleCol,
	MAPE:  mapeCol,
	SMAPE: smapeCol,
	RAE:   raeCol,
	RSE:   rseCol,
	RRSE:  rrseCol,
}

// Eval computes one averaged metric over paired actual and weighted survey
// columns. The per-column reduction runs for every column pair and the final
// value is the mean of the per-column values.
func Eval(kind Kind, actual, weighted [][]float64, opt *Options) (float64, error) {
	if opt == nil {
		opt = &Options{}
	}
	reduce, ok := reductions[kind]
	if !ok {
		return 0, fmt.Errorf("%q, %w", kind, ErrUnknownKind)
	}
	perCol, err := reduceColumns(actual, weighted, opt, reduce)
	if err != nil {
		return 0, err
	}
	return stat.Mean(perCol, nil), nil
}

// Components holds the bias-variance decomposition of the averaged mean
// squared error for one weighting scheme.
type Components struct {
	Total    float64 `json:"total"`
	BiasSq   float64 `json:"bias_sq"`
	Variance float64 `json:"variance"`
}

// decompositionTol bounds the per-column numeric drift allowed between
// mean(d²) and mean(d)² + var(d).
const decompositionTol = 1e-6

// Decompose computes aMSE along with its bias² and variance components. The
// per-column identity mse = bias² + var is verified numerically before the
// across-column averaging.
func Decompose(actual, weighted [][]float64) (Components, error) {
	if err := checkShape(actual, weighted); err != nil {
		return Components{}, err
	}

	totals := make([]float64, len(actual))
	biases := make([]float64, len(actual))
	variances := make([]float64, len(actual))
	for j := range actual {
		d := residual(actual[j], weighted[j])
		dBar := stat.Mean(d, nil)

		var sqSum, varSum float64
		for _, v := range d {
			sqSum += v * v
			dev := v - dBar
			varSum += dev * dev
		}
		n := float64(len(d))
		totals[j] = sqSum / n
		biases[j] = dBar * dBar
		variances[j] = varSum / n

		drift := math.Abs(totals[j] - (biases[j] + variances[j]))
		if drift > decompositionTol*math.Max(1.0, math.Abs(totals[j])) {
			return Components{}, fmt.Errorf("column %d drifts by %g, %w", j, drift, ErrDecomposition)
		}
	}
	return Components{
		Total:    stat.Mean(totals, nil),
		BiasSq:   stat.Mean(biases, nil),
		Variance: stat.Mean(variances, nil),
	}, nil
}

func reduceColumns(actual, weighted [][]float64, opt *Options, reduce columnStat) ([]float64, error) {
	if err := checkShape(actual, weighted); err != nil {
		return nil, err
	}
	perCol := make([]float64, len(actual))
	for j := range actual {
		v, err := reduce(actual[j], weighted[j], opt)
		if err != nil {
			return nil, fmt.Errorf("column %d, %w", j, err)
		}
		perCol[j] = v
	}
	return perCol, nil
}

func checkShape(actual, weighted [][]float64) error {
	if len(actual) != len(weighted) {
		return fmt.Errorf("actual has %d columns, weighted survey has %d, %w", len(actual), len(weighted), ErrColCountMismatch)
	}
	if len(actual) == 0 {
		return ErrNoColumns
	}
	for j := range actual {
		if len(actual[j]) != len(weighted[j]) {
			return fmt.Errorf("column %d, %w", j, ErrLenMismatch)
		}
		if len(actual[j]) == 0 {
			return fmt.Errorf("column %d, %w", j, ErrNoRows)
		}
	}
	return nil
}

func residual(actual, weighted []float64) []float64 {
	d := make([]float64, len(actual))
	for i := range actual {
		d[i] = actual[i] - weighted[i]
	}
	return d
}

func maeCol(actual, weighted []float64, _ *Options) (float64, error) {
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - weighted[i])
	}
	return sum / float64(len(actual)), nil
}

func mseCol(actual, weighted []float64, _ *Options) (float64, error) {
	var sum float64
	for i := range actual {
		d := actual[i] - weighted[i]
		sum += d * d
	}
	return sum / float64(len(actual)), nil
}

// rmseCol takes the root per column before the across-column averaging, so the
// averaged value is generally not sqrt(aMSE).
func rmseCol(actual, weighted []float64, opt *Options) (float64, error) {
	mse, err := mseCol(actual, weighted, opt)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

func msleCol(actual, weighted []float64, _ *Options) (float64, error) {
	var sum float64
	for i := range actual {
		if actual[i]+1.0 <= 0 {
			return 0, fmt.Errorf("actual value %g at row %d, %w", actual[i], i, ErrLogDomain)
		}
		if weighted[i]+1.0 <= 0 {
			return 0, fmt.Errorf("weighted survey value %g at row %d, %w", weighted[i], i, ErrLogDomain)
		}
		l := math.Log1p(actual[i]) - math.Log1p(weighted[i])
		sum += l * l
	}
	return sum / float64(len(actual)), nil
}

func rmsleCol(actual, weighted []float64, opt *Options) (float64, error) {
	msle, err := msleCol(actual, weighted, opt)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(msle), nil
}

func mapeCol(actual, weighted []float64, opt *Options) (float64, error) {
	var sum float64
	for i := range actual {
		if actual[i] == 0 && !opt.PropagateNonFinite {
			return 0, fmt.Errorf("actual value at row %d, %w", i, ErrZeroDenominator)
		}
		sum += math.Abs(actual[i]-weighted[i]) / actual[i]
	}
	return sum / float64(len(actual)), nil
}

func smapeCol(actual, weighted []float64, _ *Options) (float64, error) {
	var sum float64
	for i := range actual {
		den := math.Abs(actual[i]) + math.Abs(weighted[i])
		if den == 0 {
			// 0/0 is defined as a perfect match
			continue
		}
		sum += 2.0 * math.Abs(actual[i]-weighted[i]) / den
	}
	return sum / float64(len(actual)), nil
}

// raeCol divides the total absolute error by the total absolute deviation of
// actual from its own mean, the naive predictor baseline.
func raeCol(actual, weighted []float64, opt *Options) (float64, error) {
	aBar := stat.Mean(actual, nil)
	var num, den float64
	for i := range actual {
		num += math.Abs(actual[i] - weighted[i])
		den += math.Abs(actual[i] - aBar)
	}
	if den == 0 && !opt.PropagateNonFinite {
		return 0, fmt.Errorf("naive predictor baseline, %w", ErrZeroDenominator)
	}
	return num / den, nil
}

func rseCol(actual, weighted []float64, opt *Options) (float64, error) {
	aBar := stat.Mean(actual, nil)
	var num, den float64
	for i := range actual {
		d := actual[i] - weighted[i]
		num += d * d
		dev := actual[i] - aBar
		den += dev * dev
	}
	if den == 0 && !opt.PropagateNonFinite {
		return 0, fmt.Errorf("naive predictor baseline, %w", ErrZeroDenominator)
	}
	return num / den, nil
}

func rrseCol(actual, weighted []float64, opt *Options) (float64, error) {
	rse, err := rseCol(actual, weighted, opt)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(rse), nil
}
