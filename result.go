package tse

import (
	"github.com/goccy/go-json"
	"github.com/surveytse/tse/metric"
)

// SchemeResult holds the averaged metric values for one weighting scheme.
// MSE is set when the aMSE decomposition was requested.
type SchemeResult struct {
	Label  string                  `json:"scheme"`
	Values map[metric.Kind]float64 `json:"values"`
	MSE    *metric.Components      `json:"mse_decomposition,omitempty"`
}

// Result is the numeric outcome of one operation: one row per weighting
// scheme with the unweighted baseline first, one value per requested metric.
// Presentation lives in the table layer, so Result stays directly usable in
// further computation and in tests.
type Result struct {
	Metrics []metric.Kind  `json:"metrics"`
	Schemes []SchemeResult `json:"schemes"`
}

// JSON serializes the result with indentation.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
