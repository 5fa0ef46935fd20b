package surveydataset

import "github.com/surveytse/tse/columnset"

// TestWeight returns a synthetic dataset equivalent to the TESTWGT example of
// the reference implementation: actual columns A1 and A2, survey columns Q1
// and Q2, and two per-row weight variables W1 and W2. Each weight variable
// forms one weighting scheme and is broadcast across both survey columns so
// the scheme shape matches the survey shape.
func TestWeight() *SurveyDataset {
	a1 := []float64{12, 15, 9, 14, 11, 10, 16, 13, 8, 12}
	a2 := []float64{40, 35, 42, 38, 41, 37, 44, 36, 39, 43}
	q1 := []float64{11, 16, 9, 12, 12, 9, 15, 14, 8, 11}
	q2 := []float64{38, 36, 40, 39, 42, 35, 45, 34, 40, 44}
	w1 := []float64{1.02, 0.97, 1.05, 0.99, 1.01, 0.98, 1.03, 0.96, 1.04, 1.00}
	w2 := []float64{0.91, 1.12, 0.95, 1.08, 0.97, 1.06, 0.93, 1.10, 0.99, 1.02}

	actual, err := columnset.New([]string{"A1", "A2"}, [][]float64{a1, a2})
	if err != nil {
		panic(err)
	}
	survey, err := columnset.New([]string{"Q1", "Q2"}, [][]float64{q1, q2})
	if err != nil {
		panic(err)
	}
	scheme1, err := columnset.New([]string{"W1", "W1"}, [][]float64{w1, w1})
	if err != nil {
		panic(err)
	}
	scheme2, err := columnset.New([]string{"W2", "W2"}, [][]float64{w2, w2})
	if err != nil {
		panic(err)
	}

	return &SurveyDataset{
		Actual:  actual,
		Survey:  survey,
		Weights: []*columnset.ColumnSet{scheme1, scheme2},
	}
}
