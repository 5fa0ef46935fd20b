package surveydataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWeightCSV = `A1,A2,Q1,Q2,W1,W2
12,40,11,38,1.02,0.91
15,35,16,36,0.97,1.12
9,42,9,40,1.05,0.95
14,38,12,39,0.99,1.08
11,41,12,42,1.01,0.97
10,37,9,35,0.98,1.06
16,44,15,45,1.03,0.93
13,36,14,34,0.96,1.10
8,39,8,40,1.04,0.99
12,43,11,44,1.00,1.02
`

var testWeightSpec = ColumnSpec{
	Actual:  []string{"A1", "A2"},
	Survey:  []string{"Q1", "Q2"},
	Weights: [][]string{{"W1", "W1"}, {"W2", "W2"}},
}

func TestFromCSV(t *testing.T) {
	ds, err := FromCSV(strings.NewReader(testWeightCSV), testWeightSpec)
	require.Nil(t, err)

	expected := TestWeight()
	assert.Equal(t, expected.Actual, ds.Actual, "actual")
	assert.Equal(t, expected.Survey, ds.Survey, "survey")
	require.Len(t, ds.Weights, 2)
	assert.Equal(t, expected.Weights, ds.Weights, "weights")
}

func TestFromCSVErrors(t *testing.T) {
	testData := map[string]struct {
		csv  string
		spec ColumnSpec
		err  error
	}{
		"empty stream": {
			"",
			testWeightSpec,
			ErrNoHeader,
		},
		"header only": {
			"A1,A2,Q1,Q2,W1,W2\n",
			testWeightSpec,
			ErrNoRecords,
		},
		"missing column": {
			"A1,Q1\n1,2\n",
			ColumnSpec{Actual: []string{"A1"}, Survey: []string{"QX"}},
			ErrMissingColumn,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := FromCSV(strings.NewReader(td.csv), td.spec)
			require.ErrorIs(t, err, td.err)
		})
	}
}

func TestFromCSVBadNumber(t *testing.T) {
	csv := "A1,Q1\n1,x\n"
	_, err := FromCSV(strings.NewReader(csv), ColumnSpec{Actual: []string{"A1"}, Survey: []string{"Q1"}})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `column "Q1"`)
}

func TestTestWeightShapes(t *testing.T) {
	ds := TestWeight()

	m, n := ds.Actual.Shape()
	assert.Equal(t, 10, m)
	assert.Equal(t, 2, n)

	sm, sn := ds.Survey.Shape()
	assert.Equal(t, m, sm)
	assert.Equal(t, n, sn)

	require.Len(t, ds.Weights, 2)
	for _, w := range ds.Weights {
		wm, wn := w.Shape()
		assert.Equal(t, m, wm)
		assert.Equal(t, n, wn)
	}
}
