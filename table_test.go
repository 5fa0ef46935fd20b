package tse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	testData := map[string]struct {
		v        float64
		expected string
	}{
		"repeating":       {1.0 / 3.0, "0.3333333"},
		"half":            {0.5, "0.5"},
		"root of half":    {0.7071067811865476, "0.7071068"},
		"zero":            {0.0, "0"},
		"rounds to 7 sig": {1234567.89, "1234568"},
		"small magnitude": {0.000123456789, "0.0001234568"},
		"negative":        {-1.0 / 3.0, "-0.3333333"},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, FormatValue(td.v))
		})
	}
}

func TestWriteTable(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	res, err := eng.FullScaleDependent()
	require.Nil(t, err)

	var sb strings.Builder
	require.Nil(t, res.WriteTable(&sb))
	rendered := sb.String()

	assert.Contains(t, rendered, "unweighted")
	assert.Contains(t, rendered, "aMAE")
	assert.Contains(t, rendered, "aMSE")
	assert.Contains(t, rendered, "bias²")
	assert.Contains(t, rendered, "var")
	assert.Contains(t, rendered, "0.3333333")
}

func TestWriteTableStable(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	res, err := eng.FullScaleIndependent()
	require.Nil(t, err)

	first := res.String()
	second := res.String()
	assert.Equal(t, first, second)
}

func TestWriteCSV(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	res, err := eng.AveMSE()
	require.Nil(t, err)

	var sb strings.Builder
	require.Nil(t, res.WriteCSV(&sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "scheme,aMSE,· bias²,· var", lines[0])
	assert.Equal(t, "unweighted,0.3333333,0.1111111,0.2222222", lines[1])
}

func TestResultJSON(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	res, err := eng.AveMAE()
	require.Nil(t, err)

	b, err := res.JSON()
	require.Nil(t, err)
	assert.Contains(t, string(b), `"scheme": "unweighted"`)
	assert.Contains(t, string(b), `"aMAE"`)

	resIndependent, err := eng.AveRAE()
	require.Nil(t, err)
	b, err = resIndependent.JSON()
	require.Nil(t, err)
	assert.NotContains(t, string(b), "mse_decomposition")
}

func TestMSERendersThreeColumns(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	res, err := eng.FullScaleDependent()
	require.Nil(t, err)

	headers := res.headers()
	assert.Equal(t, []string{"scheme", "aMAE", "aMSE", "· bias²", "· var", "aRMSE", "aMSLE", "aRMSLE"}, headers)

	rows := res.rows()
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(headers))
}
