package columnset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNegativeDim      = errors.New("negative dimensions not allowed")
	ErrRowMismatch      = errors.New("row size mismatch")
	ErrNameMismatch     = errors.New("name count does not match column count")
	ErrColOutOfBounds   = errors.New("column is out of bounds")
	ErrUninitializedSet = errors.New("uninitialized column set")
)

// ColumnSet is an ordered collection of equal-length named numeric columns.
// Data is stored in column major order where the first m values of the backing
// slice are the first column of the set. e.g. the columns {1.0, 2.0} and
// {3.0, 4.0} are stored as {1.0, 2.0, 3.0, 4.0}.
type ColumnSet struct {
	arr   []float64
	names []string
	m     int
	n     int
}

// New creates a ColumnSet from a slice of columns. All columns must have the
// same length. If names is nil column names are generated as c0, c1, ... and
// otherwise must have one name per column.
func New(names []string, cols [][]float64) (*ColumnSet, error) {
	n := len(cols)
	m := 0
	if n > 0 {
		m = len(cols[0])
	}
	for i, col := range cols {
		if len(col) != m {
			return nil, fmt.Errorf("at column %d with length %d expecting %d, %w", i, len(col), m, ErrRowMismatch)
		}
	}

	if names == nil {
		names = make([]string, n)
		for i := 0; i < n; i++ {
			names[i] = fmt.Sprintf("c%d", i)
		}
	}
	if len(names) != n {
		return nil, fmt.Errorf("%d names for %d columns, %w", len(names), n, ErrNameMismatch)
	}

	arr := make([]float64, 0, m*n)
	for _, col := range cols {
		arr = append(arr, col...)
	}

	namesCopy := make([]string, n)
	copy(namesCopy, names)

	return &ColumnSet{
		arr:   arr,
		names: namesCopy,
		m:     m,
		n:     n,
	}, nil
}

// Ones creates a ColumnSet of n columns of m rows where every value is 1.0.
// This is the identity weighting.
func Ones(m, n int) (*ColumnSet, error) {
	if m < 0 || n < 0 {
		return nil, ErrNegativeDim
	}
	arr := make([]float64, m*n)
	floats.AddConst(1.0, arr)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("c%d", i)
	}
	return &ColumnSet{
		arr:   arr,
		names: names,
		m:     m,
		n:     n,
	}, nil
}

// Shape returns the number of rows per column and the number of columns.
func (cs *ColumnSet) Shape() (int, int) {
	return cs.m, cs.n
}

func (cs *ColumnSet) Size() int {
	return len(cs.arr)
}

// Names returns the column names in order.
func (cs *ColumnSet) Names() []string {
	names := make([]string, len(cs.names))
	copy(names, cs.names)
	return names
}

// Col returns a slice view of the specified column. The view must not be
// mutated by the caller.
func (cs *ColumnSet) Col(c int) ([]float64, error) {
	m, n := cs.Shape()
	if c < 0 || c >= n {
		return nil, ErrColOutOfBounds
	}
	return cs.arr[c*m : (c+1)*m], nil
}

// Cols returns slice views of all columns in order.
func (cs *ColumnSet) Cols() [][]float64 {
	m, n := cs.Shape()
	cols := make([][]float64, n)
	for c := 0; c < n; c++ {
		cols[c] = cs.arr[c*m : (c+1)*m]
	}
	return cols
}

// Copy returns a deep copy of the ColumnSet.
func (cs *ColumnSet) Copy() *ColumnSet {
	arr := make([]float64, len(cs.arr))
	copy(arr, cs.arr)
	names := make([]string, len(cs.names))
	copy(names, cs.names)
	return &ColumnSet{
		arr:   arr,
		names: names,
		m:     cs.m,
		n:     cs.n,
	}
}

// ToSlice returns the columns as a slice of row-major rows.
func (cs *ColumnSet) ToSlice() [][]float64 {
	m, n := cs.Shape()
	res := make([][]float64, m)
	for i := 0; i < m; i++ {
		res[i] = make([]float64, n)
	}
	for i := 0; i < cs.Size(); i++ {
		row := i % m
		col := i / m
		res[row][col] = cs.arr[i]
	}
	return res
}
