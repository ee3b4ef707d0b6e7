//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package register

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// Matrix is a dense square complex matrix in row-major order.
type Matrix [][]complex128

// Identity creates the dim x dim identity matrix.
func Identity(dim int) Matrix {
	m := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		m[i][i] = 1
	}
	return m
}

// NewMatrix creates a dim x dim zero matrix.
func NewMatrix(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	return m
}

// Dim returns the matrix dimension or -1 if the matrix is not square.
func (m Matrix) Dim() int {
	for _, row := range m {
		if len(row) != len(m) {
			return -1
		}
	}
	return len(m)
}

// Mul returns the matrix product m*o.
func (m Matrix) Mul(o Matrix) Matrix {
	dim := len(m)
	result := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum complex128
			for k := 0; k < dim; k++ {
				sum += m[i][k] * o[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// Dagger returns the conjugate transpose of the matrix.
func (m Matrix) Dagger() Matrix {
	dim := len(m)
	result := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			result[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return result
}

// Equal tests if the matrices are element-wise equal within tol.
func (m Matrix) Equal(o Matrix, tol float64) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-o[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// IsUnitary tests if m†m equals the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	dim := m.Dim()
	if dim <= 0 {
		return false
	}
	return m.Dagger().Mul(m).Equal(Identity(dim), tol)
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteRune('\n')
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteRune('\t')
			}
			fmt.Fprintf(&sb, "%.4f", v)
		}
	}
	return sb.String()
}
