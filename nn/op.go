// Copyright 2026 usernet Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nn

import (
	"github.com/chewxy/math32"
	"github.com/usernet-io/usernet/floats"
)

func checkSuffixShape(x0, x1 *Tensor) {
	if len(x0.shape) < len(x1.shape) {
		panic("nn: the shape of the second tensor must be a suffix sequence of the shape of the first tensor")
	}
	for i := 0; i < len(x1.shape); i++ {
		if x0.shape[len(x0.shape)-len(x1.shape)+i] != x1.shape[i] {
			panic("nn: the shape of the second tensor must be a suffix sequence of the shape of the first tensor")
		}
	}
}

// Add returns the element-wise sum of two tensors. The shape of the second
// tensor must be a suffix sequence of the shape of the first tensor.
func Add(x0, x1 *Tensor) *Tensor {
	checkSuffixShape(x0, x1)
	return x0.clone().add(x1)
}

// Sub returns the element-wise difference of two tensors. The shape of the
// second tensor must be a suffix sequence of the shape of the first tensor.
func Sub(x0, x1 *Tensor) *Tensor {
	checkSuffixShape(x0, x1)
	return x0.clone().sub(x1)
}

// Mul returns the element-wise product of two tensors. The shape of the
// second tensor must be a suffix sequence of the shape of the first tensor.
func Mul(x0, x1 *Tensor) *Tensor {
	checkSuffixShape(x0, x1)
	return x0.clone().mul(x1)
}

// MatMul returns the matrix product of two matrices.
func MatMul(x, y *Tensor) *Tensor {
	if len(x.shape) != 2 || len(y.shape) != 2 {
		panic("nn: MatMul expects two matrices")
	}
	if x.shape[1] != y.shape[0] {
		panic("nn: the shapes of matrices are not aligned")
	}
	m, k, n := x.shape[0], x.shape[1], y.shape[1]
	z := Zeros(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < k; j++ {
			floats.MulConstAddTo(y.data[j*n:(j+1)*n], x.data[i*k+j], z.data[i*n:(i+1)*n])
		}
	}
	return z
}

// ReLu returns the element-wise rectified linear unit of a tensor.
func ReLu(x *Tensor) *Tensor {
	return x.clone().maximum(0)
}

// Softmax returns the softmax of a matrix or vector along the given axis.
// Logits are shifted by their maximum for numerical stability.
func Softmax(x *Tensor, axis int) *Tensor {
	switch len(x.shape) {
	case 1:
		if axis != 0 {
			panic("nn: axis out of range")
		}
		return softmax2d(x.clone(), x.shape[0], 1, 0)
	case 2:
		if axis != 0 && axis != 1 {
			panic("nn: axis out of range")
		}
		return softmax2d(x.clone(), x.shape[0], x.shape[1], axis)
	default:
		panic("nn: Softmax expects a matrix or a vector")
	}
}

func softmax2d(y *Tensor, rows, cols, axis int) *Tensor {
	if rows == 0 || cols == 0 {
		return y
	}
	if axis == 0 {
		for j := 0; j < cols; j++ {
			max := y.data[j]
			for i := 1; i < rows; i++ {
				max = math32.Max(max, y.data[i*cols+j])
			}
			sum := float32(0)
			for i := 0; i < rows; i++ {
				y.data[i*cols+j] = math32.Exp(y.data[i*cols+j] - max)
				sum += y.data[i*cols+j]
			}
			for i := 0; i < rows; i++ {
				y.data[i*cols+j] /= sum
			}
		}
	} else {
		for i := 0; i < rows; i++ {
			row := y.data[i*cols : (i+1)*cols]
			max := floats.Max(row)
			sum := float32(0)
			for j := range row {
				row[j] = math32.Exp(row[j] - max)
				sum += row[j]
			}
			floats.MulConst(row, 1/sum)
		}
	}
	return y
}

// Expand tiles a vector to n rows.
func Expand(x *Tensor, n int) *Tensor {
	if len(x.shape) != 1 {
		panic("nn: Expand expects a vector")
	}
	y := Zeros(n, x.shape[0])
	for i := 0; i < n; i++ {
		copy(y.data[i*x.shape[0]:(i+1)*x.shape[0]], x.data)
	}
	return y
}

// Reshape returns a tensor sharing data with x in a new shape.
func Reshape(x *Tensor, shape ...int) *Tensor {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size != len(x.data) {
		panic("nn: the size of the new shape mismatch with the size of the tensor")
	}
	return NewTensor(x.data, shape...)
}

// Concat concatenates matrices along the given axis. Zero-width matrices
// are allowed and contribute nothing.
func Concat(axis int, tensors ...*Tensor) *Tensor {
	if len(tensors) == 0 {
		panic("nn: Concat expects at least one tensor")
	}
	if axis != 0 && axis != 1 {
		panic("nn: axis out of range")
	}
	for _, t := range tensors {
		if len(t.shape) != 2 {
			panic("nn: Concat expects matrices")
		}
	}
	if axis == 0 {
		cols := tensors[0].shape[1]
		rows := 0
		for _, t := range tensors {
			if t.shape[1] != cols {
				panic("nn: the widths of matrices are not aligned")
			}
			rows += t.shape[0]
		}
		y := Zeros(rows, cols)
		pos := 0
		for _, t := range tensors {
			copy(y.data[pos:pos+len(t.data)], t.data)
			pos += len(t.data)
		}
		return y
	}
	rows := tensors[0].shape[0]
	cols := 0
	for _, t := range tensors {
		if t.shape[0] != rows {
			panic("nn: the heights of matrices are not aligned")
		}
		cols += t.shape[1]
	}
	y := Zeros(rows, cols)
	for i := 0; i < rows; i++ {
		pos := i * cols
		for _, t := range tensors {
			w := t.shape[1]
			copy(y.data[pos:pos+w], t.data[i*w:(i+1)*w])
			pos += w
		}
	}
	return y
}

// Embedding gathers rows of the embedding table by indices.
func Embedding(w *Tensor, indices []int32) *Tensor {
	if len(w.shape) != 2 {
		panic("nn: Embedding expects a matrix")
	}
	dim := w.shape[1]
	y := Zeros(len(indices), dim)
	for i, index := range indices {
		if index < 0 || int(index) >= w.shape[0] {
			panic("nn: embedding index out of range")
		}
		copy(y.data[i*dim:(i+1)*dim], w.data[int(index)*dim:(int(index)+1)*dim])
	}
	return y
}
