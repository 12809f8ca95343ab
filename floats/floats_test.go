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

package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	Add(a, b)
	assert.Equal(t, []float32{6, 8, 10, 12}, a)
	assert.Panics(t, func() { Add(a, []float32{1}) })
}

func TestAddTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	dst := make([]float32, 4)
	AddTo(a, b, dst)
	assert.Equal(t, []float32{6, 8, 10, 12}, dst)
}

func TestSub(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	Sub(a, b)
	assert.Equal(t, []float32{-4, -4, -4, -4}, a)
}

func TestSubTo(t *testing.T) {
	a := []float32{5, 6, 7, 8}
	b := []float32{1, 2, 3, 4}
	dst := make([]float32, 4)
	SubTo(a, b, dst)
	assert.Equal(t, []float32{4, 4, 4, 4}, dst)
}

func TestMul(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	Mul(a, b)
	assert.Equal(t, []float32{5, 12, 21, 32}, a)
}

func TestDiv(t *testing.T) {
	a := []float32{2, 6, 12, 20}
	b := []float32{1, 2, 3, 4}
	Div(a, b)
	assert.Equal(t, []float32{2, 3, 4, 5}, a)
}

func TestMulConst(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	MulConst(a, 2)
	assert.Equal(t, []float32{2, 4, 6, 8}, a)
}

func TestMulConstTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	dst := make([]float32, 4)
	MulConstTo(a, 3, dst)
	assert.Equal(t, []float32{3, 6, 9, 12}, dst)
}

func TestMulConstAddTo(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	dst := []float32{1, 1, 1, 1}
	MulConstAddTo(a, 2, dst)
	assert.Equal(t, []float32{3, 5, 7, 9}, dst)
}

func TestDot(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{5, 6, 7, 8}
	assert.Equal(t, float32(70), Dot(a, b))
}

func TestSum(t *testing.T) {
	assert.Equal(t, float32(10), Sum([]float32{1, 2, 3, 4}))
}

func TestMean(t *testing.T) {
	assert.Equal(t, float32(2.5), Mean([]float32{1, 2, 3, 4}))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 1.2909944, StdDev([]float32{1, 2, 3, 4}), 1e-6)
}

func TestMin(t *testing.T) {
	assert.Equal(t, float32(0), Min([]float32{3, 2, 5, 6, 0}))
}

func TestMax(t *testing.T) {
	assert.Equal(t, float32(6), Max([]float32{3, 2, 5, 6, 0}))
}
