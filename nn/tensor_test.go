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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTensor(t *testing.T) {
	x := NewTensor([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, []int{2, 3}, x.Shape())
	assert.Equal(t, float32(6), x.Get(1, 2))
	assert.Panics(t, func() { NewTensor([]float32{1, 2, 3}, 2, 2) })
	assert.Panics(t, func() { x.Get(0) })
	assert.Panics(t, func() { x.Get(0, 3) })
}

func TestZerosOnes(t *testing.T) {
	x := Zeros(2, 2)
	assert.Equal(t, []float32{0, 0, 0, 0}, x.Data())
	y := Ones(2, 2)
	assert.Equal(t, []float32{1, 1, 1, 1}, y.Data())
}

func TestRand(t *testing.T) {
	x := Rand(10, 10)
	assert.Equal(t, []int{10, 10}, x.Shape())
	for _, v := range x.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestTensorString(t *testing.T) {
	x := NewTensor([]float32{1, 2, 3}, 3)
	assert.Equal(t, "[1, 2, 3]", x.String())
	assert.Equal(t, "5", NewScalar(5).String())
}

func TestTensorMarshal(t *testing.T) {
	x := NewTensor([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, x.Marshal(buf))
	y := new(Tensor)
	assert.NoError(t, y.Unmarshal(buf))
	assert.Equal(t, x.Shape(), y.Shape())
	assert.Equal(t, x.Data(), y.Data())
}
