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
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
)

// Tensor is a dense tensor backed by a flat float32 buffer. Tensors are
// values of parameters and activations. There is no gradient tracking:
// all operations are forward only.
type Tensor struct {
	data  []float32
	shape []int
}

// NewTensor creates a tensor from data and shape.
func NewTensor(data []float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) != n {
		panic(fmt.Sprintf("nn: data size %d mismatch with shape %v", len(data), shape))
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// NewScalar creates a tensor with a single value.
func NewScalar(data float32) *Tensor {
	return &Tensor{
		data:  []float32{data},
		shape: []int{},
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Tensor{
		data:  make([]float32, n),
		shape: shape,
	}
}

// Ones creates a tensor filled with ones.
func Ones(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = 1
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Rand creates a tensor filled with uniform random floats in [0,1).
func Rand(shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = rand.Float32()
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Normal creates a tensor filled with normal random floats.
func Normal(mean, stdDev float32, shape ...int) *Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(rand.NormFloat64())*stdDev + mean
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Shape returns the shape of the tensor.
func (t *Tensor) Shape() []int {
	return t.shape
}

// Data returns the flat buffer of the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// Get returns the element at the given indices.
func (t *Tensor) Get(indices ...int) float32 {
	if len(indices) != len(t.shape) {
		panic("nn: the number of indices mismatch with the shape")
	}
	pos := 0
	for i, index := range indices {
		if index < 0 || index >= t.shape[i] {
			panic("nn: index out of range")
		}
		pos = pos*t.shape[i] + index
	}
	return t.data[pos]
}

func (t *Tensor) String() string {
	// Print scalar value
	if len(t.shape) == 0 {
		return fmt.Sprint(t.data[0])
	}

	builder := strings.Builder{}
	builder.WriteString("[")
	if len(t.data) <= 10 {
		for i := 0; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			builder.WriteString(", ")
		}
		builder.WriteString("..., ")
		for i := len(t.data) - 5; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	}
	builder.WriteString("]")
	return builder.String()
}

// Marshal writes the tensor to a byte stream.
func (t *Tensor) Marshal(w io.Writer) error {
	// write shape
	if err := binary.Write(w, binary.LittleEndian, int32(len(t.shape))); err != nil {
		return errors.Trace(err)
	}
	for _, s := range t.shape {
		if err := binary.Write(w, binary.LittleEndian, int32(s)); err != nil {
			return errors.Trace(err)
		}
	}
	// write data
	if err := binary.Write(w, binary.LittleEndian, t.data); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Unmarshal reads the tensor from a byte stream.
func (t *Tensor) Unmarshal(r io.Reader) error {
	// read shape
	var dims int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return errors.Trace(err)
	}
	size := 1
	t.shape = make([]int, dims)
	for i := range t.shape {
		var s int32
		if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
			return errors.Trace(err)
		}
		t.shape[i] = int(s)
		size *= int(s)
	}
	// read data
	t.data = make([]float32, size)
	if err := binary.Read(r, binary.LittleEndian, t.data); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func (t *Tensor) clone() *Tensor {
	newData := make([]float32, len(t.data))
	copy(newData, t.data)
	newShape := make([]int, len(t.shape))
	copy(newShape, t.shape)
	return &Tensor{
		data:  newData,
		shape: newShape,
	}
}

// add the other tensor whose shape must be a suffix sequence of the shape
// of the receiver.
func (t *Tensor) add(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] += other.data[i%wSize]
	}
	return t
}

func (t *Tensor) sub(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] -= other.data[i%wSize]
	}
	return t
}

func (t *Tensor) mul(other *Tensor) *Tensor {
	wSize := 1
	for i := range other.shape {
		wSize *= other.shape[i]
	}
	for i := range t.data {
		t.data[i] *= other.data[i%wSize]
	}
	return t
}

func (t *Tensor) maximum(x float32) *Tensor {
	for i := range t.data {
		t.data[i] = math32.Max(t.data[i], x)
	}
	return t
}

func (t *Tensor) sum() float32 {
	sum := float32(0)
	for i := range t.data {
		sum += t.data[i]
	}
	return sum
}
