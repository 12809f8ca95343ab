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

import "github.com/chewxy/math32"

type Layer interface {
	Parameters() []*Tensor
	Forward(x *Tensor) *Tensor
}

type Model Layer

type LinearLayer struct {
	W *Tensor
	B *Tensor
}

// NewLinear creates a fully connected layer. The weight is initialized with
// the scaled normal scheme N(0, 1/in) and the bias is initialized to zero.
func NewLinear(in, out int) *LinearLayer {
	return &LinearLayer{
		W: Normal(0, 1.0/math32.Sqrt(float32(in)), in, out),
		B: Zeros(out),
	}
}

// NewKaimingLinear creates a fully connected layer with the fan-in scaled
// normal initialization N(0, 2/in) tuned for ReLU nonlinearities. The bias
// is initialized to zero.
func NewKaimingLinear(in, out int) *LinearLayer {
	return &LinearLayer{
		W: Normal(0, math32.Sqrt(2.0/float32(in)), in, out),
		B: Zeros(out),
	}
}

func (l *LinearLayer) Forward(x *Tensor) *Tensor {
	return Add(MatMul(x, l.W), l.B)
}

func (l *LinearLayer) Parameters() []*Tensor {
	return []*Tensor{l.W, l.B}
}

type EmbeddingLayer struct {
	W *Tensor
}

// NewEmbedding creates an embedding table with n rows of the given width.
func NewEmbedding(n, dim int) *EmbeddingLayer {
	return &EmbeddingLayer{
		W: Normal(0, 1, n, dim),
	}
}

func (e *EmbeddingLayer) Parameters() []*Tensor {
	return []*Tensor{e.W}
}

// Forward gathers embedding rows by indices.
func (e *EmbeddingLayer) Forward(indices []int32) *Tensor {
	return Embedding(e.W, indices)
}

type reluLayer struct{}

func NewReLU() Layer {
	return &reluLayer{}
}

func (r *reluLayer) Parameters() []*Tensor {
	return nil
}

func (r *reluLayer) Forward(x *Tensor) *Tensor {
	return ReLu(x)
}

type Sequential struct {
	Layers []Layer
}

func NewSequential(layers ...Layer) Model {
	return &Sequential{Layers: layers}
}

func (s *Sequential) Parameters() []*Tensor {
	var params []*Tensor
	for _, l := range s.Layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

func (s *Sequential) Forward(x *Tensor) *Tensor {
	for _, l := range s.Layers {
		x = l.Forward(x)
	}
	return x
}
