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

package model

import (
	"github.com/chewxy/math32"
	"github.com/usernet-io/usernet/base"
	"github.com/usernet-io/usernet/nn"
)

// newKaimingLinear creates a fully connected layer initialized with the
// fan-in scaled normal scheme N(0, 2/in) tuned for ReLU nonlinearities,
// drawn from a seeded generator. The bias is initialized to zero.
func newKaimingLinear(rng base.RandomGenerator, in, out int) *nn.LinearLayer {
	return &nn.LinearLayer{
		W: nn.NewTensor(rng.NormalVector(in*out, 0, math32.Sqrt(2.0/float32(in))), in, out),
		B: nn.Zeros(out),
	}
}

// newLinear creates a fully connected layer with the default scaled normal
// initialization N(0, 1/in), drawn from a seeded generator.
func newLinear(rng base.RandomGenerator, in, out int) *nn.LinearLayer {
	return &nn.LinearLayer{
		W: nn.NewTensor(rng.NormalVector(in*out, 0, 1.0/math32.Sqrt(float32(in))), in, out),
		B: nn.Zeros(out),
	}
}

// newEmbedding creates an embedding table drawn from a seeded generator.
func newEmbedding(rng base.RandomGenerator, n, dim int, mean, stdDev float32) *nn.EmbeddingLayer {
	return &nn.EmbeddingLayer{
		W: nn.NewTensor(rng.NormalVector(n*dim, mean, stdDev), n, dim),
	}
}

// FeatureNet fuses auxiliary item features into the latent space. All items
// for a user can be processed in batch.
type FeatureNet struct {
	l1         *nn.LinearLayer
	l2         *nn.LinearLayer
	embDim     int
	featureDim int
}

// NewFeatureNet creates a FeatureNet. The feature width must be positive:
// with no features there is nothing to fuse and the component must not be
// instantiated at all.
func NewFeatureNet(embDim, featureDim int, rng base.RandomGenerator) *FeatureNet {
	if featureDim <= 0 {
		panic("model: FeatureNet requires a positive feature width")
	}
	return &FeatureNet{
		l1:         newKaimingLinear(rng, embDim+featureDim, embDim),
		l2:         newKaimingLinear(rng, embDim, embDim),
		embDim:     embDim,
		featureDim: featureDim,
	}
}

// Transform fuses feature vectors with a user vector. The user vector has
// the embedding width. Components are either a single feature vector or a
// batch of feature vectors, one row per item; the result keeps the batch
// shape of components. Shape violations panic.
func (f *FeatureNet) Transform(user, components *nn.Tensor) *nn.Tensor {
	batched := len(components.Shape()) > 1
	var x *nn.Tensor
	if batched {
		x = nn.Concat(1, nn.Expand(user, components.Shape()[0]), components)
	} else {
		x = nn.Concat(1, nn.Expand(user, 1), nn.Reshape(components, 1, components.Shape()[0]))
	}
	x = nn.ReLu(f.l1.Forward(x))
	x = nn.ReLu(f.l2.Forward(x))
	if !batched {
		return nn.Reshape(x, f.embDim)
	}
	return x
}

// Parameters returns the trainable tensors of the network.
func (f *FeatureNet) Parameters() []*nn.Tensor {
	var params []*nn.Tensor
	params = append(params, f.l1.Parameters()...)
	params = append(params, f.l2.Parameters()...)
	return params
}
