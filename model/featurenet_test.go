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
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/usernet-io/usernet/base"
	"github.com/usernet-io/usernet/floats"
	"github.com/usernet-io/usernet/nn"
)

func TestNewFeatureNet(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	f := NewFeatureNet(8, 3, rng)
	assert.Equal(t, []int{11, 8}, f.l1.W.Shape())
	assert.Equal(t, []int{8, 8}, f.l2.W.Shape())
	// biases start at zero
	assert.Equal(t, make([]float32, 8), f.l1.B.Data())
	assert.Equal(t, make([]float32, 8), f.l2.B.Data())
	assert.Len(t, f.Parameters(), 4)
	// feature fusion requires a feature width
	assert.Panics(t, func() { NewFeatureNet(8, 0, rng) })
}

func TestKaimingInitialization(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	l := newKaimingLinear(rng, 1000, 100)
	assert.InDelta(t, math32.Sqrt(2.0/1000), floats.StdDev(l.W.Data()), 0.005)
	assert.InDelta(t, 0, floats.Mean(l.W.Data()), 0.005)
	assert.Equal(t, make([]float32, 100), l.B.Data())
}

func TestFeatureNetTransform(t *testing.T) {
	rng := base.NewRandomGenerator(42)
	f := NewFeatureNet(8, 3, rng)
	user := nn.NewTensor(rng.NormalVector(8, 0, 1), 8)
	components := nn.NewTensor(rng.NormalVector(5*3, 0, 1), 5, 3)

	// batched input keeps the batch shape
	fused := f.Transform(user, components)
	assert.Equal(t, []int{5, 8}, fused.Shape())
	// the last activation is a ReLU
	for _, v := range fused.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
	}

	// a single feature vector yields a single fused vector
	single := f.Transform(user, nn.NewTensor(components.Data()[:3], 3))
	assert.Equal(t, []int{8}, single.Shape())
	// and matches the first batched row
	assert.Equal(t, fused.Data()[:8], single.Data())
}

func TestFeatureNetDeterminism(t *testing.T) {
	rng := base.NewRandomGenerator(1)
	f := NewFeatureNet(4, 2, rng)
	user := nn.NewTensor([]float32{1, -1, 0.5, 2}, 4)
	components := nn.NewTensor([]float32{0.1, 0.2, 0.3, 0.4}, 2, 2)
	a := f.Transform(user, components)
	b := f.Transform(user, components)
	assert.Equal(t, a.Data(), b.Data())
}
