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
	"io"

	"github.com/juju/errors"
	"github.com/usernet-io/usernet/base"
	"github.com/usernet-io/usernet/base/encoding"
	"github.com/usernet-io/usernet/floats"
	"github.com/usernet-io/usernet/nn"
)

// UserNet computes a user embedding accounting for the items the user
// interacted with. Per-item attention weights come from a two-layer scoring
// network over the concatenated user, item and fused feature vectors, and
// the weighted item embeddings are pooled on top of the base user vector.
type UserNet struct {
	BaseModel
	userIndex     *base.Index
	itemIndex     *base.Index
	feats         *FeatureNet
	userEmbedding *nn.EmbeddingLayer
	itemEmbedding *nn.EmbeddingLayer
	l1            *nn.LinearLayer
	l2            *nn.LinearLayer
	embDim        int
	featureDim    int
}

var _ Model = &UserNet{}

// NewUserNet creates a UserNet from ordered lists of user and item ids.
func NewUserNet(users, items []string, params Params) *UserNet {
	net := new(UserNet)
	net.SetParams(params)
	net.userIndex = base.NewMapIndexFromNames(users)
	net.itemIndex = base.NewMapIndexFromNames(items)
	net.build()
	return net
}

func (net *UserNet) build() {
	net.embDim = net.Params.GetInt(EmbeddingDim, 128)
	net.featureDim = net.Params.GetInt(FeatureDim, 0)
	mean := net.Params.GetFloat32(InitMean, 0)
	stdDev := net.Params.GetFloat32(InitStdDev, 1)
	rng := net.GetRandomGenerator()
	if net.featureDim > 0 {
		net.feats = NewFeatureNet(net.embDim, net.featureDim, rng)
	}
	net.userEmbedding = newEmbedding(rng, int(net.userIndex.Len()), net.embDim, mean, stdDev)
	net.itemEmbedding = newEmbedding(rng, int(net.itemIndex.Len()), net.embDim, mean, stdDev)
	f := 0
	if net.feats != nil {
		f = 1
	}
	net.l1 = newKaimingLinear(rng, (2+f)*net.embDim, net.embDim)
	// The output layer keeps the default initializer instead of the fan-in
	// ReLU scheme used everywhere else.
	net.l2 = newLinear(rng, net.embDim, 1)
}

// Clear model weights.
func (net *UserNet) Clear() {
	net.userIndex = nil
	net.itemIndex = nil
}

// Invalid reports whether the model holds no weights.
func (net *UserNet) Invalid() bool {
	return net == nil || net.userIndex == nil || net.itemIndex == nil
}

func (net *UserNet) userToIndex(userId string) (int32, error) {
	if index := net.userIndex.ToNumber(userId); index != base.NotId {
		return index, nil
	}
	return base.NotId, errors.Annotatef(ErrUserNotExist, "user_id = %v", userId)
}

func (net *UserNet) itemsToIndices(itemIds []string) ([]int32, error) {
	indices := make([]int32, len(itemIds))
	for i, itemId := range itemIds {
		index := net.itemIndex.ToNumber(itemId)
		if index == base.NotId {
			return nil, errors.Annotatef(ErrItemNotExist, "item_id = %v", itemId)
		}
		indices[i] = index
	}
	return indices, nil
}

// GetItemEmbeddings gathers embedding vectors of items, one row per item.
func (net *UserNet) GetItemEmbeddings(itemIds []string) (*nn.Tensor, error) {
	indices, err := net.itemsToIndices(itemIds)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return net.itemEmbedding.Forward(indices), nil
}

func (net *UserNet) featureTensor(features [][]float32, n int) (*nn.Tensor, error) {
	if features == nil {
		return nil, errors.NotValidf("missing raw features while feature fusion is enabled")
	}
	if len(features) != n {
		return nil, errors.NotValidf("%d feature vectors for %d items", len(features), n)
	}
	data := make([]float32, 0, n*net.featureDim)
	for i, row := range features {
		if len(row) != net.featureDim {
			return nil, errors.NotValidf("feature vector %d of width %d, expected %d", i, len(row), net.featureDim)
		}
		data = append(data, row...)
	}
	return nn.NewTensor(data, n, net.featureDim), nil
}

// ScoreUser returns the aggregated user vector for a user and the items the
// user interacted with. Raw features are required if and only if feature
// fusion is enabled, one vector per item.
func (net *UserNet) ScoreUser(userId string, itemIds []string, features [][]float32) (*nn.Tensor, error) {
	userIndex, err := net.userToIndex(userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	itemIndices, err := net.itemsToIndices(itemIds)
	if err != nil {
		return nil, errors.Trace(err)
	}
	u := nn.Reshape(net.userEmbedding.Forward([]int32{userIndex}), net.embDim)
	items := net.itemEmbedding.Forward(itemIndices)
	n := len(itemIds)

	var x *nn.Tensor
	if net.feats != nil {
		raw, err := net.featureTensor(features, n)
		if err != nil {
			return nil, errors.Trace(err)
		}
		components := net.feats.Transform(u, raw)
		x = nn.Concat(1, nn.Expand(u, n), items, components)
	} else {
		x = nn.Concat(1, nn.Expand(u, n), items)
	}

	h := nn.ReLu(net.l1.Forward(x))
	logits := net.l2.Forward(h)
	weights := nn.Softmax(logits, 0)

	// result = u + sum_n w_n * I_n
	result := make([]float32, net.embDim)
	copy(result, u.Data())
	for i := 0; i < n; i++ {
		floats.MulConstAddTo(items.Data()[i*net.embDim:(i+1)*net.embDim], weights.Get(i, 0), result)
	}
	return nn.NewTensor(result, net.embDim), nil
}

// Score returns the row-wise dot products between a user vector and item
// vectors. It is independent of the attention network and used at serving
// time to rank candidate items against an aggregated user vector.
func Score(user, items *nn.Tensor) []float32 {
	if len(user.Shape()) != 1 || len(items.Shape()) != 2 || items.Shape()[1] != user.Shape()[0] {
		panic("model: shapes of the user vector and item vectors are not aligned")
	}
	dim := user.Shape()[0]
	scores := make([]float32, items.Shape()[0])
	for i := range scores {
		scores[i] = floats.Dot(user.Data(), items.Data()[i*dim:(i+1)*dim])
	}
	return scores
}

// Parameters returns all trainable tensors: both embedding tables, the
// scoring layers and the feature network when present. The order is stable
// and is the serialization order.
func (net *UserNet) Parameters() []*nn.Tensor {
	var params []*nn.Tensor
	params = append(params, net.userEmbedding.Parameters()...)
	params = append(params, net.itemEmbedding.Parameters()...)
	params = append(params, net.l1.Parameters()...)
	params = append(params, net.l2.Parameters()...)
	if net.feats != nil {
		params = append(params, net.feats.Parameters()...)
	}
	return params
}

// Marshal writes the model to a byte stream.
func (net *UserNet) Marshal(w io.Writer) error {
	// write params
	if err := encoding.WriteGob(w, net.Params); err != nil {
		return errors.Trace(err)
	}
	// write indices
	if err := base.MarshalIndex(w, net.userIndex); err != nil {
		return errors.Trace(err)
	}
	if err := base.MarshalIndex(w, net.itemIndex); err != nil {
		return errors.Trace(err)
	}
	// write weights
	for _, t := range net.Parameters() {
		if err := t.Marshal(w); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// Unmarshal reads the model from a byte stream.
func (net *UserNet) Unmarshal(r io.Reader) error {
	// read params
	var params Params
	if err := encoding.ReadGob(r, &params); err != nil {
		return errors.Trace(err)
	}
	net.SetParams(params)
	// read indices
	var err error
	if net.userIndex, err = base.UnmarshalIndex(r); err != nil {
		return errors.Trace(err)
	}
	if net.itemIndex, err = base.UnmarshalIndex(r); err != nil {
		return errors.Trace(err)
	}
	// read weights
	net.build()
	for _, t := range net.Parameters() {
		if err := t.Unmarshal(r); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// UnmarshalUserNet reads a UserNet from a byte stream.
func UnmarshalUserNet(r io.Reader) (*UserNet, error) {
	net := new(UserNet)
	if err := net.Unmarshal(r); err != nil {
		return nil, errors.Trace(err)
	}
	return net, nil
}
