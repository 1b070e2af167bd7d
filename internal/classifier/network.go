package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/norin/shapekey/internal/core"
)

// Network topology and fit hyperparameters. The model is intentionally
// tiny: embedding -> global average pooling -> dense(16, relu) ->
// dropout(0.3) -> dense(1, sigmoid), trained with Adam on binary
// cross-entropy.
const (
	hiddenUnits  = 16
	dropoutRate  = 0.3
	learningRate = 0.001
	adamBeta1    = 0.9
	adamBeta2    = 0.999
	adamEpsilon  = 1e-8

	fitEpochs          = 50
	fitBatchSize       = 8
	fitValidationSplit = 0.2
)

// network is the numeric state of a trained single-class model. All
// parameters are dense float64 storage manipulated through gonum.
type network struct {
	vocabSize int
	embedDim  int
	seqLen    int

	embedding *mat.Dense    // (vocabSize+1) x embedDim, row 0 is padding
	w1        *mat.Dense    // hiddenUnits x embedDim
	b1        *mat.VecDense // hiddenUnits
	w2        *mat.VecDense // hiddenUnits
	b2        float64
}

func newNetwork(vocabSize, embedDim, seqLen int, rng *rand.Rand) *network {
	n := &network{
		vocabSize: vocabSize,
		embedDim:  embedDim,
		seqLen:    seqLen,
		embedding: mat.NewDense(vocabSize+1, embedDim, nil),
		w1:        mat.NewDense(hiddenUnits, embedDim, nil),
		b1:        mat.NewVecDense(hiddenUnits, nil),
		w2:        mat.NewVecDense(hiddenUnits, nil),
	}

	embData := n.embedding.RawMatrix().Data
	for i := range embData {
		embData[i] = rng.Float64()*0.1 - 0.05
	}

	// Glorot uniform for the dense layers.
	limit1 := math.Sqrt(6.0 / float64(embedDim+hiddenUnits))
	w1Data := n.w1.RawMatrix().Data
	for i := range w1Data {
		w1Data[i] = (rng.Float64()*2 - 1) * limit1
	}
	limit2 := math.Sqrt(6.0 / float64(hiddenUnits+1))
	w2Data := n.w2.RawVector().Data
	for i := range w2Data {
		w2Data[i] = (rng.Float64()*2 - 1) * limit2
	}

	return n
}

// forwardPass keeps the intermediates one sample's forward run produces,
// for use by the backward step.
type forwardPass struct {
	x    *mat.VecDense // pooled embedding
	z1   *mat.VecDense // hidden pre-activation
	h    *mat.VecDense // hidden after relu and (in training) dropout
	mask []float64     // inverted dropout mask; nil at inference
	y    float64
}

// forward runs one sequence through the network. When rng is non-nil the
// hidden layer is dropped out with inverted scaling.
func (n *network) forward(seq []int, rng *rand.Rand) *forwardPass {
	fp := &forwardPass{
		x:  mat.NewVecDense(n.embedDim, nil),
		z1: mat.NewVecDense(hiddenUnits, nil),
		h:  mat.NewVecDense(hiddenUnits, nil),
	}

	// Global average pooling over every sequence position, padding rows
	// included.
	for _, id := range seq {
		fp.x.AddVec(fp.x, n.embedding.RowView(id))
	}
	fp.x.ScaleVec(1/float64(len(seq)), fp.x)

	fp.z1.MulVec(n.w1, fp.x)
	fp.z1.AddVec(fp.z1, n.b1)

	if rng != nil {
		fp.mask = make([]float64, hiddenUnits)
		for i := range fp.mask {
			if rng.Float64() >= dropoutRate {
				fp.mask[i] = 1 / (1 - dropoutRate)
			}
		}
	}
	for i := 0; i < hiddenUnits; i++ {
		v := math.Max(0, fp.z1.AtVec(i))
		if fp.mask != nil {
			v *= fp.mask[i]
		}
		fp.h.SetVec(i, v)
	}

	fp.y = sigmoid(mat.Dot(n.w2, fp.h) + n.b2)
	return fp
}

// Predict runs the forward pass without dropout and returns the sigmoid
// output.
func (n *network) Predict(seq []int) float64 {
	return n.forward(seq, nil).y
}

// gradients accumulates parameter gradients over a batch. Shapes mirror
// the network's parameters.
type gradients struct {
	embedding *mat.Dense
	w1        *mat.Dense
	b1        *mat.VecDense
	w2        *mat.VecDense
	b2        float64
}

func newGradients(n *network) *gradients {
	return &gradients{
		embedding: mat.NewDense(n.vocabSize+1, n.embedDim, nil),
		w1:        mat.NewDense(hiddenUnits, n.embedDim, nil),
		b1:        mat.NewVecDense(hiddenUnits, nil),
		w2:        mat.NewVecDense(hiddenUnits, nil),
	}
}

func (g *gradients) reset() {
	zero(g.embedding.RawMatrix().Data)
	zero(g.w1.RawMatrix().Data)
	zero(g.b1.RawVector().Data)
	zero(g.w2.RawVector().Data)
	g.b2 = 0
}

// backward accumulates one sample's binary cross-entropy gradients into g.
func (n *network) backward(seq []int, fp *forwardPass, target float64, g *gradients) {
	dz2 := fp.y - target

	var gw2 mat.VecDense
	gw2.ScaleVec(dz2, fp.h)
	g.w2.AddVec(g.w2, &gw2)
	g.b2 += dz2

	dz1 := mat.NewVecDense(hiddenUnits, nil)
	for i := 0; i < hiddenUnits; i++ {
		if fp.z1.AtVec(i) <= 0 {
			continue
		}
		d := dz2 * n.w2.AtVec(i)
		if fp.mask != nil {
			d *= fp.mask[i]
		}
		dz1.SetVec(i, d)
	}
	g.b1.AddVec(g.b1, dz1)

	var gw1 mat.Dense
	gw1.Outer(1, dz1, fp.x)
	g.w1.Add(g.w1, &gw1)

	var dx mat.VecDense
	dx.MulVec(n.w1.T(), dz1)
	dx.ScaleVec(1/float64(len(seq)), &dx)
	for _, id := range seq {
		row := g.embedding.RawRowView(id)
		floats.Add(row, dx.RawVector().Data)
	}
}

// adam carries first and second moment estimates for every parameter
// tensor, flattened over the raw storage.
type adam struct {
	step int
	m    map[string][]float64
	v    map[string][]float64
}

func newAdam(n *network) *adam {
	sizes := map[string]int{
		"embedding": (n.vocabSize + 1) * n.embedDim,
		"w1":        hiddenUnits * n.embedDim,
		"b1":        hiddenUnits,
		"w2":        hiddenUnits,
		"b2":        1,
	}
	a := &adam{m: make(map[string][]float64), v: make(map[string][]float64)}
	for name, size := range sizes {
		a.m[name] = make([]float64, size)
		a.v[name] = make([]float64, size)
	}
	return a
}

func (a *adam) update(name string, params, grads []float64, scale float64) {
	m, v := a.m[name], a.v[name]
	correction1 := 1 - math.Pow(adamBeta1, float64(a.step))
	correction2 := 1 - math.Pow(adamBeta2, float64(a.step))
	for i := range params {
		grad := grads[i] * scale
		m[i] = adamBeta1*m[i] + (1-adamBeta1)*grad
		v[i] = adamBeta2*v[i] + (1-adamBeta2)*grad*grad
		mHat := m[i] / correction1
		vHat := v[i] / correction2
		params[i] -= learningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
	}
}

// applyBatch performs one Adam step with the accumulated gradients averaged
// over batchSize samples.
func (n *network) applyBatch(a *adam, g *gradients, batchSize int) {
	a.step++
	scale := 1 / float64(batchSize)
	a.update("embedding", n.embedding.RawMatrix().Data, g.embedding.RawMatrix().Data, scale)
	a.update("w1", n.w1.RawMatrix().Data, g.w1.RawMatrix().Data, scale)
	a.update("b1", n.b1.RawVector().Data, g.b1.RawVector().Data, scale)
	a.update("w2", n.w2.RawVector().Data, g.w2.RawVector().Data, scale)

	b2 := []float64{n.b2}
	a.update("b2", b2, []float64{g.b2}, scale)
	n.b2 = b2[0]
}

// fit trains the network in place and returns per-epoch metrics. The tail
// of the (pre-shuffled) data is held out as the validation split.
func (n *network) fit(inputs [][]int, labels []float64, rng *rand.Rand) *core.TrainingHistory {
	order := rng.Perm(len(inputs))
	valCount := int(float64(len(inputs)) * fitValidationSplit)
	trainIdx := order[:len(order)-valCount]
	valIdx := order[len(order)-valCount:]

	history := &core.TrainingHistory{}
	grads := newGradients(n)
	opt := newAdam(n)

	for epoch := 0; epoch < fitEpochs; epoch++ {
		rng.Shuffle(len(trainIdx), func(i, j int) {
			trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
		})

		var epochLoss float64
		var correct int
		for start := 0; start < len(trainIdx); start += fitBatchSize {
			end := start + fitBatchSize
			if end > len(trainIdx) {
				end = len(trainIdx)
			}
			batch := trainIdx[start:end]

			grads.reset()
			for _, idx := range batch {
				fp := n.forward(inputs[idx], rng)
				epochLoss += bceLoss(fp.y, labels[idx])
				if (fp.y >= 0.5) == (labels[idx] >= 0.5) {
					correct++
				}
				n.backward(inputs[idx], fp, labels[idx], grads)
			}
			n.applyBatch(opt, grads, len(batch))
		}

		var valLoss float64
		for _, idx := range valIdx {
			valLoss += bceLoss(n.Predict(inputs[idx]), labels[idx])
		}
		if len(valIdx) > 0 {
			valLoss /= float64(len(valIdx))
		}

		history.Loss = append(history.Loss, epochLoss/float64(len(trainIdx)))
		history.Accuracy = append(history.Accuracy, float64(correct)/float64(len(trainIdx)))
		history.ValLoss = append(history.ValLoss, valLoss)
	}

	return history
}

// Release drops the parameter storage. The network is unusable afterwards.
func (n *network) Release() {
	n.embedding = nil
	n.w1 = nil
	n.b1 = nil
	n.w2 = nil
}

// networkState is the JSON wire form of a network's weights.
type networkState struct {
	VocabSize int       `json:"vocabSize"`
	EmbedDim  int       `json:"embeddingDim"`
	SeqLen    int       `json:"maxSequenceLength"`
	Embedding []float64 `json:"embedding"`
	W1        []float64 `json:"w1"`
	B1        []float64 `json:"b1"`
	W2        []float64 `json:"w2"`
	B2        float64   `json:"b2"`
}

func (n *network) MarshalJSON() ([]byte, error) {
	return json.Marshal(networkState{
		VocabSize: n.vocabSize,
		EmbedDim:  n.embedDim,
		SeqLen:    n.seqLen,
		Embedding: n.embedding.RawMatrix().Data,
		W1:        n.w1.RawMatrix().Data,
		B1:        n.b1.RawVector().Data,
		W2:        n.w2.RawVector().Data,
		B2:        n.b2,
	})
}

func networkFromJSON(data []byte) (*network, error) {
	var state networkState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode network state: %w", err)
	}
	if state.VocabSize <= 0 || state.EmbedDim <= 0 || state.SeqLen <= 0 {
		return nil, fmt.Errorf("invalid network dimensions: vocab=%d dim=%d seq=%d",
			state.VocabSize, state.EmbedDim, state.SeqLen)
	}
	if len(state.Embedding) != (state.VocabSize+1)*state.EmbedDim ||
		len(state.W1) != hiddenUnits*state.EmbedDim ||
		len(state.B1) != hiddenUnits ||
		len(state.W2) != hiddenUnits {
		return nil, fmt.Errorf("network state has inconsistent weight shapes")
	}

	return &network{
		vocabSize: state.VocabSize,
		embedDim:  state.EmbedDim,
		seqLen:    state.SeqLen,
		embedding: mat.NewDense(state.VocabSize+1, state.EmbedDim, state.Embedding),
		w1:        mat.NewDense(hiddenUnits, state.EmbedDim, state.W1),
		b1:        mat.NewVecDense(hiddenUnits, state.B1),
		w2:        mat.NewVecDense(hiddenUnits, state.W2),
		b2:        state.B2,
	}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func bceLoss(y, target float64) float64 {
	const eps = 1e-7
	y = math.Min(math.Max(y, eps), 1-eps)
	return -(target*math.Log(y) + (1-target)*math.Log(1-y))
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
