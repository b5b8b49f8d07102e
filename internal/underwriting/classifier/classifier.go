// Package classifier provides the trained risk classifier used as one signal
// among several in risk scoring. The model is a shallow decision tree fit
// once on synthetic data, persisted as a JSON artifact, and read-only after
// initialization.
package classifier

import (
	"log/slog"
	"sync"
)

// Version identifies the model generation reported on decisions.
const Version = "1.0"

// Buckets predicted by the classifier.
const (
	BucketApprove     = 0
	BucketConditional = 1
	BucketDecline     = 2
)

// Features are the model inputs, in training order.
type Features struct {
	CreditScore   float64
	Age           float64
	ClaimsCount   float64
	CoverageRatio float64 // coverage amount normalized to [0,1]
	YearsLicensed float64
}

func (f Features) vector() []float64 {
	return []float64{f.CreditScore, f.Age, f.ClaimsCount, f.CoverageRatio, f.YearsLicensed}
}

// Prediction is the classifier output. Available is false when no model is
// loaded; downstream scoring treats that as a zero-contribution signal.
type Prediction struct {
	Available     bool       `json:"ml_available"`
	Bucket        int        `json:"prediction"`
	Confidence    float64    `json:"confidence"`
	Probabilities [3]float64 `json:"probabilities"`
}

// Unavailable is the degraded prediction used when no model exists.
func Unavailable() Prediction {
	return Prediction{}
}

// Predict runs the feature vector through the tree and returns the bucket
// with the highest probability.
func (m *Model) Predict(f Features) Prediction {
	if m == nil || m.Tree == nil {
		return Unavailable()
	}

	scaled := m.Scaler.transform(f.vector())
	probs := m.Tree.classify(scaled)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Prediction{
		Available:     true,
		Bucket:        best,
		Confidence:    probs[best],
		Probabilities: probs,
	}
}

// Provider lazily initializes the shared model exactly once. Multiple
// requests racing at startup get the same instance; afterwards the model is
// read-only and safe for concurrent use without locking.
type Provider struct {
	once   sync.Once
	path   string
	logger *slog.Logger
	model  *Model
}

func NewProvider(path string, logger *slog.Logger) *Provider {
	return &Provider{path: path, logger: logger}
}

// Get returns the shared model, loading or training it on first use.
func (p *Provider) Get() *Model {
	p.once.Do(func() {
		p.model = LoadOrTrain(p.path, p.logger)
	})
	return p.model
}
