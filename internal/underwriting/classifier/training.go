package classifier

import (
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/goccy/go-json"

	dErrors "underwriter/pkg/domain-errors"
)

// Training hyperparameters. The tree is intentionally shallow; the
// classifier is one coarse signal, not the decision maker.
const (
	trainingSamples = 1000
	trainingSeed    = 42
	maxDepth        = 5
	minSamplesSplit = 20
	claimsLambda    = 1.5
)

// Scaler standardizes features to zero mean and unit variance, mirroring the
// scaling applied during training.
type Scaler struct {
	Mean [5]float64 `json:"mean"`
	Std  [5]float64 `json:"std"`
}

func (s Scaler) transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		std := s.Std[i]
		if std == 0 {
			std = 1
		}
		out[i] = (v[i] - s.Mean[i]) / std
	}
	return out
}

// Model is the serialized classifier artifact: the fitted scaler plus the
// decision tree.
type Model struct {
	Version string `json:"version"`
	Scaler  Scaler `json:"scaler"`
	Tree    *Node  `json:"tree"`
}

// Train fits a fresh model on synthetic underwriting outcomes. Generation is
// seeded, so training is reproducible across processes.
func Train() *Model {
	rng := rand.New(rand.NewSource(trainingSeed))

	samples := make([][]float64, trainingSamples)
	labels := make([]int, trainingSamples)
	for i := range samples {
		creditScore := float64(300 + rng.Intn(550))
		age := float64(18 + rng.Intn(62))
		claims := float64(poisson(rng, claimsLambda))
		coverageRatio := rng.Float64()
		yearsLicensed := float64(rng.Intn(50))

		samples[i] = []float64{creditScore, age, claims, coverageRatio, yearsLicensed}
		labels[i] = riskLabel(creditScore, age, claims, coverageRatio, yearsLicensed)
	}

	scaler := fitScaler(samples)
	scaled := make([][]float64, len(samples))
	for i, s := range samples {
		scaled[i] = scaler.transform(s)
	}

	return &Model{
		Version: Version,
		Scaler:  scaler,
		Tree:    buildTree(scaled, labels, 0, maxDepth, minSamplesSplit),
	}
}

// riskLabel is the hand-coded labeling heuristic: accumulate risk points and
// threshold into the three buckets (>=5 decline, >=3 conditional).
func riskLabel(creditScore, age, claims, coverageRatio, yearsLicensed float64) int {
	points := 0

	if creditScore < 600 {
		points += 3
	} else if creditScore < 700 {
		points++
	}

	if claims > 3 {
		points += 2
	} else if claims > 1 {
		points++
	}

	if age < 25 {
		points++
	}
	if coverageRatio > 0.8 {
		points++
	}
	if yearsLicensed < 3 {
		points++
	}

	switch {
	case points >= 5:
		return BucketDecline
	case points >= 3:
		return BucketConditional
	default:
		return BucketApprove
	}
}

func fitScaler(samples [][]float64) Scaler {
	var s Scaler
	n := float64(len(samples))
	if n == 0 {
		return s
	}

	for _, row := range samples {
		for i, v := range row {
			s.Mean[i] += v
		}
	}
	for i := range s.Mean {
		s.Mean[i] /= n
	}

	for _, row := range samples {
		for i, v := range row {
			d := v - s.Mean[i]
			s.Std[i] += d * d
		}
	}
	for i := range s.Std {
		s.Std[i] = math.Sqrt(s.Std[i] / n)
	}
	return s
}

// poisson draws from a Poisson distribution via Knuth's product method;
// lambda is small so the loop stays short.
func poisson(rng *rand.Rand, lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Load reads a model artifact, rejecting structurally invalid files so a
// corrupt artifact triggers retraining rather than bad predictions.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "classifier artifact unreadable")
	}

	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "classifier artifact corrupt")
	}
	if m.Tree == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "classifier artifact missing tree")
	}
	return &m, nil
}

// Save writes the model artifact.
func (m *Model) Save(path string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode classifier artifact")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write classifier artifact")
	}
	return nil
}

// LoadOrTrain loads the persisted artifact when present and valid, otherwise
// trains a fresh model and persists it. A failed save is logged and ignored:
// the in-memory model still serves the process.
func LoadOrTrain(path string, logger *slog.Logger) *Model {
	if m, err := Load(path); err == nil {
		if logger != nil {
			logger.Info("loaded pre-trained underwriting model", "path", path)
		}
		return m
	} else if logger != nil {
		logger.Warn("training new underwriting model", "path", path, "reason", err)
	}

	m := Train()
	if err := m.Save(path); err != nil && logger != nil {
		logger.Warn("failed to persist classifier artifact", "error", err)
	}
	return m
}
