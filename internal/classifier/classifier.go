// Package classifier defines the scoring contract over the frozen emotion
// model and the metadata artifact that pins its label order.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/emoscan/emoscan/internal/domain"
	"github.com/emoscan/emoscan/internal/preprocess"
)

// Scorer scores one normalized face tensor and returns the softmax
// probability vector over the fixed label set. Implementations are pure from
// the pipeline's point of view: no side effects, no weight updates, safe for
// concurrent calls once loaded.
type Scorer interface {
	Score(ctx context.Context, tensor *preprocess.Tensor) ([]float32, error)
}

// Metadata is the versioned artifact stored alongside the model weights. The
// class list it carries is the authoritative record of the order the model
// was trained with; it is validated against the domain label set at load
// time instead of being assumed.
type Metadata struct {
	Version     string   `json:"version"`
	Classes     []string `json:"classes"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
}

// LoadMetadata reads and validates the metadata file for a model artifact.
func LoadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse model metadata: %w", err)
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Validate checks the metadata against the pipeline's contracts: the class
// list must match the domain label set exactly (length, content and order)
// and the shapes must match the normalizer's output and a 7-way softmax.
func (m *Metadata) Validate() error {
	if len(m.Classes) != domain.NumLabels {
		return fmt.Errorf("model metadata: expected %d classes, got %d", domain.NumLabels, len(m.Classes))
	}
	for i, class := range m.Classes {
		if class != string(domain.Labels[i]) {
			return fmt.Errorf("model metadata: class %d is %q, want %q", i, class, domain.Labels[i])
		}
	}

	if len(m.InputShape) != len(preprocess.InputShape) {
		return fmt.Errorf("model metadata: input shape rank %d, want %d", len(m.InputShape), len(preprocess.InputShape))
	}
	for i, dim := range m.InputShape {
		if dim != preprocess.InputShape[i] {
			return fmt.Errorf("model metadata: input shape %v, want %v", m.InputShape, preprocess.InputShape)
		}
	}

	wantOutput := []int64{1, domain.NumLabels}
	if len(m.OutputShape) != len(wantOutput) || m.OutputShape[0] != wantOutput[0] || m.OutputShape[1] != wantOutput[1] {
		return fmt.Errorf("model metadata: output shape %v, want %v", m.OutputShape, wantOutput)
	}

	return nil
}
