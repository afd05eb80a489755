// Package onnx scores normalized face tensors with a frozen ONNX model via
// onnxruntime.
package onnx

import (
	"context"
	"fmt"
	"math"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/emoscan/emoscan/internal/classifier"
	"github.com/emoscan/emoscan/internal/domain"
	"github.com/emoscan/emoscan/internal/preprocess"
)

// Scorer wraps an onnxruntime session around the trained emotion model. The
// session reuses one pair of input/output tensors, so calls are serialized
// with a mutex; the weights themselves are never mutated after load.
type Scorer struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	metadata     *classifier.Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// New loads the model artifact and its metadata, validating the metadata's
// class list and shapes before any inference can happen.
func New(modelPath, metadataPath string) (*Scorer, error) {
	metadata, err := classifier.LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize ONNX environment: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create ONNX session: %w", err)
	}

	return &Scorer{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Metadata returns the validated metadata the model was loaded with.
func (s *Scorer) Metadata() *classifier.Metadata {
	return s.metadata
}

// Score runs one inference pass. Tensors whose shape does not match the
// contracted input are rejected rather than reshaped; non-finite model
// output maps to ErrPrediction.
func (s *Scorer) Score(ctx context.Context, tensor *preprocess.Tensor) ([]float32, error) {
	if tensor == nil {
		return nil, domain.ErrPrediction.WithError(fmt.Errorf("nil tensor"))
	}
	if tensor.Shape != preprocess.InputShape {
		return nil, domain.ErrPrediction.WithError(
			fmt.Errorf("tensor shape %v, want %v", tensor.Shape, preprocess.InputShape))
	}
	if len(tensor.Data) != preprocess.Size*preprocess.Size {
		return nil, domain.ErrPrediction.WithError(
			fmt.Errorf("tensor has %d values, want %d", len(tensor.Data), preprocess.Size*preprocess.Size))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.inputTensor.GetData(), tensor.Data)

	if err := s.session.Run(); err != nil {
		return nil, domain.ErrPrediction.WithError(fmt.Errorf("inference failed: %w", err))
	}

	output := s.outputTensor.GetData()
	probs := make([]float32, len(output))
	copy(probs, output)

	for i, p := range probs {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			return nil, domain.ErrPrediction.WithError(
				fmt.Errorf("non-finite model output at index %d", i))
		}
	}

	return probs, nil
}

// Close releases the session and its tensors. Call once at shutdown.
func (s *Scorer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	ort.DestroyEnvironment()
}
