package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		probs          []float32
		wantLabel      EmotionLabel
		wantConfidence float64
		wantErr        bool
	}{
		{
			name:           "happy dominates",
			probs:          []float32{0.05, 0.02, 0.03, 0.70, 0.10, 0.05, 0.05},
			wantLabel:      EmotionHappy,
			wantConfidence: 0.70,
		},
		{
			name:           "first label wins",
			probs:          []float32{0.90, 0.01, 0.01, 0.01, 0.01, 0.05, 0.01},
			wantLabel:      EmotionAngry,
			wantConfidence: 0.90,
		},
		{
			name:           "last label wins",
			probs:          []float32{0.01, 0.01, 0.01, 0.01, 0.01, 0.05, 0.90},
			wantLabel:      EmotionSurprise,
			wantConfidence: 0.90,
		},
		{
			name:           "tie broken by lowest index",
			probs:          []float32{0.10, 0.40, 0.10, 0.40, 0.00, 0.00, 0.00},
			wantLabel:      EmotionDisgust,
			wantConfidence: 0.40,
		},
		{
			name:           "near-uniform vector still resolves",
			probs:          []float32{0.143, 0.143, 0.143, 0.143, 0.143, 0.143, 0.142},
			wantLabel:      EmotionAngry,
			wantConfidence: 0.143,
		},
		{
			name:    "too few probabilities",
			probs:   []float32{0.5, 0.5},
			wantErr: true,
		},
		{
			name:    "too many probabilities",
			probs:   []float32{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.3},
			wantErr: true,
		},
		{
			name:    "NaN probability",
			probs:   []float32{0.1, float32(math.NaN()), 0.1, 0.1, 0.1, 0.1, 0.1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.probs)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrPrediction)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-6)
			assert.Equal(t, tt.wantLabel.Feedback(), got.Feedback)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	probs := []float32{0.25, 0.25, 0.10, 0.10, 0.10, 0.10, 0.10}

	first, err := Resolve(probs)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := Resolve(probs)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}

	assert.Equal(t, EmotionAngry, first.Label)
}

func TestPrediction_ConfidencePercent(t *testing.T) {
	tests := []struct {
		confidence float64
		want       float64
	}{
		{0.70, 70.0},
		{0.12345, 12.35},
		{0.999999, 100.0},
		{0, 0},
		{1, 100.0},
	}

	for _, tt := range tests {
		p := Prediction{Confidence: tt.confidence}
		assert.Equal(t, tt.want, p.ConfidencePercent())
	}
}

func TestEmotionLabel_Feedback(t *testing.T) {
	assert.Equal(t, "You're smiling! Great to see you happy!", EmotionHappy.Feedback())
	assert.Equal(t, "You look sad. Why are you sad?", EmotionSad.Feedback())

	// Defensive fallback for labels outside the known set.
	assert.Equal(t, "You look bored", EmotionLabel("bored").Feedback())
}

func TestLabels_Order(t *testing.T) {
	// The index-to-label mapping mirrors the class order the model was
	// trained with. Reordering breaks inference silently.
	want := []EmotionLabel{"angry", "disgust", "fear", "happy", "neutral", "sad", "surprise"}
	require.Len(t, Labels, NumLabels)
	assert.Equal(t, want, Labels)
}
