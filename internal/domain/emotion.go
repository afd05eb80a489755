package domain

import (
	"fmt"
	"math"
	"time"
)

// EmotionLabel is one of the seven emotion classes the model was trained on.
type EmotionLabel string

const (
	EmotionAngry    EmotionLabel = "angry"
	EmotionDisgust  EmotionLabel = "disgust"
	EmotionFear     EmotionLabel = "fear"
	EmotionHappy    EmotionLabel = "happy"
	EmotionNeutral  EmotionLabel = "neutral"
	EmotionSad      EmotionLabel = "sad"
	EmotionSurprise EmotionLabel = "surprise"
)

// Labels is the ordered label set. The order is the contract between the
// classifier's output vector index and the label: index i of the probability
// vector scores Labels[i]. It must match the class order the model was
// trained with; the model metadata is validated against this list at load.
var Labels = []EmotionLabel{
	EmotionAngry,
	EmotionDisgust,
	EmotionFear,
	EmotionHappy,
	EmotionNeutral,
	EmotionSad,
	EmotionSurprise,
}

// NumLabels is the expected length of every probability vector.
const NumLabels = 7

var feedbackMessages = map[EmotionLabel]string{
	EmotionAngry:    "You look angry. Everything okay?",
	EmotionDisgust:  "You seem disgusted. Is something wrong?",
	EmotionFear:     "You appear fearful. Don't worry, you're safe!",
	EmotionHappy:    "You're smiling! Great to see you happy!",
	EmotionNeutral:  "You have a neutral expression. What's on your mind?",
	EmotionSad:      "You look sad. Why are you sad?",
	EmotionSurprise: "You look surprised! What's the news?",
}

// Feedback returns the pre-authored message for the label. Labels outside the
// known set fall back to a templated sentence instead of failing.
func (l EmotionLabel) Feedback() string {
	if msg, ok := feedbackMessages[l]; ok {
		return msg
	}
	return fmt.Sprintf("You look %s", l)
}

// Prediction is the outcome of one pipeline run. Confidence is the softmax
// probability mass assigned to the chosen label, in [0,1]; it is not a
// calibrated certainty.
type Prediction struct {
	Label      EmotionLabel `json:"label"`
	Confidence float64      `json:"confidence"`
	Feedback   string       `json:"feedback"`
}

// ConfidencePercent returns the confidence as a percentage rounded to two
// decimals, the form surfaced to API callers.
func (p Prediction) ConfidencePercent() float64 {
	return math.Round(p.Confidence*10000) / 100
}

// Resolve turns a 7-element probability vector into a Prediction. Argmax ties
// are broken deterministically in favor of the lowest index. Any argmax is
// returned as a definite answer, however low the probability; thresholding is
// left to callers.
func Resolve(probs []float32) (Prediction, error) {
	if len(probs) != NumLabels {
		return Prediction{}, ErrPrediction.WithError(
			fmt.Errorf("expected %d probabilities, got %d", NumLabels, len(probs)))
	}

	maxIdx := 0
	for i, p := range probs {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			return Prediction{}, ErrPrediction.WithError(
				fmt.Errorf("non-finite probability at index %d", i))
		}
		// Strict comparison keeps the lowest index on ties.
		if p > probs[maxIdx] {
			maxIdx = i
		}
	}

	label := Labels[maxIdx]
	return Prediction{
		Label:      label,
		Confidence: float64(probs[maxIdx]),
		Feedback:   label.Feedback(),
	}, nil
}

// Submission is one durable record of a user's upload and its prediction.
// Rows are immutable once created; the pipeline never updates or deletes
// them. Email and Age are later schema additions populated outside the
// pipeline, so they are always nil here.
type Submission struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       *string      `json:"email,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Emotion     EmotionLabel `json:"detected_emotion"`
	Confidence  *float64     `json:"emotion_confidence,omitempty"`
	ImageData   []byte       `json:"-"`
	SubmittedAt time.Time    `json:"submission_timestamp"`
	Feedback    *string      `json:"feedback_message,omitempty"`
}
