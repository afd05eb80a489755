package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMetadata() *Metadata {
	return &Metadata{
		Version:     "1.0.0",
		Classes:     []string{"angry", "disgust", "fear", "happy", "neutral", "sad", "surprise"},
		InputShape:  []int64{1, 48, 48, 1},
		OutputShape: []int64{1, 7},
	}
}

func TestMetadata_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Metadata)
		wantErr string
	}{
		{
			name:   "valid metadata",
			mutate: func(m *Metadata) {},
		},
		{
			name:    "too few classes",
			mutate:  func(m *Metadata) { m.Classes = m.Classes[:5] },
			wantErr: "expected 7 classes",
		},
		{
			name: "classes out of order",
			mutate: func(m *Metadata) {
				m.Classes[0], m.Classes[3] = m.Classes[3], m.Classes[0]
			},
			wantErr: "class 0",
		},
		{
			name:    "unknown class name",
			mutate:  func(m *Metadata) { m.Classes[6] = "shocked" },
			wantErr: "class 6",
		},
		{
			name:    "wrong input rank",
			mutate:  func(m *Metadata) { m.InputShape = []int64{48, 48} },
			wantErr: "input shape rank",
		},
		{
			name:    "wrong input dimensions",
			mutate:  func(m *Metadata) { m.InputShape = []int64{1, 64, 64, 1} },
			wantErr: "input shape",
		},
		{
			name:    "wrong output shape",
			mutate:  func(m *Metadata) { m.OutputShape = []int64{1, 10} },
			wantErr: "output shape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := validMetadata()
			tt.mutate(meta)

			err := meta.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "metadata.json")
		content := `{
			"version": "1.0.0",
			"classes": ["angry", "disgust", "fear", "happy", "neutral", "sad", "surprise"],
			"input_shape": [1, 48, 48, 1],
			"output_shape": [1, 7]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		meta, err := LoadMetadata(path)
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", meta.Version)
		assert.Len(t, meta.Classes, 7)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMetadata(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadMetadata(path)
		assert.Error(t, err)
	})

	t.Run("valid JSON failing validation", func(t *testing.T) {
		path := filepath.Join(dir, "badorder.json")
		content := `{
			"version": "1.0.0",
			"classes": ["happy", "disgust", "fear", "angry", "neutral", "sad", "surprise"],
			"input_shape": [1, 48, 48, 1],
			"output_shape": [1, 7]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadMetadata(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "class 0")
	})
}
