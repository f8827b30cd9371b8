package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFile() *File {
	return &File{
		Version:   Version,
		LastError: 0.00087,
		LastTime:  12.41,
		Parameters: []Entry{
			{
				Config:  Config{Inputs: 2, Outputs: 2, Activation: "sigmoid"},
				Weights: [][]float64{{0.1, 0.2, 0.3}, {-0.1, -0.2, -0.3}},
			},
			{
				Config:  Config{Inputs: 2, Outputs: 1, Activation: "sigmoid"},
				Weights: [][]float64{{1.5, -2.5, 0.5}},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := validFile()

	filename, err := Save(dir, want)
	require.NoError(t, err)
	assert.Regexp(t, `^perceptron-\d+\.json$`, filename)

	got, err := Load(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	// An unreadable path is an I/O error, not a format error.
	var formatErr *FormatError
	assert.False(t, errors.As(err, &formatErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsMalformedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*File)
		layer  int
	}{
		{"unsupported version", func(f *File) { f.Version = "2" }, -1},
		{"no parameters", func(f *File) { f.Parameters = nil }, -1},
		{"non-positive dimensions", func(f *File) { f.Parameters[0].Config.Inputs = 0 }, 0},
		{"row count mismatch", func(f *File) { f.Parameters[1].Weights = nil }, 1},
		{"row length mismatch", func(f *File) {
			f.Parameters[0].Weights[1] = []float64{0.1, 0.2}
		}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFile()
			tc.mutate(f)

			err := f.validate()
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, tc.layer, formatErr.Layer)
		})
	}
}

func TestSecondsDurationRoundTrip(t *testing.T) {
	d := 12*time.Second + 410*time.Millisecond
	assert.Equal(t, d, Duration(Seconds(d)))
}
