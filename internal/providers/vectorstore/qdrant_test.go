package vectorstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyDimensionErrorFromGRPCStatus(t *testing.T) {
	err := status.Error(codes.InvalidArgument, "Wrong input: Vector dimension error: expected dim: 384, got 1536")
	got := classify(err)
	require.ErrorIs(t, got, ErrDimensionMismatch)
	assert.Contains(t, got.Error(), "expected dim: 384")
}

func TestClassifyDimensionErrorFromPlainError(t *testing.T) {
	got := classify(errors.New("Vector dimension error: expected dim: 384, got 768"))
	assert.ErrorIs(t, got, ErrDimensionMismatch)
}

func TestClassifyOtherErrors(t *testing.T) {
	cause := status.Error(codes.Unavailable, "connection refused")
	got := classify(cause)
	assert.NotErrorIs(t, got, ErrDimensionMismatch)
	assert.ErrorIs(t, got, cause)
}

func TestNewQdrantValidatesConfig(t *testing.T) {
	_, err := NewQdrant(Config{Collection: "golf_shot_vectors"})
	assert.Error(t, err)
	_, err = NewQdrant(Config{Host: "localhost", Port: 6334})
	assert.Error(t, err)
}
