package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestSynthesizeEmptyTextFails(t *testing.T) {
	// The empty-text check runs before any API call, so a zero-value
	// synthesizer is enough.
	g := &GoogleSynthesizer{}

	_, err := g.Synthesize(context.Background(), "")
	require.Error(t, err)

	var synthErr *SynthesisError
	require.True(t, errors.As(err, &synthErr))
	assert.Contains(t, synthErr.Reason, "empty")
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "quota exceeded", classifyError(status.Error(codes.ResourceExhausted, "out of quota")))
	assert.Equal(t, "authentication failed", classifyError(status.Error(codes.Unauthenticated, "bad key")))
	assert.Equal(t, "authentication failed", classifyError(status.Error(codes.PermissionDenied, "no access")))
	assert.Equal(t, "unsupported text", classifyError(status.Error(codes.InvalidArgument, "bad ssml")))
	assert.Equal(t, "authentication failed", classifyError(errors.New("oauth2: cannot fetch token")))
	assert.Equal(t, "request failed", classifyError(errors.New("connection reset")))
}

func TestWriteAudioReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bulletin.wav")

	require.NoError(t, WriteAudio(path, []byte("first")))
	require.NoError(t, WriteAudio(path, []byte("second version")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second version", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAudioMissingDirectory(t *testing.T) {
	err := WriteAudio(filepath.Join(t.TempDir(), "missing", "bulletin.wav"), []byte("x"))
	assert.Error(t, err)
}
