package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/secondary4432-cyber/framelift-ai/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpool(t *testing.T) (*Spool, string) {
	t.Helper()
	dir := t.TempDir()
	spool := NewSpool(SpoolParams{
		Config: &config.Config{
			Media: config.MediaConfig{SpoolDir: dir},
		},
	})
	return spool, dir
}

// multipartFile builds a real multipart.File the way a handler would see it.
func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("video", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("video")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func TestSpoolSave(t *testing.T) {
	spool, dir := newTestSpool(t)

	file, header := multipartFile(t, "clip.mp4", []byte("fake video bytes"))
	spooled, err := spool.Save(file, header)
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", spooled.Name)
	assert.Equal(t, int64(len("fake video bytes")), spooled.Size)
	assert.Equal(t, dir, filepath.Dir(spooled.Path))

	content, err := os.ReadFile(spooled.Path)
	require.NoError(t, err)
	assert.Equal(t, "fake video bytes", string(content))

	spooled.Discard()
	_, err = os.Stat(spooled.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestSpoolSaveUniquePaths(t *testing.T) {
	spool, _ := newTestSpool(t)

	fileA, headerA := multipartFile(t, "clip.mp4", []byte("a"))
	fileB, headerB := multipartFile(t, "clip.mp4", []byte("b"))

	spooledA, err := spool.Save(fileA, headerA)
	require.NoError(t, err)
	defer spooledA.Discard()

	spooledB, err := spool.Save(fileB, headerB)
	require.NoError(t, err)
	defer spooledB.Discard()

	// Same client filename, distinct spool paths.
	assert.NotEqual(t, spooledA.Path, spooledB.Path)
}

func TestSpoolSaveStripsPath(t *testing.T) {
	spool, dir := newTestSpool(t)

	file, header := multipartFile(t, "../../etc/clip.mp4", []byte("x"))
	spooled, err := spool.Save(file, header)
	require.NoError(t, err)
	defer spooled.Discard()

	assert.Equal(t, "clip.mp4", spooled.Name)
	assert.Equal(t, dir, filepath.Dir(spooled.Path))
}

func TestDiscardIdempotent(t *testing.T) {
	spool, _ := newTestSpool(t)

	file, header := multipartFile(t, "clip.mp4", []byte("x"))
	spooled, err := spool.Save(file, header)
	require.NoError(t, err)

	spooled.Discard()
	// Second call must not panic or log spuriously.
	spooled.Discard()

	_, err = os.Stat(spooled.Path)
	assert.True(t, os.IsNotExist(err))
}
