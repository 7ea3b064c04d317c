package file

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
)

type memRepo struct {
	files     map[string]*File
	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{files: map[string]*File{}}
}

func (m *memRepo) Create(_ context.Context, f *File) error {
	if m.createErr != nil {
		return m.createErr
	}
	f.CreatedAt = time.Now()
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*File, error) {
	f, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.files[id]; !ok {
		return ErrNotFound
	}
	delete(m.files, id)
	return nil
}

// fileHeader builds a *multipart.FileHeader the way gin's c.FormFile would return it.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := 0; x < 64; x++ {
		img.Set(x, x%32, color.White)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := newMemRepo()
	return NewService(repo, store), repo
}

func TestService_UploadImage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader:   fileHeader(t, "drill.png", "application/octet-stream", pngBytes(t)),
		UserID:       "user-1",
		AllowedTypes: ImageTypes,
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, "drill.png", f.Filename)
	require.NotNil(t, f.ThumbnailPath)

	stream, got, err := svc.Download(ctx, f.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(stream)
	require.NoError(t, err)
	stream.Close()
	assert.Equal(t, pngBytes(t), content)
	assert.Equal(t, f.ID, got.ID)

	thumb, _, err := svc.DownloadThumbnail(ctx, f.ID)
	require.NoError(t, err)
	thumb.Close()
}

func TestService_UploadRejections(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	_, err := svc.Upload(ctx, UploadInput{
		FileHeader:   fileHeader(t, "notes.txt", "text/plain", []byte("hello world")),
		AllowedTypes: ImageTypes,
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.Upload(ctx, UploadInput{
		FileHeader:   fileHeader(t, "big.png", "image/png", pngBytes(t)),
		MaxSizeBytes: 10,
	})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Upload(ctx, UploadInput{
		FileHeader: fileHeader(t, "empty.png", "image/png", nil),
	})
	assert.ErrorIs(t, err, ErrEmpty)

	assert.Empty(t, repo.files)
}

func TestService_UploadWithoutThumbnail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader: fileHeader(t, "notes.txt", "text/plain", []byte("hello world")),
	})
	require.NoError(t, err)
	assert.Nil(t, f.ThumbnailPath)

	_, _, err = svc.DownloadThumbnail(ctx, f.ID)
	assert.ErrorIs(t, err, ErrThumbnailUnavailable)
}

func TestService_UploadRecordFailureRemovesBlobs(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base)
	require.NoError(t, err)
	repo := newMemRepo()
	repo.createErr = errors.New("db down")
	svc := NewService(repo, store)

	_, err = svc.Upload(ctx, UploadInput{
		FileHeader: fileHeader(t, "drill.png", "image/png", pngBytes(t)),
	})
	require.Error(t, err)

	var leftovers []string
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			leftovers = append(leftovers, path)
		}
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader: fileHeader(t, "drill.png", "image/png", pngBytes(t)),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))

	_, _, err = svc.Download(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, f.ID), ErrNotFound)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", detectContentType("text/plain", pngBytes(t)))
	assert.Equal(t, "image/tiff", detectContentType("image/tiff", []byte{0x00, 0x01, 0x02}))
	assert.Equal(t, "application/octet-stream", detectContentType("", []byte{0x00, 0x01, 0x02}))

	// HEIC photos from phones carry no magic number known to net/http.
	heic := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypheic\x00\x00\x00\x00mif1heic")...)
	assert.Equal(t, "image/heic", detectContentType("application/octet-stream", heic))
}
