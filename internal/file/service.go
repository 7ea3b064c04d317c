package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
)

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

// Upload stores the original, a thumbnail for images, and the metadata record.
// A failed thumbnail does not fail the upload; a failed record removes the stored blobs.
func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	header := in.FileHeader
	if header.Size == 0 {
		return nil, ErrEmpty
	}
	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), content)
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	fileID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Shard by the first two ID characters: upload/ab/<id>.<ext>
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	log := zerolog.Ctx(ctx)

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(content))
		if err != nil {
			log.Warn().Err(err).Str("file_id", fileID).Msg("thumbnail generation failed")
		} else {
			p := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, p, bytes.NewReader(thumb)); err != nil {
				log.Warn().Err(err).Str("file_id", fileID).Msg("thumbnail save failed")
			} else {
				thumbnailPath = &p
			}
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(header.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeBlobs(ctx, f)
		return nil, err
	}

	log.Info().
		Str("file_id", f.ID).
		Str("content_type", f.ContentType).
		Int64("size", f.Size).
		Msg("file uploaded")

	return f, nil
}

// Delete removes the record first, then the blobs on a best-effort basis.
func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeBlobs(ctx, f)
	return nil
}

func (s *service) removeBlobs(ctx context.Context, f *File) {
	paths := []string{f.StoragePath}
	if f.ThumbnailPath != nil {
		paths = append(paths, *f.ThumbnailPath)
	}
	for _, p := range paths {
		if err := s.storage.Delete(ctx, p); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", p).Msg("failed to remove stored blob")
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailUnavailable
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrThumbnailUnavailable
		}
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, f, nil
}

// detectContentType sniffs the content and falls back to the declared type
// only when sniffing cannot tell.
func detectContentType(declared string, content []byte) string {
	sniffed, _, _ := mime.ParseMediaType(mimetype.Detect(content).String())
	if sniffed != "" && sniffed != "application/octet-stream" {
		return sniffed
	}
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "" {
		return mt
	}
	return "application/octet-stream"
}
