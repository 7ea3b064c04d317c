package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	ThumbnailWidth   = 200
	ThumbnailHeight  = 200
	thumbnailQuality = 80
)

// ImageProcessor turns uploaded photos into square JPEG thumbnails.
type ImageProcessor struct {
	width, height int
	quality       int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		width:   ThumbnailWidth,
		height:  ThumbnailHeight,
		quality: thumbnailQuality,
	}
}

// GenerateThumbnail decodes content (JPEG, PNG, GIF, BMP or TIFF), honours the EXIF
// orientation, crops it to the thumbnail box around the centre and encodes it as JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader) ([]byte, error) {
	img, err := imaging.Decode(content, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Thumbnail(img, p.width, p.height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
