package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/domains/image/repository"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/logger"
)

const thumbnailPrefix = "thumbnails/"

type ServiceInterface interface {
	Upload(ctx context.Context, files []model.UploadFile) (*model.UploadResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ImageResponse, error)
	List(ctx context.Context, filter *model.ListImagesFilter) ([]*model.ImageResponse, int, error)
	Rename(ctx context.Context, id uuid.UUID, req *model.RenameImageRequest) (*model.ImageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectStore is the bucket the image bytes live in.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, keys ...string) error
	URL(key string) string
}

// Processor validates uploads and renders thumbnails.
type Processor interface {
	Inspect(data []byte) (format string, err error)
	Thumbnail(data []byte, format string) ([]byte, error)
}

type imageService struct {
	repo      repository.ImageRepository
	store     ObjectStore
	processor Processor
	now       func() time.Time
}

func NewImageService(repo repository.ImageRepository, store ObjectStore, processor Processor) ServiceInterface {
	return &imageService{repo: repo, store: store, processor: processor, now: time.Now}
}

func (s *imageService) Upload(ctx context.Context, files []model.UploadFile) (*model.UploadResult, error) {
	if len(files) == 0 {
		return nil, model.ErrNoFiles
	}

	result := &model.UploadResult{Successes: []*model.ImageResponse{}, Errors: map[string]string{}}
	for _, f := range files {
		img, err := s.saveFile(ctx, f)
		if err != nil {
			logger.Warn("image upload rejected", map[string]interface{}{"file": f.Name, "error": err.Error()})
			result.Errors[f.Name] = err.Error()
			continue
		}
		result.Successes = append(result.Successes, s.toResponse(img))
	}

	if len(result.Successes) == 0 {
		return result, model.ErrUploadFailed
	}
	return result, nil
}

// saveFile writes the original and its thumbnail, then records the row.
// Objects already written are removed when a later step fails.
func (s *imageService) saveFile(ctx context.Context, f model.UploadFile) (*model.Image, error) {
	format, err := s.processor.Inspect(f.Data)
	if err != nil {
		return nil, err
	}

	ext := extensionFor(format)
	name, err := utils.UploadFileName(s.now(), ext)
	if err != nil {
		return nil, err
	}
	thumbKey := thumbnailPrefix + name
	contentType := "image/" + format

	thumb, err := s.processor.Thumbnail(f.Data, format)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, name, f.Data, contentType); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, thumbKey, thumb, contentType); err != nil {
		s.cleanup(ctx, name)
		return nil, err
	}

	img := &model.Image{
		Path:         name,
		Thumbnail:    &thumbKey,
		Size:         int64(len(f.Data)),
		OriginalName: path.Base(f.Name),
		Extension:    ext,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		s.cleanup(ctx, name, thumbKey)
		return nil, fmt.Errorf("save image: %w", err)
	}
	return img, nil
}

func (s *imageService) Get(ctx context.Context, id uuid.UUID) (*model.ImageResponse, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(img), nil
}

func (s *imageService) List(ctx context.Context, filter *model.ListImagesFilter) ([]*model.ImageResponse, int, error) {
	images, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*model.ImageResponse, len(images))
	for i, img := range images {
		out[i] = s.toResponse(img)
	}
	return out, total, nil
}

func (s *imageService) Rename(ctx context.Context, id uuid.UUID, req *model.RenameImageRequest) (*model.ImageResponse, error) {
	img, err := s.repo.Rename(ctx, id, req.OriginalName)
	if err != nil {
		return nil, err
	}
	return s.toResponse(img), nil
}

// Delete removes the row first; a failed object removal only leaves an
// orphaned object behind and is logged.
func (s *imageService) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	keys := []string{img.Path}
	if img.Thumbnail != nil {
		keys = append(keys, *img.Thumbnail)
	}
	s.cleanup(ctx, keys...)
	return nil
}

func (s *imageService) cleanup(ctx context.Context, keys ...string) {
	if err := s.store.Remove(ctx, keys...); err != nil {
		logger.Warn("image object cleanup failed", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

func (s *imageService) toResponse(img *model.Image) *model.ImageResponse {
	resp := &model.ImageResponse{
		ID:           img.ID,
		URL:          s.store.URL(img.Path),
		Size:         img.Size,
		OriginalName: img.OriginalName,
		Extension:    img.Extension,
		CreatedAt:    img.CreatedAt,
	}
	if img.Thumbnail != nil {
		resp.ThumbnailURL = s.store.URL(*img.Thumbnail)
	}
	return resp
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

