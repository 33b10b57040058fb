package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/storage"
)

// Service owns asset uploads: validation, object storage, the media record,
// and thumbnails for images.
type Service struct {
	repo       repository.MediaRepository
	store      storage.ObjectStore
	presignTTL time.Duration
	maxBytes   int64
	log        *zap.SugaredLogger
}

func NewService(repo repository.MediaRepository, store storage.ObjectStore, presignTTL time.Duration, maxBytes int64, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, store: store, presignTTL: presignTTL, maxBytes: maxBytes, log: log}
}

// UploadAttachment stores one chat attachment and returns its media record.
// A failed record write removes the already-written object before returning.
func (s *Service) UploadAttachment(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Media, error) {
	if len(data) == 0 {
		return nil, apperrors.Validation("file", "empty upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.Validation("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if !AttachmentTypeAllowed(contentType) {
		return nil, apperrors.Validation("file", "unsupported content type "+contentType)
	}
	return s.upload(ctx, userID, filename, contentType, data, "files")
}

// UploadAudio stores one recorded voice note.
func (s *Service) UploadAudio(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Media, error) {
	if len(data) == 0 {
		return nil, apperrors.Validation("audio", "empty upload")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.Validation("audio", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	if !AudioTypeAllowed(contentType) {
		return nil, apperrors.Validation("audio", "unsupported content type "+contentType)
	}
	return s.upload(ctx, userID, filename, contentType, data, "audio")
}

func (s *Service) upload(ctx context.Context, userID, filename, contentType string, data []byte, prefix string) (*models.Media, error) {
	id := uuid.NewString()
	key := fmt.Sprintf("%s/%s/%s_%s", prefix, userID, id, filename)

	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, &apperrors.UploadError{Key: key, Err: err}
	}

	m := &models.Media{
		ID:          id,
		UserID:      userID,
		Key:         key,
		URL:         url,
		Type:        Classify(contentType),
		Size:        int64(len(data)),
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}

	if m.Type == models.FileImage {
		thumbKey := key + "_thumb.jpg"
		if thumb, err := thumbnail(data); err == nil {
			if _, err := s.store.Upload(ctx, thumbKey, "image/jpeg", thumb); err == nil {
				m.Thumbnail = thumbKey
			}
		}
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		// don't leave an orphaned object behind
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.log.Warnw("orphan cleanup failed", "key", key, "err", derr)
		}
		if m.Thumbnail != "" {
			_ = s.store.Delete(ctx, m.Thumbnail)
		}
		return nil, &apperrors.UploadError{Key: key, Err: err}
	}
	return m, nil
}

// ResolveURL returns a fetchable URL for a stored asset: the public URL when
// the bucket allows it, a presigned GET otherwise.
func (s *Service) ResolveURL(ctx context.Context, mediaID string) (string, error) {
	m, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return "", err
	}
	if m.URL != "" {
		return m.URL, nil
	}
	return s.store.PresignURL(ctx, m.Key, s.presignTTL)
}

// Remove deletes the object and its record. Used to clean up when a send
// fails after the asset was already stored.
func (s *Service) Remove(ctx context.Context, mediaID string) error {
	m, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, m.Key); err != nil {
		return err
	}
	if m.Thumbnail != "" {
		_ = s.store.Delete(ctx, m.Thumbnail)
	}
	return s.repo.Delete(ctx, mediaID)
}

// MessageURL is what a message payload references for this asset.
func (s *Service) MessageURL(m *models.Media) string {
	if m.URL != "" {
		return m.URL
	}
	return "/api/media/" + m.ID + "/url"
}

// ThumbnailURL mirrors MessageURL for the image thumbnail, when present.
func (s *Service) ThumbnailURL(ctx context.Context, m *models.Media) string {
	if m.Thumbnail == "" {
		return ""
	}
	url, err := s.store.PresignURL(ctx, m.Thumbnail, s.presignTTL)
	if err != nil {
		return ""
	}
	return url
}

func thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
