package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	publicURL bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[key] = data
	if s.publicURL {
		return "https://cdn.example.com/" + key, nil
	}
	return "", nil
}

func (s *fakeStore) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://signed.example.com/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type fakeMediaRepo struct {
	records   map[string]*models.Media
	insertErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{records: map[string]*models.Media{}}
}

func (r *fakeMediaRepo) Insert(_ context.Context, m *models.Media) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records[m.ID] = m
	return nil
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id string) (*models.Media, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return m, nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func newMediaService(repo *fakeMediaRepo, store *fakeStore) *Service {
	return NewService(repo, store, 15*time.Minute, 1<<20, zap.NewNop().Sugar())
}

func TestUploadAttachmentStoresObjectAndRecord(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	svc := newMediaService(repo, store)

	m, err := svc.UploadAttachment(context.Background(), "u1", "report.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, models.FileDocument, m.Type)
	assert.Equal(t, int64(8), m.Size)
	assert.True(t, strings.HasPrefix(m.Key, "files/u1/"), "key %q", m.Key)
	assert.Contains(t, store.objects, m.Key)
	assert.Contains(t, repo.records, m.ID)
	assert.Empty(t, m.Thumbnail, "documents get no thumbnail")
}

func TestUploadAttachmentGeneratesImageThumbnail(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	svc := newMediaService(repo, store)

	m, err := svc.UploadAttachment(context.Background(), "u1", "photo.png", "image/png", pngBytes(t))
	require.NoError(t, err)

	assert.Equal(t, models.FileImage, m.Type)
	require.NotEmpty(t, m.Thumbnail)
	assert.Contains(t, store.objects, m.Thumbnail)
}

func TestUploadAttachmentValidation(t *testing.T) {
	svc := newMediaService(newFakeMediaRepo(), newFakeStore())
	ctx := context.Background()

	_, err := svc.UploadAttachment(ctx, "u1", "empty.pdf", "application/pdf", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UploadAttachment(ctx, "u1", "huge.pdf", "application/pdf", make([]byte, 1<<20+1))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UploadAttachment(ctx, "u1", "tool.exe", "application/x-dosexec", []byte("MZ"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestUploadCleansUpOrphanOnRecordFailure(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	repo.insertErr = errors.New("db down")
	svc := newMediaService(repo, store)

	_, err := svc.UploadAttachment(context.Background(), "u1", "report.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.Error(t, err)

	var ue *apperrors.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, store.objects, "failed record write must not leave objects behind")
}

func TestUploadAudioRejectsUnsupportedType(t *testing.T) {
	svc := newMediaService(newFakeMediaRepo(), newFakeStore())

	_, err := svc.UploadAudio(context.Background(), "u1", "note.flac", "audio/flac", []byte("x"))
	assert.True(t, apperrors.IsValidation(err))

	m, err := svc.UploadAudio(context.Background(), "u1", "note.wav", "audio/wav", []byte("RIFF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.Key, "audio/u1/"))
}

func TestResolveURLPrefersPublic(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	store.publicURL = true
	svc := newMediaService(repo, store)

	m, err := svc.UploadAttachment(context.Background(), "u1", "a.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)

	url, err := svc.ResolveURL(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/"))
}

func TestResolveURLPresignsPrivateBuckets(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	svc := newMediaService(repo, store)

	m, err := svc.UploadAttachment(context.Background(), "u1", "a.pdf", "application/pdf", []byte("x"))
	require.NoError(t, err)

	url, err := svc.ResolveURL(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://signed.example.com/"))

	_, err = svc.ResolveURL(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveDeletesObjectAndRecord(t *testing.T) {
	repo, store := newFakeMediaRepo(), newFakeStore()
	svc := newMediaService(repo, store)

	m, err := svc.UploadAttachment(context.Background(), "u1", "photo.png", "image/png", pngBytes(t))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), m.ID))
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.records)
}

func TestMessageURLFallsBackToResolver(t *testing.T) {
	svc := newMediaService(newFakeMediaRepo(), newFakeStore())

	assert.Equal(t, "https://cdn.example.com/k", svc.MessageURL(&models.Media{ID: "x", URL: "https://cdn.example.com/k"}))
	assert.Equal(t, "/api/media/x/url", svc.MessageURL(&models.Media{ID: "x"}))
}
