package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/media"
	"github.com/enigma-chat/enigma/internal/repository"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
)

// ObjectStore persists raw media bytes outside the relational store.
// Implemented by the S3 client.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	URL(key string) string
}

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// MediaUpload is the out-of-band binary payload attached to an /img command
// by the transport layer.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type MediaService struct {
	items    repository.MediaRepository
	identity *IdentityService
	store    ObjectStore
}

func NewMediaService(items repository.MediaRepository, identity *IdentityService, store ObjectStore) *MediaService {
	return &MediaService{items: items, identity: identity, store: store}
}

// Attach validates and persists one uploaded image for an online recipient.
// Both the declared content type and the sniffed bytes must land in the
// allow-list; the declared type alone is never trusted. The returned link is
// the public URL when the store has one, else the bare object key.
func (s *MediaService) Attach(ctx context.Context, sender, recipient string, up *MediaUpload) (media.MediaItem, string, error) {
	online, err := s.identity.IsOnline(ctx, recipient)
	if err != nil {
		return media.MediaItem{}, "", err
	}
	if !online {
		return media.MediaItem{}, "", enigma_errors.ErrRecipientOffline
	}

	if up == nil || len(up.Data) == 0 {
		return media.MediaItem{}, "", enigma_errors.ErrMissingPayload
	}
	if !allowedMediaTypes[up.ContentType] {
		return media.MediaItem{}, "", enigma_errors.ErrUnsupportedType
	}
	if sniffed := http.DetectContentType(up.Data); !allowedMediaTypes[sniffed] {
		return media.MediaItem{}, "", enigma_errors.ErrUnsupportedType
	}

	key := objectKey(up.Filename)
	if err := s.store.Put(ctx, key, up.ContentType, bytes.NewReader(up.Data)); err != nil {
		return media.MediaItem{}, "", err
	}

	item := media.MediaItem{
		ID:          uuid.New(),
		Sender:      sender,
		Recipient:   recipient,
		Kind:        media.KindImage,
		StoragePath: key,
		SentAt:      time.Now(),
	}
	if err := s.items.Create(ctx, &item); err != nil {
		return media.MediaItem{}, "", err
	}

	link := s.store.URL(key)
	if link == "" {
		link = key
	}
	return item, link, nil
}

// objectKey builds a collision-resistant name: a fresh UUID prefix plus the
// sanitized original base name.
func objectKey(filename string) string {
	base := filepath.Base(filename)
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "upload"
	}
	return "uploads/" + uuid.NewString() + "_" + base
}
