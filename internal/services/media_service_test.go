package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/enigma-chat/enigma/internal/domain/media"
	"github.com/enigma-chat/enigma/internal/services"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal payloads that content sniffing recognizes.
var (
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

type mediaFixture struct {
	items *fakeMediaRepo
	store *fakeObjectStore
	media *services.MediaService
}

func newMediaFixture(t *testing.T, online ...string) *mediaFixture {
	t.Helper()
	users := newFakeUserRepo()
	identity := newIdentityService(users)
	for _, handle := range online {
		_, err := identity.Claim(context.Background(), handle, uuid.New())
		require.NoError(t, err)
	}
	items := &fakeMediaRepo{}
	store := newFakeObjectStore()
	return &mediaFixture{
		items: items,
		store: store,
		media: services.NewMediaService(items, identity, store),
	}
}

func TestAttachStoresImage(t *testing.T) {
	f := newMediaFixture(t, "alice", "bob")

	item, link, err := f.media.Attach(context.Background(), "alice", "bob", &services.MediaUpload{
		Filename:    "cat.gif",
		ContentType: "image/gif",
		Data:        gifBytes,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", item.Sender)
	assert.Equal(t, "bob", item.Recipient)
	assert.Equal(t, media.KindImage, item.Kind)
	assert.True(t, strings.HasPrefix(item.StoragePath, "uploads/"))
	assert.True(t, strings.HasSuffix(item.StoragePath, "_cat.gif"))
	assert.Equal(t, "https://cdn.test/"+item.StoragePath, link)

	assert.Equal(t, gifBytes, f.store.objects[item.StoragePath])
	require.Len(t, f.items.items, 1)
}

func TestAttachOfflineRecipient(t *testing.T) {
	f := newMediaFixture(t, "alice")

	_, _, err := f.media.Attach(context.Background(), "alice", "ghost", &services.MediaUpload{
		Filename:    "cat.gif",
		ContentType: "image/gif",
		Data:        gifBytes,
	})
	assert.ErrorIs(t, err, enigma_errors.ErrRecipientOffline)
}

func TestAttachMissingPayload(t *testing.T) {
	f := newMediaFixture(t, "alice", "bob")

	_, _, err := f.media.Attach(context.Background(), "alice", "bob", nil)
	assert.ErrorIs(t, err, enigma_errors.ErrMissingPayload)

	_, _, err = f.media.Attach(context.Background(), "alice", "bob", &services.MediaUpload{Filename: "x.png", ContentType: "image/png"})
	assert.ErrorIs(t, err, enigma_errors.ErrMissingPayload)
}

func TestAttachRejectsDeclaredType(t *testing.T) {
	f := newMediaFixture(t, "alice", "bob")

	_, _, err := f.media.Attach(context.Background(), "alice", "bob", &services.MediaUpload{
		Filename:    "note.txt",
		ContentType: "text/plain",
		Data:        gifBytes,
	})
	assert.ErrorIs(t, err, enigma_errors.ErrUnsupportedType)
}

// A payload whose bytes don't sniff as an allowed image is rejected even when
// the declared type lies.
func TestAttachRejectsMismatchedBytes(t *testing.T) {
	f := newMediaFixture(t, "alice", "bob")

	_, _, err := f.media.Attach(context.Background(), "alice", "bob", &services.MediaUpload{
		Filename:    "fake.png",
		ContentType: "image/png",
		Data:        []byte("#!/bin/sh\nrm -rf /\n"),
	})
	assert.ErrorIs(t, err, enigma_errors.ErrUnsupportedType)
	assert.Empty(t, f.store.objects)
}

func TestAttachSanitizesFilename(t *testing.T) {
	f := newMediaFixture(t, "alice", "bob")

	item, _, err := f.media.Attach(context.Background(), "alice", "bob", &services.MediaUpload{
		Filename:    "../../etc/pass wd.png",
		ContentType: "image/png",
		Data:        pngBytes,
	})
	require.NoError(t, err)
	assert.NotContains(t, item.StoragePath, "..")
	assert.NotContains(t, item.StoragePath, " ")
	assert.True(t, strings.HasPrefix(item.StoragePath, "uploads/"))
}
