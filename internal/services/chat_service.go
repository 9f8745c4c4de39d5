package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/enigma-chat/enigma/internal/command"
	"github.com/enigma-chat/enigma/internal/domain/keys"
	"github.com/enigma-chat/enigma/internal/domain/message"
	"github.com/enigma-chat/enigma/internal/repository"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
)

// ChatService owns the message store, the key-exchange ledger, and feed
// assembly.
type ChatService struct {
	messages repository.MessageRepository
	keys     repository.KeyRepository
	identity *IdentityService
	cipher   LegacyCipher
	window   int
}

func NewChatService(messages repository.MessageRepository, keyRepo repository.KeyRepository, identity *IdentityService, window int) *ChatService {
	if window <= 0 {
		window = 50
	}
	return &ChatService{messages: messages, keys: keyRepo, identity: identity, window: window}
}

// SendPrivate appends a private message. The recipient must be online at
// send time; the row itself outlives the recipient's presence.
func (s *ChatService) SendPrivate(ctx context.Context, sender, recipient, text string) (message.PrivateMessage, error) {
	online, err := s.identity.IsOnline(ctx, recipient)
	if err != nil {
		return message.PrivateMessage{}, err
	}
	if !online {
		return message.PrivateMessage{}, enigma_errors.ErrRecipientOffline
	}

	m := message.PrivateMessage{
		ID:        uuid.New(),
		Sender:    sender,
		Recipient: recipient,
		Content:   command.Linkify(text),
		SentAt:    time.Now(),
	}
	if err := s.messages.CreatePrivate(ctx, &m); err != nil {
		return message.PrivateMessage{}, err
	}
	return m, nil
}

// Broadcast appends a public message. If the in-band "key" marker is present
// the message half is encrypted with the key-name half and the key name is
// recorded as a grant under the sender; the stored content is then ciphertext
// the server will never decrypt.
func (s *ChatService) Broadcast(ctx context.Context, sender, text string) (message.PublicMessage, error) {
	text = command.Linkify(text)

	m := message.PublicMessage{
		ID:     uuid.New(),
		Sender: sender,
		SentAt: time.Now(),
	}

	if body, keyName, ok := command.SplitKeyMarker(text); ok {
		encrypted, err := s.cipher.Encrypt(body, keyName)
		if err != nil {
			return message.PublicMessage{}, err
		}
		grant := keys.KeyGrant{
			ID:          uuid.New(),
			OwnerHandle: sender,
			KeyName:     keyName,
			KeyMaterial: keyName,
		}
		if err := s.keys.CreateGrant(ctx, &grant); err != nil {
			return message.PublicMessage{}, err
		}
		m.Content = encrypted
		m.KeyName = sql.NullString{String: keyName, Valid: true}
	} else {
		m.Content = text
	}

	if err := s.messages.CreatePublic(ctx, &m); err != nil {
		return message.PublicMessage{}, err
	}
	return m, nil
}

// ShareKey records an explicit one-to-one key hand-off.
func (s *ChatService) ShareKey(ctx context.Context, sender, keyMaterial, target string) (keys.ShareGrant, error) {
	online, err := s.identity.IsOnline(ctx, target)
	if err != nil {
		return keys.ShareGrant{}, err
	}
	if !online {
		return keys.ShareGrant{}, enigma_errors.ErrRecipientOffline
	}

	grant := keys.ShareGrant{
		ID:          uuid.New(),
		Sender:      sender,
		Recipient:   target,
		KeyMaterial: keyMaterial,
		SharedAt:    time.Now(),
	}
	if err := s.keys.CreateShare(ctx, &grant); err != nil {
		return keys.ShareGrant{}, err
	}
	return grant, nil
}

// Feed merges the newest public messages with the caller's newest private
// messages, each window capped, sorted ascending by sent time so the oldest
// item renders first. Key names are exposed; key material never is.
func (s *ChatService) Feed(ctx context.Context, handle string) ([]message.FeedItem, error) {
	public, err := s.messages.RecentPublic(ctx, s.window)
	if err != nil {
		return nil, err
	}

	items := make([]message.FeedItem, 0, len(public))
	for _, m := range public {
		item := message.FeedItem{
			Type:    message.TypePublic,
			ID:      m.ID,
			Sender:  m.Sender,
			Content: m.Content,
			SentAt:  m.SentAt,
		}
		if m.KeyName.Valid {
			item.KeyName = m.KeyName.String
		}
		items = append(items, item)
	}

	if handle != "" {
		private, err := s.messages.RecentPrivate(ctx, handle, s.window)
		if err != nil {
			return nil, err
		}
		for _, m := range private {
			items = append(items, message.FeedItem{
				Type:      message.TypePrivate,
				ID:        m.ID,
				Sender:    m.Sender,
				Recipient: m.Recipient,
				Content:   m.Content,
				SentAt:    m.SentAt,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SentAt.Before(items[j].SentAt)
	})
	return items, nil
}

// Keys returns the caller's own key grants.
func (s *ChatService) Keys(ctx context.Context, owner string) ([]keys.KeyGrant, error) {
	return s.keys.GrantsByOwner(ctx, owner)
}

// SharedWith returns the keys other users have handed to the caller.
func (s *ChatService) SharedWith(ctx context.Context, recipient string) ([]keys.ShareGrant, error) {
	return s.keys.SharesForRecipient(ctx, recipient)
}
