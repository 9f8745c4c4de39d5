package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/enigma-chat/enigma/internal/command"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"
)

// CommandExecutor turns one line of user input into a structured outcome.
// It is pure dispatch: parsing happens in the command package, state lives
// in the services it delegates to.
type CommandExecutor struct {
	identity *IdentityService
	chat     *ChatService
	media    *MediaService
	calls    *CallService
}

func NewCommandExecutor(identity *IdentityService, chat *ChatService, media *MediaService, calls *CallService) *CommandExecutor {
	return &CommandExecutor{identity: identity, chat: chat, media: media, calls: calls}
}

var recoverable = []error{
	enigma_errors.ErrInvalidFormat,
	enigma_errors.ErrAlreadyTaken,
	enigma_errors.ErrHandleBound,
	enigma_errors.ErrRecipientOffline,
	enigma_errors.ErrUnsupportedType,
	enigma_errors.ErrUnrecognized,
	enigma_errors.ErrMalformed,
	enigma_errors.ErrMissingPayload,
	enigma_errors.ErrNoHandle,
	enigma_errors.ErrInvalidTransition,
	enigma_errors.ErrNotFound,
}

func isRecoverable(err error) bool {
	for _, sentinel := range recoverable {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Execute runs one command for the acting identity. Recoverable failures
// come back as an error outcome with a nil error; a non-nil error means the
// storage layer failed and the request must abort.
func (e *CommandExecutor) Execute(ctx context.Context, id Identity, raw string, upload *MediaUpload) (command.Outcome, error) {
	req, err := command.Interpret(raw)
	if err != nil {
		return command.Failure(err.Error()), nil
	}

	outcome, err := e.dispatch(ctx, id, req, upload)
	if err != nil {
		if isRecoverable(err) {
			return command.Failure(err.Error()), nil
		}
		return nil, err
	}
	return outcome, nil
}

func (e *CommandExecutor) dispatch(ctx context.Context, id Identity, req command.Request, upload *MediaUpload) (command.Outcome, error) {
	if req.Verb == command.VerbUsername {
		u, err := e.identity.Claim(ctx, req.Handle, id.SessionID)
		if err != nil {
			return nil, err
		}
		return command.NewUsernameResult("Username set to: "+u.Handle, u.Handle), nil
	}

	// Every other verb acts on behalf of a claimed handle.
	if id.Handle == "" {
		return nil, enigma_errors.ErrNoHandle
	}

	switch req.Verb {
	case command.VerbMsg:
		if req.Target == command.BroadcastTarget {
			m, err := e.chat.Broadcast(ctx, id.Handle, req.Text)
			if err != nil {
				return nil, err
			}
			if m.KeyName.Valid {
				return command.NewSendResult(fmt.Sprintf("Message broadcasted with key: %s", m.KeyName.String), command.BroadcastTarget, m.KeyName.String), nil
			}
			return command.NewSendResult("Message broadcasted", command.BroadcastTarget, ""), nil
		}
		m, err := e.chat.SendPrivate(ctx, id.Handle, req.Target, req.Text)
		if err != nil {
			return nil, err
		}
		return command.NewSendResult("Message sent to "+m.Recipient, m.Recipient, ""), nil

	case command.VerbImg:
		item, link, err := e.media.Attach(ctx, id.Handle, req.Target, upload)
		if err != nil {
			return nil, err
		}
		return command.NewMediaResult("Image sent to "+item.Recipient, item.Recipient, link), nil

	case command.VerbLive:
		invite, err := e.calls.Initiate(ctx, id.Handle, req.Target)
		if err != nil {
			return nil, err
		}
		return command.NewCallResult("Video chat requested", "video_request", invite.RoomID, invite.Callee), nil

	case command.VerbShare:
		grant, err := e.chat.ShareKey(ctx, id.Handle, req.KeyMaterial, req.Target)
		if err != nil {
			return nil, err
		}
		return command.NewShareResult("Encryption key shared with "+grant.Recipient, grant.Recipient), nil

	case command.VerbCall:
		invite, err := e.calls.Respond(ctx, id.Handle, req.Room, req.Accept)
		if err != nil {
			return nil, err
		}
		msg := "Call rejected"
		if req.Accept {
			msg = "Call accepted"
		}
		return command.NewCallResult(msg, "video_response", invite.RoomID, invite.Caller), nil
	}

	return nil, enigma_errors.ErrUnrecognized
}
