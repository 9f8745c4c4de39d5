package httpdto

import (
	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/domain/keys"
	"github.com/enigma-chat/enigma/internal/domain/message"
)

type CommandRequest struct {
	Input string `json:"input" form:"input" binding:"required"`
}

type FeedResponse struct {
	Messages []message.FeedItem `json:"messages"`
}

type KeyGrantDTO struct {
	KeyName     string `json:"key_name"`
	KeyMaterial string `json:"key_material"`
}

type ShareGrantDTO struct {
	Sender      string `json:"sender"`
	KeyMaterial string `json:"key_material"`
}

type KeysResponse struct {
	Keys   []KeyGrantDTO   `json:"keys"`
	Shared []ShareGrantDTO `json:"shared"`
}

func FromKeyGrants(grants []keys.KeyGrant) []KeyGrantDTO {
	out := make([]KeyGrantDTO, 0, len(grants))
	for _, g := range grants {
		out = append(out, KeyGrantDTO{KeyName: g.KeyName, KeyMaterial: g.KeyMaterial})
	}
	return out
}

func FromShareGrants(shares []keys.ShareGrant) []ShareGrantDTO {
	out := make([]ShareGrantDTO, 0, len(shares))
	for _, s := range shares {
		out = append(out, ShareGrantDTO{Sender: s.Sender, KeyMaterial: s.KeyMaterial})
	}
	return out
}

type SignalRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Payload string `json:"payload" binding:"required"`
}

type SignalsResponse struct {
	Signals []call.Signal `json:"signals"`
}

type InviteDTO struct {
	Caller string `json:"caller"`
	Room   string `json:"room"`
	Status string `json:"status"`
}

type PendingInvitesResponse struct {
	Invites []InviteDTO `json:"invites"`
}

func FromInvites(invites []call.CallInvite) []InviteDTO {
	out := make([]InviteDTO, 0, len(invites))
	for _, inv := range invites {
		out = append(out, InviteDTO{Caller: inv.Caller, Room: inv.RoomID, Status: inv.Status})
	}
	return out
}
