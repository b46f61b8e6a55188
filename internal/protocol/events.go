// Package protocol defines the JSON events exchanged over the chat socket.
// Every frame is a flat JSON object carrying a "type" discriminator.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

// Client -> server.
const (
	TypeJoinRoom    = "join_room"
	TypeLeaveRoom   = "leave_room"
	TypeSendMessage = "send_message"
	TypePing        = "ping"
	TypeWhoAmI      = "whoami"
)

// Server -> client.
const (
	TypeJoinAnnouncement = "join_room_announcement"
	TypePreviousMessages = "previous_messages"
	TypeReceiveMessage   = "receive_message"
	TypeLeft             = "left"
	TypePong             = "pong"
	TypeError            = "error"
)

type Envelope struct {
	Type string `json:"type"`
}

// RoomRequest is the payload of join_room and leave_room.
// encoding/json matches keys case-insensitively, so "roomid" is accepted too.
type RoomRequest struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type SendMessageRequest struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// MessageView is how a persisted message looks on the wire and over HTTP.
type MessageView struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func NewMessageView(m domain.Message) MessageView {
	return MessageView{
		Username:  string(m.Sender),
		Message:   m.Body,
		Timestamp: domain.FormatTimestamp(m.Timestamp),
	}
}

// MessageViews never returns nil so an empty history encodes as [].
func MessageViews(msgs []domain.Message) []MessageView {
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageView(m))
	}
	return out
}

type Announcement struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func JoinAnnouncement(room domain.RoomID, who domain.Identity) Announcement {
	return Announcement{
		Type:     TypeJoinAnnouncement,
		RoomID:   string(room),
		Username: domain.SystemUsername,
		Message:  fmt.Sprintf("%s has joined the room.", who),
	}
}

type PreviousMessages struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"roomId"`
	Messages []MessageView `json:"messages"`
}

func NewPreviousMessages(room domain.RoomID, msgs []domain.Message) PreviousMessages {
	return PreviousMessages{
		Type:     TypePreviousMessages,
		RoomID:   string(room),
		Messages: MessageViews(msgs),
	}
}

type ReceiveMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func NewReceiveMessage(m domain.Message) ReceiveMessage {
	return ReceiveMessage{
		Type:      TypeReceiveMessage,
		RoomID:    string(m.Room),
		Username:  string(m.Sender),
		Message:   m.Body,
		Timestamp: domain.FormatTimestamp(m.Timestamp),
	}
}

type Left struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type WhoAmI struct {
	Type     string   `json:"type"`
	Username string   `json:"username"`
	Rooms    []string `json:"rooms"`
}

type Error struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func NewError(msg string) Error {
	return Error{Type: TypeError, Msg: msg}
}

func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return core.Frame(b), nil
}
