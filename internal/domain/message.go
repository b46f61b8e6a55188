package domain

import (
	"fmt"
	"time"
)

// SystemUsername is the sender shown on server-generated room notices.
const SystemUsername = "System"

const MaxMessageLen = 4096

// TimestampLayout is ISO-8601 UTC with millisecond precision and a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Message is immutable once created.
type Message struct {
	Room      RoomID
	Sender    Identity
	Body      string
	Timestamp time.Time
}

// NewMessage stamps the message in UTC at millisecond precision so that the
// value broadcast live and the value read back from any store are identical.
func NewMessage(room RoomID, sender Identity, body string, now time.Time) (Message, error) {
	if body == "" {
		return Message{}, fmt.Errorf("%w: missing message", ErrValidation)
	}
	if len(body) > MaxMessageLen {
		return Message{}, fmt.Errorf("%w: message too long", ErrValidation)
	}
	return Message{
		Room:      room,
		Sender:    sender,
		Body:      body,
		Timestamp: now.UTC().Truncate(time.Millisecond),
	}, nil
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Chronological returns msgs reversed into a new slice. Stores hand back
// newest-first pages; clients always see oldest-first.
func Chronological(newestFirst []Message) []Message {
	out := make([]Message, len(newestFirst))
	for i, m := range newestFirst {
		out[len(newestFirst)-1-i] = m
	}
	return out
}
