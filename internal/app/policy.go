package app

import (
	"fmt"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a subscriber whose delivery failed.
// It runs after the fan-out, never during it.
type Policy interface {
	OnBackPressure(room domain.RoomID, sid core.SessionID) BackpressureAction
}

// KickPolicy disconnects slow or broken consumers.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.RoomID, core.SessionID) BackpressureAction {
	return KickMember
}

// IgnorePolicy drops the frame for that subscriber and keeps it connected.
type IgnorePolicy struct{}

func (IgnorePolicy) OnBackPressure(domain.RoomID, core.SessionID) BackpressureAction {
	return NoAction
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "kick":
		return KickPolicy{}, nil
	case "ignore":
		return IgnorePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
