package signal

import (
	"context"
	"encoding/json"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	ctx context.Context,
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.RoomRequest
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, protocol.NewError("Bad payload"))
		return
	}
	if _, err := ctl.Orch.Join(ctx, sid, p.RoomID); err != nil {
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("join failed")
		ctl.sendError(conn, err, "Failed to load messages")
	}
}

// handleLeave drops one subscription; the connection stays open.
func (ctl *SignalWSController) handleLeave(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.RoomRequest
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendJSON(conn, protocol.NewError("Bad payload"))
		return
	}
	room, _, err := ctl.Orch.Leave(sid, p.RoomID)
	if err != nil {
		ctl.sendError(conn, err, "")
		return
	}
	ctl.sendJSON(conn, protocol.Left{Type: protocol.TypeLeft, RoomID: string(room)})
}
