package signal

import (
	"context"
	"encoding/json"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/dkeye/roomchat/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleSendMessage(
	ctx context.Context,
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.SendMessageRequest
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendJSON(conn, protocol.NewError("Bad payload"))
		return
	}
	if id, ok := ctl.Orch.Registry.IdentityOf(sid); ok && !ctl.opts.Limiter.Allow(string(id)) {
		log.Info().Str("module", "signal").Str("user", string(id)).Msg("send rate limited")
		ctl.sendError(conn, domain.ErrRateLimited, "")
		return
	}
	if _, _, err := ctl.Orch.Publish(ctx, sid, p.RoomID, p.Message); err != nil {
		ctl.sendError(conn, err, "Failed to save message")
	}
}
