package signal

import (
	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/protocol"
)

func (ctl *SignalWSController) handleWhoAmI(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	id, rooms, err := ctl.Orch.WhoAmI(sid)
	if err != nil {
		ctl.sendError(conn, err, "")
		return
	}
	resp := protocol.WhoAmI{
		Type:     protocol.TypeWhoAmI,
		Username: string(id),
		Rooms:    make([]string, 0, len(rooms)),
	}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, string(r))
	}
	ctl.sendJSON(conn, resp)
}
