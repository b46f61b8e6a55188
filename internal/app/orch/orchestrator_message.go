package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
	"github.com/dkeye/roomchat/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Publish persists a message from sid and only then fans it out to the
// current subscribers of the room. When persisting fails nothing is
// delivered. Per-subscriber delivery failures never fail the call.
func (o *Orchestrator) Publish(ctx context.Context, sid core.SessionID, roomRaw, body string) (domain.Message, core.PublishResult, error) {
	id, ok := o.Registry.IdentityOf(sid)
	if !ok {
		return domain.Message{}, core.PublishResult{}, domain.ErrUnauthorized
	}
	room, err := domain.ParseRoomID(roomRaw)
	if err != nil {
		return domain.Message{}, core.PublishResult{}, err
	}
	msg, err := domain.NewMessage(room, id, body, o.now())
	if err != nil {
		return domain.Message{}, core.PublishResult{}, err
	}

	storeCtx, cancel := o.storeCtx(ctx)
	err = o.Messages.SaveMessage(storeCtx, msg)
	cancel()
	if err != nil {
		log.Error().Str("module", "orch").Str("room", string(room)).Str("user", string(id)).Err(err).Msg("save message failed")
		return domain.Message{}, core.PublishResult{}, fmt.Errorf("%w: save message: %v", domain.ErrPersistence, err)
	}

	frame, err := protocol.Encode(protocol.NewReceiveMessage(msg))
	if err != nil {
		return msg, core.PublishResult{}, err
	}
	res := o.broadcast(room, frame)
	return msg, res, nil
}

// History returns up to limit messages of roomRaw in chronological order,
// skipping the offset newest ones. A zero limit means the default page size.
func (o *Orchestrator) History(ctx context.Context, roomRaw string, limit, offset int) ([]domain.Message, error) {
	room, err := domain.ParseRoomID(roomRaw)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrValidation)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrValidation)
	}
	if limit == 0 {
		limit = o.pageSize()
	}

	ctx, cancel := o.storeCtx(ctx)
	defer cancel()
	page, err := o.Messages.FetchMessages(ctx, room, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch messages: %v", domain.ErrPersistence, err)
	}
	if len(page) > limit {
		page = page[:limit]
	}
	return domain.Chronological(page), nil
}
