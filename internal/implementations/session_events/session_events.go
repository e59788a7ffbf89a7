package sessionevents

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"

	"github.com/r3labs/sse/v2"
)

type event struct {
	Kind user.SessionEventKind `json:"kind"`
	At   time.Time             `json:"at"`
}

// SSE publishes session events to the per-user stream of the SSE server.
// Users without an open stream are skipped.
type SSE struct {
	log    logging.Logger
	server *sse.Server
	now    func() time.Time
}

func NewSSE(log logging.Logger, server *sse.Server, now func() time.Time) *SSE {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &SSE{log: log, server: server, now: now}
}

func StreamID(userID user.ID) string {
	return strconv.FormatInt(int64(userID), 10)
}

func (p *SSE) PublishSessionEvent(ctx context.Context, userID user.ID, kind user.SessionEventKind) {
	streamID := StreamID(userID)
	if !p.server.StreamExists(streamID) {
		return
	}

	data, err := json.Marshal(event{Kind: kind, At: p.now()})
	if err != nil {
		logging.Error(ctx, p.log, err)
		return
	}
	p.server.Publish(streamID, &sse.Event{Event: []byte(kind), Data: data})
	p.log.Debug(ctx, "Session event published.", logging.Entry("userID", userID), logging.Entry("kind", kind))
}
