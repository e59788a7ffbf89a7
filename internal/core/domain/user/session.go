package user

import "context"

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}

type SessionEventKind string

const (
	SessionEventSignedIn        SessionEventKind = "signed-in"
	SessionEventSignedOut       SessionEventKind = "signed-out"
	SessionEventSessionsRevoked SessionEventKind = "sessions-revoked"
)

// SessionEventPublisher pushes session state changes to the live
// per-user stream so that open clients can refresh their navigation.
type SessionEventPublisher interface {
	PublishSessionEvent(ctx context.Context, userID ID, kind SessionEventKind)
}
