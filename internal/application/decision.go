package application

import "github.com/ericfisherdev/iocpanel/internal/domain/model"

// Decision is the outcome of a session check: either Authorized or Unauthorized.
type Decision interface {
	decision()
}

// Authorized carries the session that passed the gate.
type Authorized struct {
	Session model.Session
}

// UnauthorizedReason says why a request did not pass the gate. It is for logs
// only; every reason is answered the same way.
type UnauthorizedReason string

const (
	ReasonNoSession   UnauthorizedReason = "no_session"
	ReasonUnknown     UnauthorizedReason = "unknown_session"
	ReasonNotLoggedIn UnauthorizedReason = "not_logged_in"
	ReasonExpired     UnauthorizedReason = "expired"
)

// Unauthorized means the request has no valid logged-in session.
type Unauthorized struct {
	Reason UnauthorizedReason
}

func (Authorized) decision()   {}
func (Unauthorized) decision() {}
