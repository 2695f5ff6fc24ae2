package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Platform packages return these
// (optionally wrapped) so callers can translate them into coded errors.
//
// - ErrUnavailable: database or cache could not be reached
// - ErrTooManyClients: server refused the connection for lack of slots
var (
	ErrUnavailable    = errors.New("unavailable")
	ErrTooManyClients = errors.New("too many clients")
)
