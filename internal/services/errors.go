package services

import "errors"

// ErrNotInitialized is returned when a session is read before Init created it.
var ErrNotInitialized = errors.New("mystery not initialized")

// Kind classifies why an operation was rejected or failed.
type Kind string

const (
	KindNone               Kind = ""
	KindNotInitialized     Kind = "not_initialized"
	KindValidation         Kind = "validation"
	KindRateLimited        Kind = "rate_limited"
	KindConflict           Kind = "conflict"
	KindStorageUnavailable Kind = "storage_unavailable"
)

// KindOf maps an error returned by a service to its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotInitialized):
		return KindNotInitialized
	default:
		// everything else surfaces from the store (store.ErrUnavailable or a
		// record that no longer decodes)
		return KindStorageUnavailable
	}
}

// Rejection is the structured "no" every admission check returns. A nil
// *Rejection means the operation was accepted.
type Rejection struct {
	Kind    Kind
	Message string
}

func reject(kind Kind, message string) *Rejection {
	return &Rejection{Kind: kind, Message: message}
}
