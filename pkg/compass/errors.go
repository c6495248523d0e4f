package compass

import "github.com/lernwerk/compass/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput      = domain.ErrInvalidInput
	ErrUnknownRegion     = domain.ErrUnknownRegion
	ErrUnknownTrack      = domain.ErrUnknownTrack
	ErrIllegalTransition = domain.ErrIllegalTransition
	ErrSessionNotFound   = domain.ErrSessionNotFound
	ErrNotReady          = domain.ErrNotReady
)
