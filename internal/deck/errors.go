package deck

import "errors"

// Sentinel errors returned by Store operations. Callers decide on user
// messaging; the store never logs rejections on its own.
var (
	// ErrDeckNotFound is returned for operations against an unknown
	// deck id, including a deck deleted while a request was in flight.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrEntryNotFound is returned when an entry id or index does not
	// exist in the named zone. The deck is left unchanged.
	ErrEntryNotFound = errors.New("deck entry not found")

	// ErrZoneMismatch is returned when a card's type is not legal in
	// the target zone: extra-deck types may not enter main, and
	// main-deck types may not enter extra. Side accepts either.
	ErrZoneMismatch = errors.New("card type not legal in zone")

	// ErrCopyLimit is returned when adding a card would exceed its
	// copy limit: one copy for extra-deck types (across extra+side),
	// three otherwise (across main+side).
	ErrCopyLimit = errors.New("copy limit exceeded")

	// ErrInvalidZone is returned for a zone string outside
	// main/extra/side.
	ErrInvalidZone = errors.New("unknown zone")

	// ErrInvalidIcon is returned for an icon outside the fixed enum.
	ErrInvalidIcon = errors.New("unknown deck icon")
)
