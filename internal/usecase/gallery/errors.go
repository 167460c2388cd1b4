package gallery

import "errors"

// The first four sentinels are the call-level error taxonomy exposed to
// clients; handlers translate them into the legacy E_* codes.
var (
	ErrUnableToLoad           = errors.New("gallery: unable to load")
	ErrUnableToLoadPermission = errors.New("gallery: unable to load, permission denied")
	ErrUnableToSave           = errors.New("gallery: unable to save")
	ErrUnableToFilter         = errors.New("gallery: unable to filter")

	ErrMediaNotFound = errors.New("gallery: media not found")
)
