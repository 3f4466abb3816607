package audiobook

import "errors"

var (
	ErrDisabled       = errors.New("audiobook plugin is disabled")
	ErrNoLibrary      = errors.New("audiobook library id is not configured")
	ErrUsage          = errors.New("usage: /ab <book> <episode>")
	ErrEmptyLibrary   = errors.New("no audiobooks in library")
	ErrBookNotFound   = errors.New("audiobook not found")
	ErrNoEpisodes     = errors.New("audiobook has no episodes")
	ErrEpisodeOutside = errors.New("reference episode out of range")
)
