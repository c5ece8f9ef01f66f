package domain

import (
	"errors"
)

var (
	MessageFailedGetShortLink = "failed to get short link"

	ErrShortLinkNotFound = errors.New("short link not found")
	// ErrShortLinkExhausted is returned when key generation keeps colliding
	// past the retry bound. Should never happen in normal operation.
	ErrShortLinkExhausted = errors.New("could not generate a unique short link key")
)

type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
