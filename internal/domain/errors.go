package domain

import "errors"

var (
	// ErrNoCredential means the translation provider has no API key configured.
	ErrNoCredential = errors.New("translation credential not configured")
	// ErrMisaligned means the provider did not return one translation per input.
	ErrMisaligned = errors.New("translation response misaligned with request")
)
