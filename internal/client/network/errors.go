package network

import "errors"

var (
	ErrNotConfigured     = errors.New("network client not configured")
	ErrCapabilityMissing = errors.New("network client lacks capability")
)
