package models

import (
	"fmt"
)

// Validity is the verification state of an airport's WiFi network name
type Validity int

const (
	// ValidityInvalid marks a record whose state is missing or in error
	ValidityInvalid Validity = -1
	// ValidityUnverified is the state of every record after validation
	ValidityUnverified Validity = 0
	// ValidityVerified is set once a matching SSID entry has been attached
	ValidityVerified Validity = 1
)

// String returns a lowercase name for the state
func (v Validity) String() string {
	switch v {
	case ValidityVerified:
		return "verified"
	case ValidityUnverified:
		return "unverified"
	case ValidityInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("invalid(%d)", int(v))
	}
}

// Known reports whether v is one of the three defined states
func (v Validity) Known() bool {
	return v == ValidityVerified || v == ValidityUnverified || v == ValidityInvalid
}
