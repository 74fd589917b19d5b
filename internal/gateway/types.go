package gateway

import "fmt"

// Response is the envelope the gateway wraps every result in.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// APIError is a failed gateway call: either a non-2xx HTTP status or a
// response whose code marks an error.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("gateway: %s (%s)", e.Message, e.Code)
}

// PresenceType is the gateway-wide presence state.
type PresenceType string

const (
	PresenceAvailable   PresenceType = "available"
	PresenceUnavailable PresenceType = "unavailable"
	PresenceComposing   PresenceType = "composing"
	PresencePaused      PresenceType = "paused"
	PresenceRecording   PresenceType = "recording"
)

// ValidPresenceTypes lists every presence state the gateway accepts, in the
// order user-facing messages enumerate them.
var ValidPresenceTypes = []PresenceType{
	PresenceAvailable,
	PresenceUnavailable,
	PresenceComposing,
	PresencePaused,
	PresenceRecording,
}

// IsValidPresence reports whether s names a known presence state.
func IsValidPresence(s string) bool {
	for _, p := range ValidPresenceTypes {
		if string(p) == s {
			return true
		}
	}
	return false
}

// MessageOptions carries the optional fields of a text send.
type MessageOptions struct {
	ReplyMessageID string
	IsForwarded    bool
}

// MediaOptions carries the optional fields shared by media sends.
type MediaOptions struct {
	Caption     string
	ViewOnce    bool
	Compress    bool
	IsForwarded bool
}
