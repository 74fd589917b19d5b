// Package identity normalizes the compound sender identifiers the
// WhatsApp gateway puts in its webhook payloads.
package identity

import "strings"

// UserSuffix is the JID domain for individual WhatsApp users.
const UserSuffix = "@s.whatsapp.net"

// contextDelimiter separates the device-qualified JID from the group or
// channel it was seen in, e.g.
// "6285890392419:56@s.whatsapp.net in 120363abc@g.us".
const contextDelimiter = " in "

// Normalize extracts the canonical sender address from a raw compound
// identifier. The device qualifier (":56") is dropped when the identifier
// carries one. Returns ok=false when no sender can be recovered.
//
// Normalize is idempotent: a canonical address contains neither a device
// qualifier nor a context suffix, so it passes through unchanged.
func Normalize(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	jid, _, _ := strings.Cut(raw, contextDelimiter)

	parts := strings.SplitN(jid, ":", 2)
	if len(parts) == 2 && strings.Contains(parts[1], UserSuffix) {
		return parts[0] + UserSuffix, true
	}

	// No device qualifier, or an unexpected shape: keep the segment as-is.
	return jid, true
}
