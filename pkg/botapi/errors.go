package botapi

import "strings"

// Markers the exchange embeds in authentication failures. -2015 is the
// "invalid API-key, IP, or permissions" error code.
var credentialMarkers = []string{"-2015", "API-key"}

// IsCredentialFailure reports whether a backend failure message looks
// like an expired or invalid API key. This is a best-effort substring
// heuristic: the message format belongs to the upstream exchange and
// carries no stable error-code contract at this layer.
func IsCredentialFailure(message string) bool {
	for _, marker := range credentialMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
