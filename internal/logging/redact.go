// Contentgate - Age-Gated Content Rating and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentgate

package logging

import (
	"strings"
	"unicode/utf8"
)

// SanitizeUserID masks a user ID for privacy.
// Example: "user-12345678" -> "user...5678"
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if utf8.RuneCountInString(userID) <= 8 {
		return "***"
	}
	r := []rune(userID)
	return string(r[:4]) + "..." + string(r[len(r)-4:])
}

// sensitiveKeys are metadata keys whose values never reach the logs.
var sensitiveKeys = map[string]bool{
	"token":         true,
	"access_token":  true,
	"password":      true,
	"secret":        true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"cookie":        true,
	"session":       true,
	"session_id":    true,
	"email":         true,
}

// SanitizeValue masks value when key names a sensitive field or the value
// looks like an email address.
func SanitizeValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		if value == "" {
			return ""
		}
		return "***"
	}
	if at := strings.Index(value, "@"); at > 0 && strings.Contains(value[at:], ".") {
		return "***" + value[at:]
	}
	return value
}

// MetadataKeys returns the keys of metadata with sensitive ones masked, for
// logging the shape of a payload without its contents.
func MetadataKeys(metadata map[string]any) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		if sensitiveKeys[strings.ToLower(k)] {
			k = "***"
		}
		keys = append(keys, k)
	}
	return keys
}

// Excerpt truncates s to at most maxRunes runes for log output.
func Excerpt(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxRunes]) + "..."
}
