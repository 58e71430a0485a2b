package logger

import (
	"log/slog"
	"strings"
)

// Stored values are user data and are masked like credentials.
var sensitiveKeyPatterns = []string{
	"value",
	"password",
	"secret",
	"token",
	"credential",
	"auth",
}

const redactedValue = "***REDACTED***"

// redactAttr is the slog ReplaceAttr hook. slog descends into groups
// itself, so only leaf attributes reach it. Empty values stay visible.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if !IsSensitiveKey(a.Key) || isEmpty(a.Value.Resolve()) {
		return a
	}
	return slog.String(a.Key, redactedValue)
}

func isEmpty(v slog.Value) bool {
	switch v.Kind() {
	case slog.KindString:
		return v.String() == ""
	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return true
		case []byte:
			return len(x) == 0
		}
	}
	return false
}

// IsSensitiveKey reports whether an attribute key may carry user data or
// credentials. Matching is by case-insensitive substring.
func IsSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(key, p) {
			return true
		}
	}
	return false
}
