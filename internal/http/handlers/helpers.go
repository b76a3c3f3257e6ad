package handlers

import (
	"strconv"
	"strings"
)

// normalizeReturnTo accepts only local absolute paths so redirects cannot
// leave the site.
func normalizeReturnTo(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s[0] != '/' {
		return ""
	}
	// protocol-relative //evil.example and /\evil.example
	if len(s) >= 2 && (s[1] == '/' || s[1] == '\\') {
		return ""
	}
	if strings.Contains(s, "://") || strings.ContainsAny(s, "\r\n") {
		return ""
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
