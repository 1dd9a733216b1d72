package utils

import "strings"

// PageURL maps a human-readable page name to its route path,
// e.g. "Profile Settings" -> "/Profile-Settings".
func PageURL(pageName string) string {
	return "/" + strings.ReplaceAll(strings.TrimSpace(pageName), " ", "-")
}
