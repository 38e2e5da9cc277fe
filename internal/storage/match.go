package storage

import "strings"

// LikeEscape is the escape character used in LIKE patterns built by EscapeLike
const LikeEscape = `\`

// EscapeLike escapes LIKE metacharacters so the fragment matches literally
func EscapeLike(fragment string) string {
	r := strings.NewReplacer(
		LikeEscape, LikeEscape+LikeEscape,
		"%", LikeEscape+"%",
		"_", LikeEscape+"_",
	)
	return r.Replace(fragment)
}

// ContainsFold reports whether name contains fragment, ignoring case.
// Backends without a native case-insensitive match use this so that every
// backend applies the same matching policy.
func ContainsFold(name, fragment string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}

// NormalizeEmail lower-cases and trims an email for use as a lookup key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
