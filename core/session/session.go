package session

import "time"

// Cookie is the cookie metadata embedded in every stored session.
// Only Expires is interpreted; the remaining fields are carried through unchanged.
type Cookie struct {
	// Expires is the application-level expiry. Nil means the session never
	// expires by this check, though the store-level TTL may still reap it.
	Expires *time.Time

	// OriginalMaxAge is opaque and round-tripped as-is. Decoded numbers are json.Number.
	OriginalMaxAge any

	Path     string
	Domain   string
	SameSite string
	HTTPOnly bool
	Secure   bool
}

// Session is the in-memory form of a stored session record.
type Session struct {
	Cookie Cookie

	// Data holds application fields, stored next to "cookie" at the top level of
	// the serialized payload. The key "cookie" is reserved and ignored here.
	// Decoded numbers are json.Number so large integers keep their exact value.
	Data map[string]any
}

// ExpiresAt returns a cookie with Expires set to t.
func (c Cookie) ExpiresAt(t time.Time) Cookie {
	c.Expires = &t
	return c
}

// IsExpired reports whether the session's cookie expiry is at or before now.
// Sessions without an expiry are never expired.
func (s Session) IsExpired(now time.Time) bool {
	expires, ok := ExtractExpiry(s)
	if !ok {
		return false
	}
	return !expires.After(now)
}
