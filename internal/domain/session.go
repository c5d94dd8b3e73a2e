package domain

import "time"

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "session"
	// SessionDuration is the lifetime of a session cookie.
	SessionDuration = 7 * 24 * time.Hour
)

// SameSite mirrors the cookie SameSite attribute without tying the domain to net/http.
type SameSite int

const (
	SameSiteDefault SameSite = iota
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

// Cookie describes a cookie to write on the response.
type Cookie struct {
	Name     string
	Value    string
	MaxAge   int
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite SameSite
}

// SessionCookie builds the session cookie for the given token value.
func SessionCookie(value string, secure bool) Cookie {
	return Cookie{
		Name:     SessionCookieName,
		Value:    value,
		MaxAge:   int(SessionDuration / time.Second),
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: SameSiteLax,
	}
}

// SessionClaims are the verified contents of a session cookie.
type SessionClaims struct {
	UID       string
	SessionID string
	ExpiresAt time.Time
}
