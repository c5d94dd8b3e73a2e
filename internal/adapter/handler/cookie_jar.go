package handler

import (
	"net/http"
	"time"

	"interview-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

const cookieJarKey = "cookie_jar"

// echoCookieJar implements domain.CookieJar over an echo request/response pair.
// Cookies written during the request shadow the ones the browser sent.
type echoCookieJar struct {
	c         echo.Context
	overrides map[string]*string
}

// cookieJar returns the jar bound to the request, creating it on first use.
func cookieJar(c echo.Context) *echoCookieJar {
	if jar, ok := c.Get(cookieJarKey).(*echoCookieJar); ok {
		return jar
	}
	jar := &echoCookieJar{c: c, overrides: map[string]*string{}}
	c.Set(cookieJarKey, jar)
	return jar
}

func (j *echoCookieJar) Get(name string) (string, bool) {
	if v, ok := j.overrides[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	cookie, err := j.c.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

func (j *echoCookieJar) Set(c domain.Cookie) {
	j.c.SetCookie(&http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		MaxAge:   c.MaxAge,
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: toHTTPSameSite(c.SameSite),
	})
	value := c.Value
	j.overrides[c.Name] = &value
}

func (j *echoCookieJar) Delete(c domain.Cookie) {
	j.c.SetCookie(&http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     c.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: toHTTPSameSite(c.SameSite),
	})
	j.overrides[c.Name] = nil
}

func toHTTPSameSite(s domain.SameSite) http.SameSite {
	switch s {
	case domain.SameSiteLax:
		return http.SameSiteLaxMode
	case domain.SameSiteStrict:
		return http.SameSiteStrictMode
	case domain.SameSiteNone:
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}
