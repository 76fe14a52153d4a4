package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/pkg/constants"
)

// setSessionCookies materializes the session on a successful login: the
// token in a script-inaccessible cookie and the username in a readable one,
// both scoped to the whole application path with a fixed one-hour lifetime.
// There is no refresh mechanism; once expired the user re-authenticates.
func setSessionCookies(c *gin.Context, token, username string) {
	c.SetCookie(constants.CookieJWTToken, token, constants.SessionCookieMaxAge, "/", "", false, true)
	c.SetCookie(constants.CookieUsername, username, constants.SessionCookieMaxAge, "/", "", false, false)
}

// clearSessionCookies drops both session cookies on logout.
func clearSessionCookies(c *gin.Context) {
	c.SetCookie(constants.CookieJWTToken, "", -1, "/", "", false, true)
	c.SetCookie(constants.CookieUsername, "", -1, "/", "", false, false)
}
