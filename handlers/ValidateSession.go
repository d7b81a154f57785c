package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorportal/utils"
)

// redirectCookie remembers where the browser was headed when the guard bounced
// it to /login, so a successful login can send it back.
const redirectCookie = "redirect_after_login"

// ValidateSession guards protected routes. It resolves the signed session
// cookie to a session id, reads the bearer token from the store, and bounces
// to /login when either step comes up empty. Storage failures read as "no
// token"; they never produce a 5xx here.
func ValidateSession(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(utils.SessionCookieName)
		if err != nil || cookie == "" {
			bounceToLogin(c)
			return
		}
		sessionID, err := utils.ParseSessionCookie(cookie)
		if err != nil {
			bounceToLogin(c)
			return
		}
		token := env.Store.Read(sessionID)
		if token == "" {
			bounceToLogin(c)
			return
		}
		c.Set("sessionID", sessionID)
		c.Set("authToken", token)
		c.Next()
	}
}

func bounceToLogin(c *gin.Context) {
	c.SetCookie(redirectCookie, c.Request.URL.Path, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// sessionID and authToken are set by ValidateSession on every guarded request.
func sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}

func authToken(c *gin.Context) string {
	return c.GetString("authToken")
}
