package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"vendorportal/models"
	"vendorportal/storage"
	"vendorportal/utils"
)

// establishSession mints a session, persists the bearer token against it and
// sets the signed session cookie. Returns the session id.
func establishSession(c *gin.Context, env *Env, token string) (string, error) {
	sid := utils.NewSessionID()
	env.Store.Save(sid, token)
	cookie, err := utils.GenerateSessionCookie(sid)
	if err != nil {
		return "", err
	}
	c.SetCookie(utils.SessionCookieName, cookie, int(utils.SessionTTL.Seconds()), "/", "", false, true)
	return sid, nil
}

// consumeRedirect pops the remembered post-login destination, defaulting to
// /profile. The root path is normalized to /profile as well.
func consumeRedirect(c *gin.Context) string {
	target, err := c.Cookie(redirectCookie)
	if err == nil && target != "" {
		c.SetCookie(redirectCookie, "", -1, "/", "", false, true)
	}
	return normalizeRedirect(target)
}

func normalizeRedirect(target string) string {
	if target == "" || target == "/" || !strings.HasPrefix(target, "/") {
		return "/profile"
	}
	return target
}

// SignupHandler registers a vendor account
// @Summary Sign up
// @Description Create a vendor account on the backend and start a portal session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Signup payload"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /signup [post]
func SignupHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		resp, err := env.API.Signup(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		sid, err := establishSession(c, env, resp.Token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}
		storage.LogActivity(env.Gorm, "auth", "signup", "vendor account created", sid)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Signed up",
			"user":     resp.User,
			"redirect": consumeRedirect(c),
		})
	}
}

// LoginHandler authenticates a vendor
// @Summary Log in
// @Description Authenticate against the backend and start a portal session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login payload"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func LoginHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		resp, err := env.API.Login(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		sid, err := establishSession(c, env, resp.Token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}
		storage.LogActivity(env.Gorm, "auth", "login", "vendor logged in", sid)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Logged in",
			"user":     resp.User,
			"redirect": consumeRedirect(c),
		})
	}
}

// LogoutHandler ends the portal session
// @Summary Log out
// @Description Clear the stored bearer token and expire the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /portal/logout [post]
func LogoutHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		env.Store.Clear(sid)
		env.Drafts.Delete(sid)
		c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
		storage.LogActivity(env.Gorm, "auth", "logout", "vendor logged out", sid)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GoogleAuthStartHandler begins the Google OAuth handshake
// @Summary Start Google OAuth
// @Description Fetch the backend's Google consent URL and redirect the browser to it
// @Tags Authentication
// @Param phone query string false "Phone to attach to the account after the handshake"
// @Success 302
// @Router /auth/google [get]
func GoogleAuthStartHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirect := env.PortalBaseURL + "/auth/google/success"
		if phone := c.Query("phone"); phone != "" {
			redirect += "?phone=" + url.QueryEscape(phone)
		}
		authURL, err := env.API.GoogleAuthURL(c.Request.Context(), redirect)
		if err != nil {
			log.Println("[oauth-start]", err)
			c.Redirect(http.StatusFound, "/login?error=oauth_failed")
			return
		}
		c.Redirect(http.StatusFound, authURL)
	}
}

// OAuthSuccessHandler captures the backend's OAuth callback
// @Summary Google OAuth landing
// @Description Capture the bearer token from the OAuth redirect, persist it and route the browser onward
// @Tags Authentication
// @Param token query string false "Bearer token issued by the backend"
// @Param error query string false "Error code when the handshake failed"
// @Param redirect query string false "Post-login destination"
// @Param phone query string false "Phone captured before the handshake"
// @Success 302
// @Router /auth/google/success [get]
func OAuthSuccessHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		errParam := c.Query("error")

		if errParam != "" || token == "" {
			log.Println("[oauth-success] handshake failed:", errParam)
			c.Redirect(http.StatusFound, "/login?error=oauth_failed")
			return
		}

		sid := utils.NewSessionID()
		env.Store.Save(sid, token)
		// Read the token back before redirecting: the guard on the next
		// request must be able to see it, otherwise the browser would land on
		// /profile only to bounce straight back to /login.
		if env.Store.Read(sid) == "" {
			log.Println("[oauth-success] token not readable after save, store unavailable")
			c.Redirect(http.StatusFound, "/login?error=oauth_failed")
			return
		}
		cookie, err := utils.GenerateSessionCookie(sid)
		if err != nil {
			log.Println("[oauth-success] failed to sign session cookie:", err)
			c.Redirect(http.StatusFound, "/login?error=oauth_failed")
			return
		}
		c.SetCookie(utils.SessionCookieName, cookie, int(utils.SessionTTL.Seconds()), "/", "", false, true)

		// Phone reconciliation is best-effort: a failure is logged and never
		// blocks the redirect.
		if phone := c.Query("phone"); phone != "" {
			user, err := env.API.CurrentUser(c.Request.Context(), token)
			switch {
			case err != nil:
				log.Println("[oauth-success] failed to fetch user for phone reconciliation:", err)
			case user.Phone == "":
				if _, err := env.API.UpdatePhone(c.Request.Context(), token, phone); err != nil {
					log.Println("[oauth-success] failed to attach phone:", err)
				}
			}
		}

		storage.LogActivity(env.Gorm, "auth", "oauth-success", "google oauth completed", sid)
		c.Redirect(http.StatusFound, normalizeRedirect(c.Query("redirect")))
	}
}

// MeHandler returns the authenticated vendor
// @Summary Current user
// @Description Fetch the authenticated user from the backend
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /portal/me [get]
func MeHandler(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := env.API.CurrentUser(c.Request.Context(), authToken(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
