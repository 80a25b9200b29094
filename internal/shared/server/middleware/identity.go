package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-generator/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	isGuestKey   = "isGuest"
	variantIDKey = "variantId"
	resumeIDKey  = "resumeId"

	// GuestCookie carries the guest id of browsers that send no identity header.
	GuestCookie = "resume_guest"

	guestPrefix    = "guest:"
	guestCookieAge = 365 * 24 * 60 * 60
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:@-]{1,128}$`)

// Identity stores the caller's user id in context. X-User-Id wins; otherwise
// the caller is a guest identified by X-Guest-Id or the guest cookie, and a
// fresh guest id is issued as an HttpOnly cookie when neither is present.
// Guest ids are stored as "guest:<uuid>".
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			if !userIDPattern.MatchString(userID) {
				respond.Error(c, http.StatusBadRequest, "invalid_identity", "X-User-Id contains unsupported characters", nil)
				return
			}
			c.Set(userIDKey, userID)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}

		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			if _, err := uuid.Parse(guestID); err != nil {
				respond.Error(c, http.StatusBadRequest, "invalid_identity", "X-Guest-Id must be a UUID", nil)
				return
			}
			setGuest(c, guestID)
			c.Next()
			return
		}

		guestID, err := c.Cookie(GuestCookie)
		if err != nil || uuid.Validate(guestID) != nil {
			guestID = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     GuestCookie,
				Value:    guestID,
				Path:     "/",
				MaxAge:   guestCookieAge,
				HttpOnly: true,
				Secure:   isHTTPS(c),
				SameSite: http.SameSiteLaxMode,
			})
		}
		setGuest(c, guestID)
		c.Next()
	}
}

func setGuest(c *gin.Context, guestID string) {
	c.Set(userIDKey, guestPrefix+strings.ToLower(guestID))
	c.Set(isGuestKey, true)
}

func isHTTPS(c *gin.Context) bool {
	return c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// IsGuest reports whether the caller was identified by a guest id.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}

// SetVariantID tags the request log with the form variant in use.
func SetVariantID(c *gin.Context, id string) {
	c.Set(variantIDKey, id)
}

// SetResumeID tags the request log with the generated resume.
func SetResumeID(c *gin.Context, id string) {
	c.Set(resumeIDKey, id)
}
