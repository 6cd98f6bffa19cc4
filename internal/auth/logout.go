package auth

import (
	"net/http"

	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

type Handler struct {
	cookieDomain string
}

func NewHandler(cookieDomain string) *Handler {
	return &Handler{cookieDomain: cookieDomain}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Me reports who the request is authenticated as. It must sit behind
// AuthMiddleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	config.JSON(w, http.StatusOK, MeResponse{UserID: claims.UserID, Role: claims.Role})
}
