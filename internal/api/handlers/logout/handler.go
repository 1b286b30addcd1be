package logout

import (
	"net/http"
	"time"
)

type Handler struct {
	cookieName string
	secure     bool
}

func NewHandler(cookieName string, secure bool) *Handler {
	return &Handler{cookieName: cookieName, secure: secure}
}

// Handle POST /api/v1/auth/logout
// Токен остается действительным до истечения срока; удаляется только cookie.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
