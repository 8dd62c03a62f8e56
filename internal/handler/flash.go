package handler

import (
	"net/http"
)

const (
	flashCookie = "flash"
	flashSent   = "sent"
)

func setFlash(w http.ResponseWriter, path, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     path,
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash value for path and clears it.
func popFlash(w http.ResponseWriter, r *http.Request, path string) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Value
}
