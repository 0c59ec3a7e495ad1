package utils

import (
	"net/http"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/constvars"
	"strconv"
)

func GetRequestID(r *http.Request) string {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

// GetCurrentUser returns the authenticated caller, or nil for anonymous
// requests (routes behind the auth middleware always have one).
func GetCurrentUser(r *http.Request) *models.CurrentUser {
	currentUser, _ := r.Context().Value(constvars.CONTEXT_CURRENT_USER_KEY).(*models.CurrentUser)
	return currentUser
}

func GetQueryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
