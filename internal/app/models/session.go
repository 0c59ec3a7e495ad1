package models

// Session is what the auth middleware resolves a bearer token into.
// PathologistCode is only set for pathologist users and drives the
// role-scoped listing default.
type Session struct {
	SessionID       string `json:"session_id"`
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	PathologistCode string `json:"pathologist_code,omitempty"`
}

// CurrentUser is the caller identity handed to the engines.
type CurrentUser struct {
	ID              string
	Role            string
	PathologistCode string
}

func (s *Session) ToCurrentUser() *CurrentUser {
	return &CurrentUser{
		ID:              s.UserID,
		Role:            s.Role,
		PathologistCode: s.PathologistCode,
	}
}
