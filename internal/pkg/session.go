package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID reports whether id looks like one issued by GenerateNewSessionID.
func IsValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SessionCookieName is the cookie both transports read the session id from.
const SessionCookieName = "user_session"
