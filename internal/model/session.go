package model

import (
	"encoding/json"
	"time"
)

// SessionData contains the data stored with a session token. The CMS JWT is
// kept server-side; clients only ever see the opaque session token.
type SessionData struct {
	CMSToken  string          `json:"cms_token"`
	User      json.RawMessage `json:"user,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}
