// Package sessions lets a signed-in user see and revoke issued sessions.
package sessions

import (
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// ListResponse is the body of GET /sessions. Sessions is never nil so the
// client always receives a JSON array.
type ListResponse struct {
	Sessions []auth.Session `json:"sessions"`
}

// RevokeResponse is the body of DELETE /sessions/:id.
type RevokeResponse struct {
	Success bool `json:"success"`
}
