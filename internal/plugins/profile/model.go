// Package profile serves the signed-in user's own profile.
package profile

// UpdateRequest is the body of PUT /update.
type UpdateRequest struct {
	Name string `json:"name"`
}
