package handlers

import "net/http"

// The auth middleware stores the authenticated principal in the request
// context under these keys.
func userIDFromRequest(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok
}

func roleFromRequest(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
