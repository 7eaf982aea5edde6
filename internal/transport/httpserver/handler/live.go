package handler

import "net/http"

// Live upgrades to a websocket carrying the child's record events.
// HouseholdAccess has already checked the caller can view the child.
func (h *Handlers) Live(w http.ResponseWriter, r *http.Request) {
	_, childID, ok := scope(w, r)
	if !ok {
		return
	}
	h.Hub.ServeWS(w, r, childID)
}
