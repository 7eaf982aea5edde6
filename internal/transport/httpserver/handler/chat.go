package handler

import (
	"net/http"

	"baby-tracker-go/internal/assistant"
	"baby-tracker-go/internal/chat"
	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
)

// StreamChat streams one assistant exchange as server-sent events. Validation and
// access failures are plain JSON errors; once the stream has started, failures
// are sent as an error event followed by [DONE].
func (h *Handlers) StreamChat(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req chat.Request
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	if err := h.Chat.Validate(req); err != nil {
		h.fail(w, "chat.validate", err, "user_id", user.ID)
		return
	}
	if _, err := h.Access.Authorize(r.Context(), user.ID, household.Target{ChildID: req.ChildID}, household.RoleViewer); err != nil {
		h.fail(w, "chat.authorize", err, "user_id", user.ID, "child_id", req.ChildID)
		return
	}

	ctx := assistant.WithActor(r.Context(), user.ID)
	stream := chat.NewStreamWriter(w)
	err := h.Chat.Run(ctx, req, stream.Send)
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			h.log.InternalError("chat.run: failed", err, "user_id", user.ID, "child_id", req.ChildID)
		} else {
			h.log.BusinessError("chat.run: rejected", err, "user_id", user.ID, "child_id", req.ChildID)
		}
		_ = stream.Send(chat.Event{Type: chat.EventError, Error: errs.Message(err)})
	}
	_ = stream.Done()
}
