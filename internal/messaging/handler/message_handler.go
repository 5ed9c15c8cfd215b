// Package handler translates the messaging HTTP routes into service
// calls. All business rules live in the messaging service; this layer
// only frames requests and responses.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
	"github.com/chaitanyakotagiri27/SecureShift/internal/messaging"
)

type MessageHandler struct {
	svc messaging.Service
}

func NewMessageHandler(svc messaging.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type sendRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// Send handles POST /api/v1/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}
	if req.ReceiverID == "" {
		common.WriteError(w, status.Error(codes.InvalidArgument, "receiver_id is required"))
		return
	}

	msg, err := h.svc.Send(r.Context(), actorID, role, req.ReceiverID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, "message sent successfully", msg)
}

// Inbox handles GET /api/v1/messages/inbox
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	limit, err := limitQuery(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msgs, unread, err := h.svc.Inbox(r.Context(), actorID, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, "inbox messages retrieved successfully", map[string]interface{}{
		"messages":       msgs,
		"total_messages": len(msgs),
		"unread_count":   unread,
	})
}

// Sent handles GET /api/v1/messages/sent
func (h *MessageHandler) Sent(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	limit, err := limitQuery(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msgs, err := h.svc.Sent(r.Context(), actorID, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, "sent messages retrieved successfully", map[string]interface{}{
		"messages":       msgs,
		"total_messages": len(msgs),
	})
}

// Conversation handles GET /api/v1/messages/conversation/{userId}
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	otherID := mux.Vars(r)["userId"]

	limit, err := limitQuery(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	msgs, other, err := h.svc.Conversation(r.Context(), actorID, otherID, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, "conversation retrieved successfully", map[string]interface{}{
		"conversation": map[string]interface{}{
			"participant": other,
			"messages":    msgs,
		},
	})
}

// MarkRead handles PATCH /api/v1/messages/{messageId}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	messageID := mux.Vars(r)["messageId"]

	msg, err := h.svc.MarkRead(r.Context(), actorID, messageID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, "message marked as read", map[string]interface{}{
		"message_id": msg.ID,
		"is_read":    msg.IsRead,
	})
}

// Stats handles GET /api/v1/messages/stats
func (h *MessageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actor(r)
	if !ok {
		common.WriteError(w, status.Error(codes.Unauthenticated, "user not authenticated"))
		return
	}

	stats, err := h.svc.Stats(r.Context(), actorID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, "message statistics retrieved successfully", stats)
}

func actor(r *http.Request) (string, string, bool) {
	id, ok := common.UserIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	role, _ := common.RoleFromContext(r.Context())
	return id, role, true
}

// limitQuery parses the optional ?limit= parameter. Absent means 0, which
// the service replaces with its default; anything that is not a positive
// integer is rejected. Oversized values are clamped downstream.
func limitQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, status.Error(codes.InvalidArgument, "limit must be a positive integer")
	}
	return limit, nil
}
