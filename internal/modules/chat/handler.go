package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/campaign"
	"github.com/influencehub/marketplace-api/internal/modules/user"
)

// Handler exposes chat and message HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chats", h.openChat)
	r.Get("/chats/user/{user_id}", h.listChats)

	r.Post("/messages", h.sendMessage)
	r.Get("/messages/{chat_id}", h.listMessages)
}

func (h *Handler) openChat(w http.ResponseWriter, r *http.Request) {
	var req OpenChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.OpenChat(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) listChats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	chats, err := h.service.ListChatsForUser(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, chats)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.service.SendMessage(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusCreated, m)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chat_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid chat id"})
		return
	}
	messages, err := h.service.ListMessages(r.Context(), chatID)
	if err != nil {
		h.fail(w, err)
		return
	}
	respond(w, http.StatusOK, messages)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, campaign.ErrNotFound), errors.Is(err, user.ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrInvalidChat), errors.Is(err, ErrEmptyMessage):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotParticipant):
		respond(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		h.log.Error("chat request failed", zap.Error(err))
		respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
