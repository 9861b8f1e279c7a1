package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/socialhub/internal/middleware"
	"example.com/socialhub/internal/models"
	"example.com/socialhub/internal/store"
	"github.com/google/uuid"
)

// sendMessageHandler stores a direct message to another user.
// Expects JSON body: {"recipientId": "...", "message": "...", "img": "..."}
func (s *Server) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		RecipientID string `json:"recipientId"`
		Message     string `json:"message"`
		Img         string `json:"img"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/messages", "Invalid request body", err)
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if body.Message == "" && body.Img == "" {
		writeMsg(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	if _, err := s.store.GetUserByID(r.Context(), body.RecipientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/messages", "Failed to query message recipient", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   userID,
		ReceiverID: body.RecipientID,
		Content:    body.Message,
		Img:        body.Img,
	}

	created, err := s.store.CreateMessage(r.Context(), msg)
	if err != nil {
		logg.Error("http/messages", "Failed to create message", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/messages", "Message sent (IDs and content anonymized)")
	writeJSON(w, http.StatusCreated, created)
}

// conversationHandler returns the full conversation between the caller and
// the user in the path, oldest first. Messages addressed to the caller are
// marked read.
func (s *Server) conversationHandler(w http.ResponseWriter, r *http.Request) {
	otherID := r.PathValue("id")

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if _, err := s.store.GetUserByID(r.Context(), otherID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/messages", "Failed to query conversation partner", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	messages, err := s.store.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		logg.Error("http/messages", "Failed to fetch conversation", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}

	writeJSON(w, http.StatusOK, messages)
}
