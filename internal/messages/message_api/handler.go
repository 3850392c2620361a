package message_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"crg-site/internal/messages"
	"crg-site/internal/models"
	"crg-site/internal/utils"
)

type MessageServiceLayer interface {
	SubmitContact(input messages.ContactInput) (*models.Message, error)
	ListMessages() ([]models.Message, error)
}

type Handler struct {
	MessageService MessageServiceLayer
}

// SubmitContact is the public contact-form intake. No authentication, no
// rate limiting.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var input messages.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if _, err := h.MessageService.SubmitContact(input); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			utils.WriteError(w, http.StatusBadRequest, "Missing required fields", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to send message", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Message sent successfully", nil))
}

// ListMessages is the admin message view, newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messageList, err := h.MessageService.ListMessages()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch messages", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, messageList)
}
