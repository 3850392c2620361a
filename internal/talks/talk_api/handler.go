package talk_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crg-site/internal/models"
	"crg-site/internal/talks"
	"crg-site/internal/talks/qr"
	"crg-site/internal/utils"
)

type TalkServiceLayer interface {
	CreateTalk(input talks.CreateTalkInput) (*models.Talk, error)
	GetTalk(id string) (*models.Talk, error)
	ListTalks() ([]models.Talk, error)
	ListUpcomingTalks() ([]models.Talk, error)
	ListPastTalks() ([]models.Talk, error)
	UpdateTalk(id string, input talks.UpdateTalkInput) (*models.Talk, error)
	DeleteTalk(id string) error
}

type Handler struct {
	TalkService TalkServiceLayer
}

func (h *Handler) ListTalks(w http.ResponseWriter, r *http.Request) {
	talkList, err := h.TalkService.ListTalks()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch talks", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, talkList)
}

func (h *Handler) ListUpcomingTalks(w http.ResponseWriter, r *http.Request) {
	talkList, err := h.TalkService.ListUpcomingTalks()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch upcoming talks", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, talkList)
}

func (h *Handler) ListPastTalks(w http.ResponseWriter, r *http.Request) {
	talkList, err := h.TalkService.ListPastTalks()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch talk archive", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, talkList)
}

func (h *Handler) GetTalk(w http.ResponseWriter, r *http.Request) {
	talkID := chi.URLParam(r, "talkID")
	talk, err := h.TalkService.GetTalk(talkID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Talk not found", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch talk", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, talk)
}

func (h *Handler) CreateTalk(w http.ResponseWriter, r *http.Request) {
	var input talks.CreateTalkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	talk, err := h.TalkService.CreateTalk(input)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid talk", err.Error())
			return
		}
		// Talk creation intentionally surfaces the underlying error detail
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create talk", err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, talk)
}

func (h *Handler) UpdateTalk(w http.ResponseWriter, r *http.Request) {
	talkID := chi.URLParam(r, "talkID")
	var input talks.UpdateTalkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	talk, err := h.TalkService.UpdateTalk(talkID, input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Talk not found", "")
		case errors.Is(err, models.ErrInvalidInput):
			utils.WriteError(w, http.StatusBadRequest, "Invalid talk", err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to update talk", "")
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, talk)
}

func (h *Handler) DeleteTalk(w http.ResponseWriter, r *http.Request) {
	talkID := chi.URLParam(r, "talkID")
	if err := h.TalkService.DeleteTalk(talkID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Talk not found", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete talk", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Talk deleted successfully", nil))
}

// GetTalkQR serves a PNG QR code for the talk's join link, for printed
// announcements.
func (h *Handler) GetTalkQR(w http.ResponseWriter, r *http.Request) {
	talkID := chi.URLParam(r, "talkID")
	talk, err := h.TalkService.GetTalk(talkID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Talk not found", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch talk", "")
		return
	}

	if talk.ZoomLink == "" {
		utils.WriteError(w, http.StatusNotFound, "Talk has no join link", "")
		return
	}

	png, err := qr.Generate(talk.ZoomLink)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate QR code", "")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
