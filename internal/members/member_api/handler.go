package member_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crg-site/internal/members"
	"crg-site/internal/models"
	"crg-site/internal/utils"
)

type MemberServiceLayer interface {
	CreateMember(input members.CreateMemberInput) (*models.Member, error)
	GetMember(id string) (*models.Member, error)
	ListMembers(activeOnly bool) ([]models.Member, error)
	UpdateMember(id string, input members.UpdateMemberInput) (*models.Member, error)
	DeleteMember(id string) error
}

type Handler struct {
	MemberService MemberServiceLayer
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	memberList, err := h.MemberService.ListMembers(activeOnly)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch members", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, memberList)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	member, err := h.MemberService.GetMember(memberID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Member not found", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch member", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var input members.CreateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	member, err := h.MemberService.CreateMember(input)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid member", err.Error())
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create member", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	var input members.UpdateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	member, err := h.MemberService.UpdateMember(memberID, input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "Member not found", "")
		case errors.Is(err, models.ErrInvalidInput):
			utils.WriteError(w, http.StatusBadRequest, "Invalid member", err.Error())
		default:
			utils.WriteError(w, http.StatusInternalServerError, "Failed to update member", "")
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if err := h.MemberService.DeleteMember(memberID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Member not found", "")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete member", "")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Member deleted successfully", nil))
}
