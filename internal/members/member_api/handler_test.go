package member_api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"crg-site/internal/members"
	"crg-site/internal/members/member_api"
	"crg-site/internal/models"
)

type mockMemberService struct {
	members map[string]*models.Member
}

func newMockMemberService() *mockMemberService {
	return &mockMemberService{members: map[string]*models.Member{
		"member1": {
			ID:                "member1",
			Name:              "Alice Johnson",
			Email:             "alice@crg.local",
			Role:              models.RoleAdvisor,
			ResearchInterests: []string{"Zero-Knowledge Proofs"},
			IsActive:          true,
		},
		"member2": {
			ID:       "member2",
			Name:     "Bob Smith",
			Email:    "bob@crg.local",
			Role:     models.RoleAlumni,
			IsActive: false,
		},
	}}
}

func (m *mockMemberService) CreateMember(input members.CreateMemberInput) (*models.Member, error) {
	if input.Name == "" || input.Email == "" || !models.ValidRole(input.Role) {
		return nil, fmt.Errorf("invalid member: %w", models.ErrInvalidInput)
	}
	member := &models.Member{
		ID:                "created",
		Name:              input.Name,
		Email:             input.Email,
		Role:              input.Role,
		ResearchInterests: members.SplitInterests(input.ResearchInterests),
		IsActive:          true,
	}
	m.members[member.ID] = member
	return member, nil
}

func (m *mockMemberService) GetMember(id string) (*models.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, models.ErrNotFound)
	}
	return member, nil
}

func (m *mockMemberService) ListMembers(activeOnly bool) ([]models.Member, error) {
	var result []models.Member
	for _, member := range m.members {
		if activeOnly && !member.IsActive {
			continue
		}
		result = append(result, *member)
	}
	return result, nil
}

func (m *mockMemberService) UpdateMember(id string, input members.UpdateMemberInput) (*models.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, models.ErrNotFound)
	}
	if input.Name != nil {
		member.Name = *input.Name
	}
	return member, nil
}

func (m *mockMemberService) DeleteMember(id string) error {
	if _, ok := m.members[id]; !ok {
		return fmt.Errorf("member %s: %w", id, models.ErrNotFound)
	}
	delete(m.members, id)
	return nil
}

func newTestRouter(service member_api.MemberServiceLayer) *chi.Mux {
	handler := &member_api.Handler{MemberService: service}
	r := chi.NewRouter()
	r.Get("/api/members", handler.ListMembers)
	r.Get("/api/members/{memberID}", handler.GetMember)
	r.Post("/api/members", handler.CreateMember)
	r.Patch("/api/members/{memberID}", handler.UpdateMember)
	r.Delete("/api/members/{memberID}", handler.DeleteMember)
	return r
}

func TestListMembersHandler(t *testing.T) {
	router := newTestRouter(newMockMemberService())

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var memberList []models.Member
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &memberList))
	assert.Len(t, memberList, 2)
}

func TestListMembersActiveQuery(t *testing.T) {
	router := newTestRouter(newMockMemberService())

	req := httptest.NewRequest(http.MethodGet, "/api/members?active=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var memberList []models.Member
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &memberList))
	assert.Len(t, memberList, 1)
	assert.Equal(t, "member1", memberList[0].ID)
}

func TestGetMemberHandler(t *testing.T) {
	router := newTestRouter(newMockMemberService())

	req := httptest.NewRequest(http.MethodGet, "/api/members/member1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/members/missing", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMemberHandler(t *testing.T) {
	mock := newMockMemberService()
	router := newTestRouter(mock)

	payload, _ := json.Marshal(map[string]string{
		"name":              "Carol Williams",
		"email":             "carol@crg.local",
		"role":              models.RoleMember,
		"researchInterests": "MPC, FHE",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/members", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var member models.Member
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &member))
	assert.Equal(t, []string{"MPC", "FHE"}, member.ResearchInterests)

	// Unknown role
	payload, _ = json.Marshal(map[string]string{
		"name":  "Dan",
		"email": "dan@crg.local",
		"role":  "wizard",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/members", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMemberHandler(t *testing.T) {
	router := newTestRouter(newMockMemberService())

	payload, _ := json.Marshal(map[string]string{"name": "Renamed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/members/member1", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/members/missing", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMemberHandler(t *testing.T) {
	mock := newMockMemberService()
	router := newTestRouter(mock)

	req := httptest.NewRequest(http.MethodDelete, "/api/members/member2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, mock.members, "member2")

	req = httptest.NewRequest(http.MethodDelete, "/api/members/member2", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
