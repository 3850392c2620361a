package members

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"crg-site/internal/models"
)

type MemberDBLayer interface {
	GetMemberByID(id string) (*models.Member, error)
	ListMembers(activeOnly bool) ([]models.Member, error)
	CreateMember(member models.Member) error
	UpdateMember(member models.Member) error
	DeleteMember(id string) error
}

type MemberService struct {
	DB MemberDBLayer
}

func NewMemberService(db MemberDBLayer) *MemberService {
	return &MemberService{DB: db}
}

type CreateMemberInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	Year              string `json:"year"`
	Bio               string `json:"bio"`
	ResearchInterests string `json:"researchInterests"`
	WebsiteURL        string `json:"websiteUrl"`
	GithubURL         string `json:"githubUrl"`
}

type UpdateMemberInput struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Role              *string `json:"role"`
	Year              *string `json:"year"`
	Bio               *string `json:"bio"`
	ResearchInterests *string `json:"researchInterests"`
	WebsiteURL        *string `json:"websiteUrl"`
	GithubURL         *string `json:"githubUrl"`
	IsActive          *bool   `json:"isActive"`
}

// SplitInterests turns the comma-separated form input into an ordered list of
// trimmed interests. Empty entries are dropped, order is preserved as typed.
func SplitInterests(value string) []string {
	interests := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	return interests
}

func (s *MemberService) CreateMember(input CreateMemberInput) (*models.Member, error) {
	if input.Name == "" || input.Email == "" || input.Role == "" {
		return nil, fmt.Errorf("name, email and role are required: %w", models.ErrInvalidInput)
	}
	if !models.ValidRole(input.Role) {
		return nil, fmt.Errorf("unknown role %q: %w", input.Role, models.ErrInvalidInput)
	}

	member := models.Member{
		ID:                uuid.New().String(),
		Name:              input.Name,
		Email:             input.Email,
		Role:              input.Role,
		Year:              input.Year,
		Bio:               input.Bio,
		ResearchInterests: SplitInterests(input.ResearchInterests),
		WebsiteURL:        input.WebsiteURL,
		GithubURL:         input.GithubURL,
		IsActive:          true,
		CreatedAt:         time.Now(),
	}

	if err := s.DB.CreateMember(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return &member, nil
}

func (s *MemberService) GetMember(id string) (*models.Member, error) {
	member, err := s.DB.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
	}
	return member, nil
}

func (s *MemberService) ListMembers(activeOnly bool) ([]models.Member, error) {
	members, err := s.DB.ListMembers(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	return members, nil
}

func (s *MemberService) UpdateMember(id string, input UpdateMemberInput) (*models.Member, error) {
	member, err := s.GetMember(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *input.Role, models.ErrInvalidInput)
		}
		member.Role = *input.Role
	}
	if input.Year != nil {
		member.Year = *input.Year
	}
	if input.Bio != nil {
		member.Bio = *input.Bio
	}
	if input.ResearchInterests != nil {
		member.ResearchInterests = SplitInterests(*input.ResearchInterests)
	}
	if input.WebsiteURL != nil {
		member.WebsiteURL = *input.WebsiteURL
	}
	if input.GithubURL != nil {
		member.GithubURL = *input.GithubURL
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.DB.UpdateMember(*member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

// DeleteMember is a hard delete; there is no soft-delete or tombstone.
func (s *MemberService) DeleteMember(id string) error {
	if _, err := s.GetMember(id); err != nil {
		return err
	}
	if err := s.DB.DeleteMember(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
