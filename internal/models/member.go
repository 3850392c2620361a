package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleMember    = "member"
	RoleOrganizer = "organizer"
	RoleAdvisor   = "advisor"
	RoleAlumni    = "alumni"
)

type Member struct {
	bun.BaseModel `bun:"table:members"`

	ID                string    `bun:"id,pk" json:"id"`
	Name              string    `bun:"name,notnull" json:"name"`
	Email             string    `bun:"email,unique,notnull" json:"email"`
	Role              string    `bun:"role,notnull" json:"role"`
	Year              string    `bun:"year" json:"year"`
	Bio               string    `bun:"bio" json:"bio"`
	ResearchInterests []string  `bun:"research_interests" json:"researchInterests"`
	WebsiteURL        string    `bun:"website_url" json:"websiteUrl"`
	GithubURL         string    `bun:"github_url" json:"githubUrl"`
	IsActive          bool      `bun:"is_active" json:"isActive"`
	CreatedAt         time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// ValidRole reports whether role is one of the four recognised member roles.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleOrganizer, RoleAdvisor, RoleAlumni:
		return true
	}
	return false
}
