package talks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crg-site/internal/models"
)

type TalkDBLayer interface {
	GetTalkByID(id string) (*models.Talk, error)
	ListTalks() ([]models.Talk, error)
	ListUpcomingTalks(now time.Time) ([]models.Talk, error)
	ListPastTalks(now time.Time) ([]models.Talk, error)
	CreateTalk(talk models.Talk) error
	UpdateTalk(talk models.Talk) error
	DeleteTalk(id string) error
}

// Notifier is the best-effort subscriber notification hook. Implementations
// must swallow their own failures; a notification problem never fails the
// talk creation that triggered it.
type Notifier interface {
	TalkCreated(talk models.Talk)
}

type TalkService struct {
	DB       TalkDBLayer
	Notifier Notifier
}

func NewTalkService(db TalkDBLayer, notifier Notifier) *TalkService {
	return &TalkService{DB: db, Notifier: notifier}
}

type CreateTalkInput struct {
	Title              string   `json:"title"`
	Speaker            string   `json:"speaker"`
	SpeakerAffiliation string   `json:"speakerAffiliation"`
	Date               string   `json:"date"`
	Time               string   `json:"time"`
	Location           string   `json:"location"`
	Abstract           string   `json:"abstract"`
	ZoomLink           string   `json:"zoomLink"`
	PaperTitle         string   `json:"paperTitle"`
	PaperLink          string   `json:"paperLink"`
	SlidesURL          string   `json:"slidesUrl"`
	VideoURL           string   `json:"videoUrl"`
	Tags               []string `json:"tags"`
	Semester           string   `json:"semester"`
	NotifySubscribers  bool     `json:"notifySubscribers"`
}

type UpdateTalkInput struct {
	Title              *string   `json:"title"`
	Speaker            *string   `json:"speaker"`
	SpeakerAffiliation *string   `json:"speakerAffiliation"`
	Date               *string   `json:"date"`
	Time               *string   `json:"time"`
	Location           *string   `json:"location"`
	Abstract           *string   `json:"abstract"`
	ZoomLink           *string   `json:"zoomLink"`
	PaperTitle         *string   `json:"paperTitle"`
	PaperLink          *string   `json:"paperLink"`
	SlidesURL          *string   `json:"slidesUrl"`
	VideoURL           *string   `json:"videoUrl"`
	Tags               *[]string `json:"tags"`
	Semester           *string   `json:"semester"`
}

// NormalizeDate parses a calendar date string and pins it to 12:00 UTC.
// Anchoring mid-day keeps the calendar day stable when the stored value is
// later rendered as a plain date in any timezone.
func NormalizeDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		utc := parsed.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 12, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: %w", value, models.ErrInvalidInput)
}

func (s *TalkService) CreateTalk(input CreateTalkInput) (*models.Talk, error) {
	if input.Title == "" || input.Speaker == "" || input.Date == "" ||
		input.Time == "" || input.Location == "" || input.Abstract == "" {
		return nil, fmt.Errorf("title, speaker, date, time, location and abstract are required: %w", models.ErrInvalidInput)
	}

	date, err := NormalizeDate(input.Date)
	if err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	talk := models.Talk{
		ID:                 uuid.New().String(),
		Title:              input.Title,
		Speaker:            input.Speaker,
		SpeakerAffiliation: input.SpeakerAffiliation,
		Date:               date,
		Time:               input.Time,
		Location:           input.Location,
		Abstract:           input.Abstract,
		ZoomLink:           input.ZoomLink,
		PaperTitle:         input.PaperTitle,
		PaperLink:          input.PaperLink,
		SlidesURL:          input.SlidesURL,
		VideoURL:           input.VideoURL,
		Tags:               tags,
		Semester:           input.Semester,
		CreatedAt:          time.Now(),
	}

	if err := s.DB.CreateTalk(talk); err != nil {
		return nil, fmt.Errorf("failed to create talk: %w", err)
	}

	// Best-effort fan-out; the talk is already committed
	if input.NotifySubscribers && s.Notifier != nil {
		s.Notifier.TalkCreated(talk)
	}

	talk.RefreshUpcoming(time.Now())
	return &talk, nil
}

func (s *TalkService) GetTalk(id string) (*models.Talk, error) {
	talk, err := s.DB.GetTalkByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("talk %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch talk %s: %w", id, err)
	}
	talk.RefreshUpcoming(time.Now())
	return talk, nil
}

func (s *TalkService) ListTalks() ([]models.Talk, error) {
	talks, err := s.DB.ListTalks()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch talks: %w", err)
	}
	refreshAll(talks)
	return talks, nil
}

func (s *TalkService) ListUpcomingTalks() ([]models.Talk, error) {
	talks, err := s.DB.ListUpcomingTalks(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming talks: %w", err)
	}
	refreshAll(talks)
	return talks, nil
}

func (s *TalkService) ListPastTalks() ([]models.Talk, error) {
	talks, err := s.DB.ListPastTalks(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch talk archive: %w", err)
	}
	refreshAll(talks)
	return talks, nil
}

func (s *TalkService) UpdateTalk(id string, input UpdateTalkInput) (*models.Talk, error) {
	talk, err := s.GetTalk(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		talk.Title = *input.Title
	}
	if input.Speaker != nil {
		talk.Speaker = *input.Speaker
	}
	if input.SpeakerAffiliation != nil {
		talk.SpeakerAffiliation = *input.SpeakerAffiliation
	}
	if input.Date != nil {
		date, err := NormalizeDate(*input.Date)
		if err != nil {
			return nil, err
		}
		talk.Date = date
	}
	if input.Time != nil {
		talk.Time = *input.Time
	}
	if input.Location != nil {
		talk.Location = *input.Location
	}
	if input.Abstract != nil {
		talk.Abstract = *input.Abstract
	}
	if input.ZoomLink != nil {
		talk.ZoomLink = *input.ZoomLink
	}
	if input.PaperTitle != nil {
		talk.PaperTitle = *input.PaperTitle
	}
	if input.PaperLink != nil {
		talk.PaperLink = *input.PaperLink
	}
	if input.SlidesURL != nil {
		talk.SlidesURL = *input.SlidesURL
	}
	if input.VideoURL != nil {
		talk.VideoURL = *input.VideoURL
	}
	if input.Tags != nil {
		talk.Tags = *input.Tags
	}
	if input.Semester != nil {
		talk.Semester = *input.Semester
	}

	if err := s.DB.UpdateTalk(*talk); err != nil {
		return nil, fmt.Errorf("failed to update talk: %w", err)
	}

	talk.RefreshUpcoming(time.Now())
	return talk, nil
}

func (s *TalkService) DeleteTalk(id string) error {
	if _, err := s.GetTalk(id); err != nil {
		return err
	}
	if err := s.DB.DeleteTalk(id); err != nil {
		return fmt.Errorf("failed to delete talk: %w", err)
	}
	return nil
}

func refreshAll(talks []models.Talk) {
	now := time.Now()
	for i := range talks {
		talks[i].RefreshUpcoming(now)
	}
}
