package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Talk struct {
	bun.BaseModel `bun:"table:talks"`

	ID                 string    `bun:"id,pk" json:"id"`
	Title              string    `bun:"title,notnull" json:"title"`
	Speaker            string    `bun:"speaker,notnull" json:"speaker"`
	SpeakerAffiliation string    `bun:"speaker_affiliation" json:"speakerAffiliation"`
	Date               time.Time `bun:"date,notnull" json:"date"`
	Time               string    `bun:"time,notnull" json:"time"`
	Location           string    `bun:"location,notnull" json:"location"`
	Abstract           string    `bun:"abstract,notnull" json:"abstract"`
	ZoomLink           string    `bun:"zoom_link" json:"zoomLink"`
	PaperTitle         string    `bun:"paper_title" json:"paperTitle"`
	PaperLink          string    `bun:"paper_link" json:"paperLink"`
	SlidesURL          string    `bun:"slides_url" json:"slidesUrl"`
	VideoURL           string    `bun:"video_url" json:"videoUrl"`
	Tags               []string  `bun:"tags" json:"tags"`
	Semester           string    `bun:"semester" json:"semester"`
	CreatedAt          time.Time `bun:"created_at,notnull" json:"createdAt"`

	// Derived from Date at serialization time, never stored.
	IsUpcoming bool `bun:"-" json:"isUpcoming"`
}

// RefreshUpcoming recomputes the derived IsUpcoming field against now.
func (t *Talk) RefreshUpcoming(now time.Time) {
	t.IsUpcoming = !t.Date.Before(now)
}
