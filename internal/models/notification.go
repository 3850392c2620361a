package models

// TalkNotificationEvent is the payload published to the notification topic
// when an admin creates a talk with subscriber notification enabled.
type TalkNotificationEvent struct {
	TalkID     string   `json:"talkId"`
	Title      string   `json:"title"`
	Speaker    string   `json:"speaker"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Location   string   `json:"location"`
	ZoomLink   string   `json:"zoomLink,omitempty"`
	Recipients []string `json:"recipients"`
}
