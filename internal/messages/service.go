package messages

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"crg-site/internal/models"
)

type MessageDBLayer interface {
	CreateMessage(message models.Message) error
	ListMessages() ([]models.Message, error)
}

type MessageService struct {
	DB MessageDBLayer
}

func NewMessageService(db MessageDBLayer) *MessageService {
	return &MessageService{DB: db}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact stores a contact-form message. All three fields are required;
// nothing beyond non-emptiness is validated here.
func (s *MessageService) SubmitContact(input ContactInput) (*models.Message, error) {
	if input.Name == "" || input.Email == "" || input.Message == "" {
		return nil, fmt.Errorf("name, email and message are required: %w", models.ErrInvalidInput)
	}

	message := models.Message{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if err := s.DB.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return &message, nil
}

func (s *MessageService) ListMessages() ([]models.Message, error) {
	messages, err := s.DB.ListMessages()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}
