// Package dto содержит JSON-представления запросов и ответов HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/services"
)

// NoteRequest - тело запроса создания и обновления заметки.
// Поле owner_id, если оно пришло, игнорируется.
type NoteRequest struct {
	Title string         `json:"title"`
	Body  OptionalString `json:"body"`
}

// Input переводит запрос во входные данные сценария.
func (r NoteRequest) Input() entities.NoteInput {
	return entities.NoteInput{Title: r.Title, Body: r.Body.Value, BodySet: r.Body.Set}
}

// OptionalString различает отсутствующее поле и явный null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON вызывается только для присутствующего ключа, в том числе со значением null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err //nolint:wrapcheck
	}
	o.Value = &s
	return nil
}

// Note - заметка в ответе. Пустое тело сериализуется как null.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      *string   `json:"body"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote строит представление заметки.
func NewNote(n *entities.Note) Note {
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		OwnerID:   n.OwnerID,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

// NewNotes строит список заметок; результат никогда не nil.
func NewNotes(notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNote(n))
	}
	return out
}

// MessageResponse - ответ с одним сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - тело ответа об ошибке.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// RegisterRequest - тело запроса регистрации.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration переводит запрос в доменную регистрацию.
func (r RegisterRequest) Registration() entities.Registration {
	return entities.Registration{Name: r.Name, Email: r.Email, Password: r.Password}
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials переводит запрос в доменные учетные данные.
func (r LoginRequest) Credentials() entities.Credentials {
	return entities.Credentials{Email: r.Email, Password: r.Password}
}

// User - пользователь в ответе. Хеш пароля не выводится.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser строит представление пользователя.
func NewUser(u *entities.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

// AuthResponse - ответ регистрации и входа.
type AuthResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewAuthResponse строит ответ из сессии.
func NewAuthResponse(s *services.Session) AuthResponse {
	return AuthResponse{
		User:      NewUser(s.User),
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt.UTC(),
	}
}

// HealthResponse - ответ проверки состояния.
type HealthResponse struct {
	Status string `json:"status"`
}
