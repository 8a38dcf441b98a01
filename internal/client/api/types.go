package api

import "time"

// Note - заметка в ответе сервера.
type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      *string   `json:"body" yaml:"body"`
	OwnerID   int64     `json:"owner_id" yaml:"owner_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NoteInput - тело запроса создания и обновления. Body == nil при обновлении оставляет тело прежним.
type NoteInput struct {
	Title string  `json:"title"`
	Body  *string `json:"body,omitempty"`
}

// Registration - данные регистрации.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type messageBody struct {
	Message string `json:"message"`
}
