// Package session хранит токен и пользователя клиентской сессии.
package session

import (
	"strconv"
	"sync"
	"time"
)

// User - аутентифицированный пользователь, как его возвращает сервер.
type User struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// AuthContext - явный держатель токена доступа. Безопасен для конкурентного использования;
// несколько независимых сессий могут существовать в одном процессе.
type AuthContext struct {
	mu    sync.RWMutex
	token string
	user  *User
}

// New создает сессию с начальным токеном (может быть пустым).
func New(token string) *AuthContext {
	return &AuthContext{token: token}
}

// Token возвращает текущий токен.
func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// SetToken заменяет токен. Смена токена сбрасывает известного пользователя.
func (a *AuthContext) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if token != a.token {
		a.user = nil
	}
	a.token = token
}

// SetSession сохраняет токен вместе с пользователем.
func (a *AuthContext) SetSession(token string, user User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.user = &user
}

// SetUser запоминает пользователя текущего токена.
func (a *AuthContext) SetUser(user User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = &user
}

// User возвращает копию пользователя, если он известен.
func (a *AuthContext) User() (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return User{}, false
	}
	return *a.user, true
}

// Clear забывает токен и пользователя.
func (a *AuthContext) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.user = nil
}

// Authenticated сообщает, есть ли токен.
func (a *AuthContext) Authenticated() bool {
	return a.Token() != ""
}

// OwnerKey возвращает ключ раздела кэша для известного пользователя.
func (a *AuthContext) OwnerKey() (string, bool) {
	user, ok := a.User()
	if !ok {
		return "", false
	}
	return OwnerKey(user.ID), true
}

// OwnerKey строит ключ раздела кэша по идентификатору пользователя.
func OwnerKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}
