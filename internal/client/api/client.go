// Package api - HTTP клиент сервиса заметок.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/client/session"
	"gonotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	msgRequest         = "api request"
	msgSessionCleared  = "session cleared after unauthenticated response"
	errCtxEncode       = "encoding request body"
	errCtxBuildRequest = "building request"
	errCtxSend         = "sending request"
	errCtxDecode       = "decoding response"

	defaultTimeout = 30 * time.Second
)

type authResponse struct {
	User  session.User `json:"user"`
	Token string       `json:"token"`
}

// Client выполняет запросы к API от имени сессии.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.AuthContext
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет HTTP клиент.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New создает клиент для baseURL (например, http://localhost:8080/api).
func New(baseURL string, sess *session.AuthContext, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session возвращает сессию клиента.
func (c *Client) Session() *session.AuthContext {
	return c.session
}

// Register регистрирует пользователя и сохраняет выданный токен в сессии.
func (c *Client) Register(ctx context.Context, reg Registration) (*session.User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/register", reg, &out); err != nil {
		return nil, err
	}
	c.session.SetSession(out.Token, out.User)
	return &out.User, nil
}

// Login входит по email и паролю и сохраняет токен в сессии.
func (c *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/login", credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.session.SetSession(out.Token, out.User)
	return &out.User, nil
}

// Logout отзывает токен на сервере и очищает сессию.
func (c *Client) Logout(ctx context.Context) error {
	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/logout", nil, &out); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

// Me возвращает текущего пользователя и запоминает его в сессии.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	c.session.SetUser(out)
	return &out, nil
}

// ListNotes возвращает заметки текущего пользователя.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	out := []Note{}
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Note{}
	}
	return out, nil
}

// GetNote возвращает одну заметку.
func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNote создает заметку.
func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodPost, "/notes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote изменяет заметку.
func (c *Client) UpdateNote(ctx context.Context, id int64, in NoteInput) (*Note, error) {
	var out Note
	if err := c.do(ctx, http.MethodPut, notePath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote удаляет заметку.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	var out messageBody
	return c.do(ctx, http.MethodDelete, notePath(id), nil, &out)
}

func notePath(id int64) string {
	return "/notes/" + url.PathEscape(strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.Log(ctx).With(zap.String("method", "Client.do"), zap.String("http_method", method), zap.String("path", path))

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxEncode, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSend, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, msgRequest, zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.Clear()
			log.Debug(ctx, msgSessionCleared)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", errCtxDecode, err)
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode, kind: kindForStatus(resp.StatusCode)}

	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
