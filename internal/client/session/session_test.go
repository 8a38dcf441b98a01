package session_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"gonotes/internal/client/session"
)

func TestAuthContext(t *testing.T) {
	s := session.New("")
	assert.False(t, s.Authenticated())

	_, ok := s.OwnerKey()
	assert.False(t, ok)

	s.SetSession("token-1", session.User{ID: 7, Name: "Alice"})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "token-1", s.Token())

	key, ok := s.OwnerKey()
	assert.True(t, ok)
	assert.Equal(t, "user:7", key)

	s.SetToken("token-1")
	_, ok = s.User()
	assert.True(t, ok, "same token keeps the user")

	s.SetToken("token-2")
	_, ok = s.User()
	assert.False(t, ok, "new token drops the user")

	s.Clear()
	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())
}

func TestIndependentSessions(t *testing.T) {
	a := session.New("a")
	b := session.New("b")

	a.Clear()
	assert.Equal(t, "b", b.Token())
}

func TestAuthContextConcurrentUse(t *testing.T) {
	s := session.New("")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetSession("token-"+strconv.Itoa(i), session.User{ID: int64(i)})
			_ = s.Token()
			_, _ = s.OwnerKey()
			if i%10 == 0 {
				s.Clear()
			}
		}()
	}
	wg.Wait()
}
