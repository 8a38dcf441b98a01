package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/notes/domain/entities"
	"gonotes/pkg/apperr"
)

func strPtr(s string) *string { return &s }

func TestNoteOwnedBy(t *testing.T) {
	note := &entities.Note{ID: 1, OwnerID: 7}

	assert.True(t, note.OwnedBy(entities.Caller{ID: 7}))
	assert.False(t, note.OwnedBy(entities.Caller{ID: 8}))
	assert.False(t, note.OwnedBy(entities.Caller{}))

	var missing *entities.Note
	assert.False(t, missing.OwnedBy(entities.Caller{ID: 7}))

	ownerless := &entities.Note{ID: 2}
	assert.False(t, ownerless.OwnedBy(entities.Caller{}), "zero caller never owns a note")
}

func TestNoteInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   entities.NoteInput
		wantErr bool
		field   string
	}{
		{name: "valid", input: entities.NoteInput{Title: "Groceries", Body: strPtr("milk")}},
		{name: "NUL in title", input: entities.NoteInput{Title: "a\x00b"}, wantErr: true},
		{name: "NUL in body", input: entities.NoteInput{Title: "T", Body: strPtr("milk\x00")}, wantErr: true, field: "body"},
		{name: "valid without body", input: entities.NoteInput{Title: "T"}},
		{name: "max length in runes", input: entities.NoteInput{Title: strings.Repeat("ж", entities.MaxTitleLength)}},
		{name: "empty title", input: entities.NoteInput{Title: ""}, wantErr: true},
		{name: "whitespace title", input: entities.NoteInput{Title: " \t\n "}, wantErr: true},
		{name: "too long", input: entities.NoteInput{Title: strings.Repeat("a", entities.MaxTitleLength+1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, apperr.ErrValidation)
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			field := tt.field
			if field == "" {
				field = "title"
			}
			assert.NotEmpty(t, verr.Fields[field])
		})
	}
}

func TestNormalizeBody(t *testing.T) {
	assert.Nil(t, entities.NormalizeBody(nil))
	assert.Nil(t, entities.NormalizeBody(strPtr("")))

	src := strPtr("text")
	got := entities.NormalizeBody(src)
	require.NotNil(t, got)
	assert.Equal(t, "text", *got)
	assert.NotSame(t, src, got)
}

func TestRegistrationValidate(t *testing.T) {
	valid := entities.Registration{Name: "Ann", Email: "ann@example.com", Password: "secret123"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		reg   entities.Registration
		field string
	}{
		{"missing name", entities.Registration{Email: "a@b.co", Password: "secret123"}, "name"},
		{"bad email", entities.Registration{Name: "A", Email: "not-an-email", Password: "secret123"}, "email"},
		{"short password", entities.Registration{Name: "A", Email: "a@b.co", Password: "short"}, "password"},
		{"long password", entities.Registration{Name: "A", Email: "a@b.co", Password: strings.Repeat("p", 73)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *apperr.ValidationError
			require.ErrorAs(t, tt.reg.Validate(), &verr)
			assert.NotEmpty(t, verr.Fields[tt.field])
		})
	}
}

func TestRegistrationNormalize(t *testing.T) {
	reg := entities.Registration{Name: "  Ann ", Email: " Ann@Example.COM "}.Normalize()

	assert.Equal(t, "Ann", reg.Name)
	assert.Equal(t, "ann@example.com", reg.Email)
}

func TestCredentialsValidate(t *testing.T) {
	require.NoError(t, entities.Credentials{Email: "a@b.co", Password: "x"}.Validate())

	err := entities.Credentials{}.Validate()
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields["email"])
	assert.NotEmpty(t, verr.Fields["password"])
}

func TestDomainErrorKinds(t *testing.T) {
	assert.ErrorIs(t, entities.ErrNoteNotFound, apperr.ErrNotFound)
	assert.ErrorIs(t, entities.ErrNoteForbidden, apperr.ErrForbidden)
	assert.ErrorIs(t, entities.ErrUserNotFound, apperr.ErrNotFound)
	assert.ErrorIs(t, entities.ErrEmailTaken, apperr.ErrConflict)
}
