package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(userID uuid.UUID, title string, createdAt time.Time) Book {
	return Book{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Author:    "Autor",
		CreatedAt: createdAt,
	}
}

func TestMemoryStoreBookOwnership(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner := uuid.New()
	other := uuid.New()

	b := newBook(owner, "Dom Casmurro", time.Now())
	require.NoError(t, s.CreateBook(ctx, b))

	// the owner sees it
	got, err := s.GetBook(ctx, b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)

	// anyone else gets not-found, never a distinct forbidden signal
	_, err = s.GetBook(ctx, b.ID, other)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = s.UpdateBook(ctx, Book{ID: b.ID, UserID: other, Title: "x", Author: "y"})
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = s.DeleteBook(ctx, b.ID, other)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// record survived the foreign delete attempt
	_, err = s.GetBook(ctx, b.ID, owner)
	assert.NoError(t, err)
}

func TestMemoryStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner := uuid.New()
	other := uuid.New()

	base := time.Now()
	oldest := newBook(owner, "oldest", base.Add(-2*time.Hour))
	middle := newBook(owner, "middle", base.Add(-1*time.Hour))
	newest := newBook(owner, "newest", base)
	foreign := newBook(other, "foreign", base)

	for _, b := range []Book{middle, foreign, oldest, newest} {
		require.NoError(t, s.CreateBook(ctx, b))
	}

	books, err := s.ListBooks(ctx, owner)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "newest", books[0].Title)
	assert.Equal(t, "middle", books[1].Title)
	assert.Equal(t, "oldest", books[2].Title)
}

func TestMemoryStoreUpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner := uuid.New()

	created := time.Now().Add(-time.Hour)
	b := newBook(owner, "before", created)
	require.NoError(t, s.CreateBook(ctx, b))

	updated, err := s.UpdateBook(ctx, Book{
		ID:          b.ID,
		UserID:      owner,
		Title:       "after",
		Author:      "Nova Autora",
		Description: "desc",
		PublishedAt: "1899",
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "Nova Autora", updated.Author)
	assert.Equal(t, owner, updated.UserID)
	assert.True(t, updated.CreatedAt.Equal(created))
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	owner := uuid.New()

	b := newBook(owner, "para deletar", time.Now())
	require.NoError(t, s.CreateBook(ctx, b))
	require.NoError(t, s.DeleteBook(ctx, b.ID, owner))

	_, err := s.GetBook(ctx, b.ID, owner)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// deleting again is not-found
	assert.ErrorIs(t, s.DeleteBook(ctx, b.ID, owner), ErrBookNotFound)
}

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := User{ID: uuid.New(), Name: "Maria", Email: "maria@example.com", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// duplicate email rejected
	dup := User{ID: uuid.New(), Name: "Outra", Email: "maria@example.com"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrUserAlreadyExists)

	_, err = s.GetUserByEmail(ctx, "ninguem@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
