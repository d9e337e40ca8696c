package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserAlreadyExists = errors.New("usuário já existe")
	ErrUserNotFound      = errors.New("usuário não encontrado")
	ErrBookNotFound      = errors.New("livro não encontrado")
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
}

type Book struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Author      string
	Description string
	PublishedAt string
	CreatedAt   time.Time
}

type UserRepo interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// BookRepo scopes every read and mutation to the owning user. Update and
// Delete filter on both id and owner in a single call, so a record owned
// by someone else is indistinguishable from a missing one.
type BookRepo interface {
	CreateBook(ctx context.Context, b Book) error
	GetBook(ctx context.Context, id, userID uuid.UUID) (Book, error)
	ListBooks(ctx context.Context, userID uuid.UUID) ([]Book, error)
	UpdateBook(ctx context.Context, b Book) (Book, error)
	DeleteBook(ctx context.Context, id, userID uuid.UUID) error
}

// MemoryStore implementa UserRepo e BookRepo
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
	books map[uuid.UUID]Book
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uuid.UUID]User),
		books: make(map[uuid.UUID]Book),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return ErrUserAlreadyExists
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *MemoryStore) CreateBook(_ context.Context, b Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[b.ID] = b
	return nil
}

func (s *MemoryStore) GetBook(_ context.Context, id, userID uuid.UUID) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok || b.UserID != userID {
		return Book{}, ErrBookNotFound
	}
	return b, nil
}

func (s *MemoryStore) ListBooks(_ context.Context, userID uuid.UUID) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Book, 0)
	for _, b := range s.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateBook(_ context.Context, b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.books[b.ID]
	if !ok || cur.UserID != b.UserID {
		return Book{}, ErrBookNotFound
	}
	cur.Title = b.Title
	cur.Author = b.Author
	cur.Description = b.Description
	cur.PublishedAt = b.PublishedAt
	s.books[b.ID] = cur
	return cur, nil
}

func (s *MemoryStore) DeleteBook(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok || b.UserID != userID {
		return ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}
