package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (p *PostgresStore) Close() error { return p.DB.Close() }

// Users Repo

func (p *PostgresStore) CreateUser(ctx context.Context, u User) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := p.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Books Repo

func (p *PostgresStore) CreateBook(ctx context.Context, b Book) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO books (id, user_id, title, author, description, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.Title, b.Author, b.Description, b.PublishedAt, b.CreatedAt)
	return err
}

func (p *PostgresStore) GetBook(ctx context.Context, id, userID uuid.UUID) (Book, error) {
	var b Book
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, author, description, published_at, created_at
		FROM books WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Description, &b.PublishedAt, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (p *PostgresStore) ListBooks(ctx context.Context, userID uuid.UUID) ([]Book, error) {
	rows, err := p.DB.QueryContext(ctx, `
		SELECT id, user_id, title, author, description, published_at, created_at
		FROM books
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Description, &b.PublishedAt, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBook filters on id and owner in one statement; zero affected rows
// means the book does not exist or belongs to someone else.
func (p *PostgresStore) UpdateBook(ctx context.Context, b Book) (Book, error) {
	var updated Book
	err := p.DB.QueryRowContext(ctx, `
		UPDATE books
		SET title = $3, author = $4, description = $5, published_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, author, description, published_at, created_at`,
		b.ID, b.UserID, b.Title, b.Author, b.Description, b.PublishedAt).
		Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.Author,
			&updated.Description, &updated.PublishedAt, &updated.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return updated, nil
}

func (p *PostgresStore) DeleteBook(ctx context.Context, id, userID uuid.UUID) error {
	res, err := p.DB.ExecContext(ctx,
		`DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}
