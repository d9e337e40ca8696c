package api

import "time"

// Entrada para registro
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Entrada para login
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Entrada para criar/atualizar livro
type BookRequest struct {
	Title       string `json:"title"       validate:"required"` // título
	Author      string `json:"author"      validate:"required"` // autor
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
}

// Saída de livro
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	PublishedAt string    `json:"publishedAt,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Entrada para criar pagamento PIX
type PaymentRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Email       string  `json:"email"       validate:"omitempty,email"`
	Phone       string  `json:"phone"       validate:"omitempty,min=8"`
	Amount      float64 `json:"amount"      validate:"required,gt=0"` // em reais
	Document    string  `json:"document"    validate:"required,min=11"`
	Description string  `json:"description" validate:"required"`
}
