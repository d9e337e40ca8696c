package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/estanteapp/estante-api/internal/auth"
	"github.com/estanteapp/estante-api/internal/events"
	"github.com/estanteapp/estante-api/internal/payment"
	"github.com/estanteapp/estante-api/internal/storage"
	"github.com/estanteapp/estante-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway abstracts the PIX gateway client for handler tests.
type Gateway interface {
	CreateTransaction(ctx context.Context, in payment.Input) (*payment.Transaction, json.RawMessage, error)
}

type Handlers struct {
	Log          *zap.Logger
	Users        storage.UserRepo
	Books        storage.BookRepo
	Gateway      Gateway
	V            *validator.Validate
	DBPing       func(ctx context.Context) error
	KafkaEnabled bool

	// Publish hands a payment event to the background dispatcher.
	Publish func(events.PaymentCreated)
}

// health handler
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	db := "ok"
	if h.DBPing != nil {
		if err := h.DBPing(ctx); err != nil {
			db = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"db":            db,
		"kafka_enabled": h.KafkaEnabled,
	})
}

// book handlers

func (h *Handlers) ListBooks(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	books, err := h.Books.ListBooks(c.Request.Context(), caller)
	if err != nil {
		h.Log.Error("failed to list books", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar livros"})
		return
	}
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"books": out})
}

func (h *Handlers) GetBook(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	// an unparseable id cannot name an owned book
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		telemetry.IncBooksGet(false)
		c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
		return
	}

	b, err := h.Books.GetBook(c.Request.Context(), id, caller)
	if err != nil {
		telemetry.IncBooksGet(false)
		if err == storage.ErrBookNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar livro"})
		return
	}
	telemetry.IncBooksGet(true)
	c.JSON(http.StatusOK, gin.H{"book": toBookResponse(b)})
}

func (h *Handlers) CreateBook(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.IncBooksCreateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncBooksCreateFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": firstViolation(err, bookMessages)})
		return
	}

	b := storage.Book{
		ID:          uuid.New(),
		UserID:      caller,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
		CreatedAt:   time.Now(),
	}
	if err := h.Books.CreateBook(c.Request.Context(), b); err != nil {
		telemetry.IncBooksCreateFailed("db")
		h.Log.Error("failed to create book", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar livro"})
		return
	}
	telemetry.IncBooksCreated()
	c.JSON(http.StatusCreated, gin.H{"book": toBookResponse(b)})
}

func (h *Handlers) UpdateBook(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": firstViolation(err, bookMessages)})
		return
	}

	updated, err := h.Books.UpdateBook(c.Request.Context(), storage.Book{
		ID:          id,
		UserID:      caller,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		if err == storage.ErrBookNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
			return
		}
		h.Log.Error("failed to update book", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar livro"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": toBookResponse(updated)})
}

func (h *Handlers) DeleteBook(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
		return
	}

	if err := h.Books.DeleteBook(c.Request.Context(), id, caller); err != nil {
		if err == storage.ErrBookNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Livro não encontrado"})
			return
		}
		h.Log.Error("failed to delete book", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar livro"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Livro deletado com sucesso"})
}

func toBookResponse(b storage.Book) BookResponse {
	return BookResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		PublishedAt: b.PublishedAt,
		UserID:      b.UserID.String(),
		CreatedAt:   b.CreatedAt,
	}
}
