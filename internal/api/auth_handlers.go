package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/estanteapp/estante-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer abstracts JWT emission.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// AuthHandlers handles register/login.
type AuthHandlers struct {
	Log    *zap.Logger
	Users  storage.UserRepo
	V      *validator.Validate
	Tokens TokenIssuer
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest  true  "Register payload"
// @Success      201      {object}  map[string]any
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	id := uuid.New()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	pwHash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	u := storage.User{ID: id, Name: req.Name, Email: email, PasswordHash: string(pwHash)}
	if err := h.Users.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Usuário já existe"})
			return
		}
		h.Log.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    id.String(),
		"name":  req.Name,
		"email": email,
	})
}

// Login godoc
// @Summary      Login with email and password
// @Description  Returns a short-lived JWT access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login payload"
// @Success      200      {object}  map[string]any
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := h.Users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, exp, err := h.Tokens.Issue(u.ID.String())
	if err != nil {
		h.Log.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao emitir token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(exp.Sub(time.Now()).Seconds()),
		"user": gin.H{
			"id":    u.ID.String(),
			"name":  u.Name,
			"email": u.Email,
		},
	})
}
