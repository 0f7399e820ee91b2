package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	"github.com/LazorAmorie/Masterkey.01/internal/middleware"
	"github.com/LazorAmorie/Masterkey.01/internal/usecase"
	"github.com/LazorAmorie/Masterkey.01/pkg/jwtutil"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
	"github.com/LazorAmorie/Masterkey.01/pkg/validation"
)

type AuthHandler struct {
	uc          *usecase.AuthUsecase
	tokens      *jwtutil.Issuer
	environment string
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewAuthHandler(uc *usecase.AuthUsecase, tokens *jwtutil.Issuer, environment string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:          uc,
		tokens:      tokens,
		environment: environment,
		validate:    validator.New(),
		logger:      logger,
	}
}

type signupRequest struct {
	Username        string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func userPayload(u *domain.User) map[string]interface{} {
	payload := map[string]interface{}{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"walletAddress": u.WalletAddress,
		"balance":       u.Balance,
		"createdAt":     u.CreatedAt,
	}
	if u.LastLogin != nil {
		payload["lastLogin"] = u.LastLogin
	}
	return payload
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.ValidationError(w, "Validation error", validation.FormatValidationError(err))
		return
	}

	user, err := h.uc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Failed to register user")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to register user")
		return
	}

	response.JSON(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"user":  userPayload(user),
		"token": token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.ValidationError(w, "Validation error", validation.FormatValidationError(err))
		return
	}

	user, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Login failed")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		writeError(w, h.logger, err, "Login failed")
		return
	}

	response.JSON(w, http.StatusOK, "Login successful", map[string]interface{}{
		"user":  userPayload(user),
		"token": token,
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	// The auth middleware already loaded and vetted the account.
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		return
	}

	response.JSON(w, http.StatusOK, "", map[string]interface{}{
		"user": userPayload(user),
	})
}

func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, "MasterKey Backend is running", map[string]interface{}{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}
