package account

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/http/respond"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=account
type Service interface {
	Signup(ctx context.Context, params business.SignupParams) (*business.Business, error)
	VerifyEmail(ctx context.Context, token string) (bool, error)
	Login(ctx context.Context, email, password string) (*business.Business, error)
}

type Handler struct {
	svc    Service
	tokens *auth.Tokens
}

func NewHandler(svc Service, tokens *auth.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Get("/verify-email", h.verifyEmail)
	r.Post("/login", h.login)
}

type signupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
}

type signupResponse struct {
	Success    bool      `json:"success"`
	BusinessID uuid.UUID `json:"businessId"`
	Message    string    `json:"message"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Signup(r.Context(), business.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.BusinessName,
		Phone:    req.Phone,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, signupResponse{
		Success:    true,
		BusinessID: b.ID,
		Message:    "Account created. Check your email to verify your address.",
	})
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	already, err := h.svc.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	msg := "Email verified successfully"
	if already {
		msg = "Email already verified"
	}

	respond.JSON(w, http.StatusOK, messageResponse{Success: true, Message: msg})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Business  profileView `json:"business"`
}

type profileView struct {
	ID            uuid.UUID              `json:"id"`
	Email         string                 `json:"email"`
	Name          string                 `json:"businessName"`
	Phone         string                 `json:"phone"`
	PaymentStatus business.PaymentStatus `json:"paymentStatus"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(b.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(r, token, expiresAt))

	respond.JSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Business: profileView{
			ID:            b.ID,
			Email:         b.Email,
			Name:          b.Name,
			Phone:         b.Phone,
			PaymentStatus: b.PaymentStatus,
		},
	})
}
