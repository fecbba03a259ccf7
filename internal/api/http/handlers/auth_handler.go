package handlers

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketapp/internal/api/dto"
	"github.com/spec-kit/ticketapp/internal/domain"
	"github.com/spec-kit/ticketapp/internal/service"
	"github.com/spec-kit/ticketapp/internal/view"
	apperrors "github.com/spec-kit/ticketapp/pkg/util"
)

// AuthHandler serves the login, signup and logout flows.
type AuthHandler struct {
	pages *Pages
	auth  *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(pages *Pages, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{pages: pages, auth: authService}
}

// LoginPage GET /auth/login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.renderLogin(c, http.StatusOK, dto.LoginForm{}, nil)
}

// SignupPage GET /auth/signup.
func (h *AuthHandler) SignupPage(c *fiber.Ctx) error {
	return h.renderSignup(c, http.StatusOK, dto.SignupForm{}, nil)
}

// Signup POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form dto.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}

	out, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeValidation) || apperrors.HasCode(err, apperrors.CodeConflict) {
			return h.renderSignup(c, apperrors.ToDomainError(err).HTTPStatus, form, apperrors.FieldMessages(err))
		}
		return err
	}
	return redirect(c, out.Redirect)
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}

	out, err := h.auth.Login(c.UserContext(), service.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case err == nil:
		return redirect(c, out.Redirect)
	case apperrors.HasCode(err, apperrors.CodeValidation):
		return h.renderLogin(c, http.StatusUnprocessableEntity, form, apperrors.FieldMessages(err))
	case apperrors.HasCode(err, apperrors.CodeUnauthorized):
		if err := h.pages.Notify(c, domain.NoticeError, service.MsgInvalidCredentials); err != nil {
			return err
		}
		return h.renderLogin(c, http.StatusUnauthorized, form, nil)
	default:
		return err
	}
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	out, err := h.auth.Logout(c.UserContext())
	if err != nil {
		return err
	}
	return redirect(c, out.Redirect)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, form dto.LoginForm, errs map[string]string) error {
	return h.pages.Render(c, status, view.PageLogin, "Login", pongo2.Context{
		"form":   map[string]string{"email": form.Email},
		"errors": errs,
	})
}

func (h *AuthHandler) renderSignup(c *fiber.Ctx, status int, form dto.SignupForm, errs map[string]string) error {
	return h.pages.Render(c, status, view.PageSignup, "Signup", pongo2.Context{
		"form":   map[string]string{"name": form.Name, "email": form.Email},
		"errors": errs,
	})
}
