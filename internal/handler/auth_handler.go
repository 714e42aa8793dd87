package handlers

import (
	"net/http"
	"strings"

	"yatube/internal/middleware"
	"yatube/internal/models"
)

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type SignupRequest struct {
	Username string `validate:"required,max=150"`
	Password string `validate:"required,min=8"`
}

type AuthFormResponse struct {
	Fields []string   `json:"fields"`
	Next   string     `json:"next,omitempty"`
	Errors FormErrors `json:"errors,omitempty"`
}

// safeNext keeps only local paths so ?next= cannot send the user to another site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/"
}

func (h *Handlers) setAccessToken(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.AccessTokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	fields := []string{"username", "password"}

	if r.Method == http.MethodGet {
		WriteSuccess(w, AuthFormResponse{Fields: fields, Next: r.URL.Query().Get("next")}, http.StatusOK)
		return
	}

	if err := h.parseForm(w, r); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	next := r.FormValue("next")
	req := LoginRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteSuccess(w, AuthFormResponse{Fields: fields, Next: next, Errors: h.formErrors(err)}, http.StatusOK)
		return
	}

	// login
	_, accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteSuccess(w, AuthFormResponse{
			Fields: fields,
			Next:   next,
			Errors: FormErrors{"__all__": "Неверное имя пользователя или пароль."},
		}, http.StatusOK)
		return
	}

	h.setAccessToken(w, r, accessToken)
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	fields := []string{"username", "password"}

	if err := h.parseForm(w, r); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	req := SignupRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteSuccess(w, AuthFormResponse{Fields: fields, Errors: h.formErrors(err)}, http.StatusOK)
		return
	}

	// registering a user in the service
	if _, err := h.AuthService.Register(r.Context(), req.Username, req.Password); err != nil {
		if models.IsValidation(err) {
			WriteSuccess(w, AuthFormResponse{Fields: fields, Errors: h.formErrors(err)}, http.StatusOK)
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	_, accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.setAccessToken(w, r, accessToken)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	WriteSuccess(w, MessageResponse{Message: "Вы вышли из своей учётной записи"}, http.StatusOK)
}
