package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteSuccess(w, ErrorResponse{Error: message}, statusCode)
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors to HTTP answers.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			WriteSuccess(w, ErrorResponse{Error: appErr.Message, Path: r.URL.Path}, http.StatusNotFound)
			return
		case models.CodeUnauthenticated:
			http.Redirect(w, r, middleware.LoginRedirectURL(h.Cfg.LoginURL, r), http.StatusFound)
			return
		case models.CodeForbidden:
			WriteError(w, appErr.Message, http.StatusForbidden)
			return
		case models.CodeValidation:
			WriteError(w, appErr.Message, http.StatusBadRequest)
			return
		}
	}

	logger.FromContext(r.Context()).Error("ошибка обработки запроса",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// FormErrors is field name to message, "__all__" for errors not tied to a field.
type FormErrors map[string]string

func (h *Handlers) formErrors(err error) FormErrors {
	errs := FormErrors{}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		return errs
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
		field := appErr.Field
		if field == "" {
			field = "__all__"
		}
		errs[field] = appErr.Message
		return errs
	}

	errs["__all__"] = err.Error()
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "min":
		return "Слишком короткое значение: минимум " + fe.Param() + " символов."
	case "max":
		return "Слишком длинное значение: максимум " + fe.Param() + " символов."
	case "numeric":
		return "Выберите корректный вариант."
	default:
		return "Некорректное значение."
	}
}
