package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"blog/internal/models"
)

var validate = validator.New()

type registerForm struct {
	Username        string `validate:"required,min=3,max=150"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type postForm struct {
	Title      string `validate:"required,max=200"`
	Content    string `validate:"required"`
	Visibility string `validate:"oneof=PUBLIC PRIVATE"`
}

type commentForm struct {
	Content string `validate:"required"`
}

type memoForm struct {
	Title    string `validate:"required,min=2,max=200"`
	Content  string `validate:"required,min=5"`
	Category string `validate:"omitempty,oneof=daily work personal"`
}

// Only the fields below are read from a submission. Anything else a client
// sends, an author field included, is dropped here.

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

// parseLoginForm trims the email the same way registration does.
func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
}

func parsePostForm(r *http.Request) postForm {
	f := postForm{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    r.FormValue("content"),
		Visibility: strings.ToUpper(r.FormValue("visibility")),
	}
	if f.Visibility == "" {
		f.Visibility = string(models.Public)
	}
	return f
}

func parseCommentForm(r *http.Request) commentForm {
	return commentForm{Content: strings.TrimSpace(r.FormValue("content"))}
}

func parseMemoForm(r *http.Request) memoForm {
	return memoForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	}
}

func (f memoForm) category() *models.MemoCategory {
	if f.Category == "" {
		return nil
	}
	c := models.MemoCategory(f.Category)
	return &c
}

// validateForm validates a struct based on its validation tags
func validateForm(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "eqfield":
		return "passwords do not match"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
