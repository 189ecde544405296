// Package forms normalizes incoming form data into a single mapping consumed
// uniformly by the service layer, plus typed forms carrying the validation
// rules for each endpoint.
package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Values is a normalized field-name to values mapping, built either from an
// *http.Request or literally in tests.
type Values map[string][]string

// FromRequest parses the request form and wraps it as Values.
func FromRequest(r *http.Request) (Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return Values(r.PostForm), nil
}

// Get returns the first value for field, or def when the field is absent.
func (v Values) Get(field, def string) string {
	if vals, ok := v[field]; ok && len(vals) > 0 {
		return vals[0]
	}
	return def
}

// GetList returns all values for field.
func (v Values) GetList(field string) []string {
	return v[field]
}

// Bool interprets checkbox-style values: "on", "true" and "1" are true.
func (v Values) Bool(field string) bool {
	switch strings.ToLower(v.Get(field, "")) {
	case "on", "true", "1":
		return true
	}
	return false
}

// SignupForm carries a registration request.
type SignupForm struct {
	Username string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginForm carries a login request.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Remember bool
}

// PostForm carries a post create/edit request.
type PostForm struct {
	Title       string `validate:"required,max=200"`
	Body        string `validate:"required"`
	IsPublished bool
	Tags        []string
}

// NewSignupForm extracts and normalizes signup fields. The email is
// lower-cased so it can serve as the account key.
func NewSignupForm(v Values) SignupForm {
	return SignupForm{
		Username: strings.TrimSpace(v.Get("username", "")),
		Email:    strings.ToLower(strings.TrimSpace(v.Get("email", ""))),
		Password: v.Get("password", ""),
	}
}

// NewLoginForm extracts and normalizes login fields.
func NewLoginForm(v Values) LoginForm {
	return LoginForm{
		Email:    strings.ToLower(strings.TrimSpace(v.Get("email", ""))),
		Password: v.Get("password", ""),
		Remember: v.Bool("remember_me"),
	}
}

// NewPostForm extracts post fields. Title and body are trimmed so
// whitespace-only input fails validation.
func NewPostForm(v Values) PostForm {
	return PostForm{
		Title:       strings.TrimSpace(v.Get("title", "")),
		Body:        strings.TrimSpace(v.Get("body", "")),
		IsPublished: v.Bool("is_published"),
		Tags:        v.GetList("tags"),
	}
}

func (f SignupForm) Validate() error { return validate.Struct(f) }
func (f LoginForm) Validate() error  { return validate.Struct(f) }
func (f PostForm) Validate() error   { return validate.Struct(f) }
