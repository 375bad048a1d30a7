package views

import (
	"context"
	"errors"
	"strings"

	"github.com/raushankrgupta/fitly-wardrobe/api"
)

// MinPasswordLength is the shortest password signup accepts, counted in characters.
const MinPasswordLength = 6

// Authenticator is the session surface the login and signup forms call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (bool, string)
	Signup(ctx context.Context, req api.SignupRequest) (bool, string)
}

// SignupForm is what the user typed into the signup page.
type SignupForm struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

var signupMessages = map[string]string{
	"first_name.required":      "First name is required.",
	"last_name.required":       "Last name is required.",
	"email.required":           "Email is required.",
	"email.email":              "Enter a valid email address.",
	"password.required":        "Password is required.",
	"password.min":             "Password must be at least 6 characters.",
	"confirm_password.eqfield": "Passwords do not match.",
}

type loginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email.required":    "Email is required.",
	"password.required": "Password is required.",
}

// ValidateSignup returns the first problem with f, or nil. Names and email are trimmed first.
func ValidateSignup(f SignupForm) error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	return validateForm(f, signupMessages)
}

// AuthForm drives the login and signup pages.
type AuthForm struct {
	status

	session Authenticator
	message string
}

func NewAuthForm(session Authenticator) *AuthForm {
	return &AuthForm{session: session}
}

// Message is the last success or failure text from the backend.
func (f *AuthForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Login validates the fields and signs in.
func (f *AuthForm) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := validateForm(loginForm{Email: email, Password: password}, loginMessages); err != nil {
		return f.fail(err, "")
	}
	if !f.begin() {
		return ErrInFlight
	}
	defer f.end()

	ok, msg := f.session.Login(ctx, email, password)
	return f.settle(ok, msg)
}

// Signup validates the form and creates the account.
func (f *AuthForm) Signup(ctx context.Context, form SignupForm) error {
	if err := ValidateSignup(form); err != nil {
		return f.fail(err, "")
	}
	if !f.begin() {
		return ErrInFlight
	}
	defer f.end()

	ok, msg := f.session.Signup(ctx, api.SignupRequest{
		FirstName: strings.TrimSpace(form.FirstName),
		LastName:  strings.TrimSpace(form.LastName),
		Email:     strings.TrimSpace(form.Email),
		Password:  form.Password,
	})
	return f.settle(ok, msg)
}

func (f *AuthForm) settle(ok bool, msg string) error {
	f.mu.Lock()
	f.message = msg
	f.mu.Unlock()
	if ok {
		return nil
	}
	return f.fail(errors.New(msg), msg)
}
