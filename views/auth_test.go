package views

import (
	"context"
	"testing"

	"github.com/raushankrgupta/fitly-wardrobe/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (bool, string) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.String(1)
}

func (m *MockAuthenticator) Signup(ctx context.Context, req api.SignupRequest) (bool, string) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.String(1)
}

func validForm() SignupForm {
	return SignupForm{FirstName: "Asha", LastName: "Rao", Email: "asha@fitly.test", Password: "secret1", ConfirmPassword: "secret1"}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*SignupForm)
		field   string
		message string
	}{
		{"valid", func(f *SignupForm) {}, "", ""},
		{"padded email", func(f *SignupForm) { f.Email = " asha@fitly.test " }, "", ""},
		{"multibyte password", func(f *SignupForm) { f.Password, f.ConfirmPassword = "éééééé", "éééééé" }, "", ""},
		{"missing first name", func(f *SignupForm) { f.FirstName = " " }, "first_name", "First name is required."},
		{"missing last name", func(f *SignupForm) { f.LastName = "" }, "last_name", "Last name is required."},
		{"missing email", func(f *SignupForm) { f.Email = "" }, "email", "Email is required."},
		{"bad email", func(f *SignupForm) { f.Email = "asha" }, "email", "Enter a valid email address."},
		{"missing password", func(f *SignupForm) { f.Password, f.ConfirmPassword = "", "" }, "password", "Password is required."},
		{"short password", func(f *SignupForm) { f.Password, f.ConfirmPassword = "abc", "abc" }, "password", "Password must be at least 6 characters."},
		{"short multibyte password", func(f *SignupForm) { f.Password, f.ConfirmPassword = "ééé", "ééé" }, "password", "Password must be at least 6 characters."},
		{"mismatch", func(f *SignupForm) { f.ConfirmPassword = "secret2" }, "confirm_password", "Passwords do not match."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(&form)
			err := ValidateSignup(form)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestAuthFormSignupSkipsBackendWhenInvalid(t *testing.T) {
	auth := &MockAuthenticator{}
	form := NewAuthForm(auth)

	bad := validForm()
	bad.ConfirmPassword = "nope"
	err := form.Signup(context.Background(), bad)
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match.", form.ErrorMessage())
	auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthFormLogin(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Login", mock.Anything, "asha@fitly.test", "wrong").Return(false, "Invalid credentials").Once()
	auth.On("Login", mock.Anything, "asha@fitly.test", "secret1").Return(true, "Welcome, Asha Rao").Once()
	form := NewAuthForm(auth)
	ctx := context.Background()

	require.Error(t, form.Login(ctx, " asha@fitly.test ", "wrong"))
	assert.Equal(t, "Invalid credentials", form.ErrorMessage())

	require.NoError(t, form.Login(ctx, "asha@fitly.test", "secret1"))
	assert.Empty(t, form.ErrorMessage())
	assert.Equal(t, "Welcome, Asha Rao", form.Message())
	auth.AssertExpectations(t)
}

func TestAuthFormSignup(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Signup", mock.Anything, api.SignupRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@fitly.test", Password: "secret1",
	}).Return(true, "Account created").Once()
	form := NewAuthForm(auth)

	require.NoError(t, form.Signup(context.Background(), validForm()))
	assert.Equal(t, "Account created", form.Message())
	auth.AssertExpectations(t)
}

func TestAuthFormLoginRequiresFields(t *testing.T) {
	auth := &MockAuthenticator{}
	form := NewAuthForm(auth)

	err := form.Login(context.Background(), "  ", "secret1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, "Email is required.", form.ErrorMessage())

	require.Error(t, form.Login(context.Background(), "asha@fitly.test", ""))
	assert.Equal(t, "Password is required.", form.ErrorMessage())
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}
