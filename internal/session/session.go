// Package session resolves who is using the dashboard and what they are shown.
// Credentials come from a chain of providers (flags first, then environment);
// the resulting Session is passed explicitly to everything that needs the current user.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robby/projecthub/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any email, password or role mismatch.
var ErrInvalidCredentials = errors.New("invalid email, password or role")

// ErrNoCredentials indicates that no provider supplied credentials.
var ErrNoCredentials = errors.New("no credentials provided")

// Credentials are the login form fields.
type Credentials struct {
	Email    string
	Password string
	Role     domain.Role
}

// CredentialProvider supplies login credentials from some source.
type CredentialProvider interface {
	Credentials() (Credentials, error)
}

// FlagProvider carries credentials passed on the command line.
type FlagProvider struct {
	Email    string
	Password string
	Role     string
}

// Credentials returns the flag values. Email and password are required; an empty
// role is filled in from the matching user at login.
func (f *FlagProvider) Credentials() (Credentials, error) {
	if f.Email == "" || f.Password == "" {
		return Credentials{}, errors.New("--email and --password not set")
	}
	return Credentials{Email: f.Email, Password: f.Password, Role: domain.Role(f.Role)}, nil
}

// EnvProvider reads PROJECTHUB_EMAIL, PROJECTHUB_PASSWORD and PROJECTHUB_ROLE.
type EnvProvider struct{}

// Credentials reads the environment. Returns an error if email or password is unset.
func (e *EnvProvider) Credentials() (Credentials, error) {
	email := os.Getenv("PROJECTHUB_EMAIL")
	password := os.Getenv("PROJECTHUB_PASSWORD")
	if email == "" || password == "" {
		return Credentials{}, errors.New("PROJECTHUB_EMAIL and PROJECTHUB_PASSWORD not set")
	}
	return Credentials{Email: email, Password: password, Role: domain.Role(os.Getenv("PROJECTHUB_ROLE"))}, nil
}

// Resolve tries each provider in order and returns the first credentials found.
// When every provider fails the error wraps ErrNoCredentials and lists why.
func Resolve(providers ...CredentialProvider) (Credentials, error) {
	var reasons []string
	for _, p := range providers {
		creds, err := p.Credentials()
		if err == nil {
			return creds, nil
		}
		reasons = append(reasons, err.Error())
	}

	return Credentials{}, fmt.Errorf(
		"%w (%s).\n"+
			"Please either:\n"+
			"  1. Pass --email and --password (and optionally --role), or\n"+
			"  2. Set PROJECTHUB_EMAIL and PROJECTHUB_PASSWORD",
		ErrNoCredentials, strings.Join(reasons, "; "),
	)
}

// Session is the logged-in user.
type Session struct {
	User domain.User
}

// Role returns the role of the logged-in user.
func (s Session) Role() domain.Role {
	return s.User.Role
}

// Login finds the user with the given email (case-insensitive) and verifies the
// password against its bcrypt hash. A non-empty role must also match.
func Login(users []domain.User, creds Credentials) (Session, error) {
	for _, u := range users {
		if !strings.EqualFold(u.Email, strings.TrimSpace(creds.Email)) {
			continue
		}
		if creds.Role != "" && u.Role != creds.Role {
			return Session{}, ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(creds.Password)); err != nil {
			return Session{}, ErrInvalidCredentials
		}
		return Session{User: u}, nil
	}
	return Session{}, ErrInvalidCredentials
}
