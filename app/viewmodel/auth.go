package viewmodel

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// AuthKind enumerates the session states a client can be in.
type AuthKind string

const (
	AuthInitial         AuthKind = "initial"
	AuthLoading         AuthKind = "loading"
	AuthUnauthenticated AuthKind = "unauthenticated"
	AuthGuest           AuthKind = "guest"
	AuthAuthenticated   AuthKind = "authenticated"
	AuthFailed          AuthKind = "error"
)

// AuthState is a tagged union: User is set only for authenticated,
// Message only for error.
type AuthState struct {
	Kind    AuthKind     `json:"kind"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// AuthViewModel drives the session state machine. Validation failures are
// decided locally and never reach the repository.
type AuthViewModel struct {
	repo  repositories.AuthRepository
	State *State[AuthState]
}

func NewAuthViewModel(repo repositories.AuthRepository) *AuthViewModel {
	vm := &AuthViewModel{
		repo:  repo,
		State: NewState(AuthState{Kind: AuthInitial}),
	}
	// A surviving session resumes as authenticated.
	if u := repo.CurrentUser(); u != nil {
		vm.State.Set(AuthState{Kind: AuthAuthenticated, User: u})
	}
	return vm
}

func (vm *AuthViewModel) SignIn(ctx context.Context, email, password string) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		vm.State.Set(AuthState{Kind: AuthFailed, Message: "email and password are required"})
		return
	}

	vm.State.Set(AuthState{Kind: AuthLoading})

	user, err := vm.repo.SignIn(ctx, email, password)
	if err != nil {
		vm.State.Set(AuthState{Kind: AuthFailed, Message: err.Error()})
		return
	}

	logger.Info("auth: signed in", "user_id", user.ID)
	vm.State.Set(AuthState{Kind: AuthAuthenticated, User: &user})
}

func (vm *AuthViewModel) SignUp(ctx context.Context, email, password, name string) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	switch {
	case email == "" || password == "" || name == "":
		vm.State.Set(AuthState{Kind: AuthFailed, Message: "all fields are required"})
		return
	case len(password) < 6:
		vm.State.Set(AuthState{Kind: AuthFailed, Message: "password must be at least 6 characters"})
		return
	}

	vm.State.Set(AuthState{Kind: AuthLoading})

	user, err := vm.repo.SignUp(ctx, email, password, name, models.RoleCustomer)
	if err != nil {
		vm.State.Set(AuthState{Kind: AuthFailed, Message: err.Error()})
		return
	}

	logger.Info("auth: signed up", "user_id", user.ID)
	vm.State.Set(AuthState{Kind: AuthAuthenticated, User: &user})
}

// SignOut is synchronous: the local session is gone before this returns.
func (vm *AuthViewModel) SignOut() {
	vm.repo.SignOut()
	vm.State.Set(AuthState{Kind: AuthUnauthenticated})
}

// ContinueAsGuest enters browse-only mode without touching the repository.
func (vm *AuthViewModel) ContinueAsGuest() {
	vm.State.Set(AuthState{Kind: AuthGuest})
}

// Reset clears a transient error or loading state back to initial so the
// form can be retried. An established session is left alone.
func (vm *AuthViewModel) Reset() {
	s := vm.State.Get()
	if s.Kind == AuthAuthenticated || s.Kind == AuthGuest {
		return
	}
	vm.State.Set(AuthState{Kind: AuthInitial})
}

// CurrentUser proxies the repository's synchronous session read.
func (vm *AuthViewModel) CurrentUser() *models.User {
	return vm.repo.CurrentUser()
}
