package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/viewmodel"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/validate"
)

// AuthController exposes the identity flows over HTTP. Each request drives a
// fresh view-model so concurrent sign-ins never share screen state; the JWT
// in the response is the session that matters here.
type AuthController struct {
	repo repositories.AuthRepository
}

func NewAuthController(repo repositories.AuthRepository) *AuthController {
	return &AuthController{repo: repo}
}

type signInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=120"`
}

// tokenPair is the signed session handed to the client on success.
type tokenPair struct {
	Token   string      `json:"token"`
	Refresh string      `json:"refresh_token"`
	User    models.User `json:"user"`
}

func issueTokens(u models.User) (tokenPair, error) {
	t, err := auth.GenerateToken(u.ID, u.Role.String())
	if err != nil {
		return tokenPair{}, err
	}
	rt, err := auth.GenerateRefreshToken(u.ID, u.Role.String())
	if err != nil {
		return tokenPair{}, err
	}
	return tokenPair{Token: t, Refresh: rt, User: u}, nil
}

func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var in signInInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	vm := viewmodel.NewAuthViewModel(c.repo)
	vm.SignIn(r.Context(), in.Email, in.Password)

	st := vm.State.Get()
	if st.Kind != viewmodel.AuthAuthenticated {
		response.Error(w, http.StatusUnauthorized, st.Message)
		return
	}

	pair, err := issueTokens(*st.User)
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue tokens", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue session")
		return
	}
	response.Success(w, pair)
}

func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var in signUpInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	vm := viewmodel.NewAuthViewModel(c.repo)
	vm.SignUp(r.Context(), in.Email, in.Password, in.Name)

	st := vm.State.Get()
	if st.Kind != viewmodel.AuthAuthenticated {
		response.Error(w, http.StatusUnprocessableEntity, st.Message)
		return
	}

	pair, err := issueTokens(*st.User)
	if err != nil {
		logger.WithCtx(r.Context()).Error("issue tokens", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue session")
		return
	}
	response.Created(w, pair)
}

// SignOut is advisory: tokens are stateless, so the client drops them. The
// repository's local session is cleared for embedded callers.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	c.repo.SignOut()
	response.Success(w, map[string]string{"status": "signed out"})
}

// Me returns the profile behind the bearer token.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	role, err := c.repo.UserRole(r.Context(), id)
	if err != nil {
		if err == repositories.ErrNotFound {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, map[string]string{"id": id, "role": role.String()})
}

// ListUsers is the admin roster.
func (c *AuthController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.repo.ListUsers(r.Context())
	if err != nil {
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	response.Success(w, users)
}
