// Copyright (c) 2026 Vicinio. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vicinio/vicinio/internal/platform/request"
	"github.com/vicinio/vicinio/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public account entry endpoints. None of its
// routes sit behind the authentication middleware.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the entry routes.
//
// # Endpoints
//   - POST /signup          : Creates an account, returns it + token.
//   - POST /login           : Authenticates, returns the account + token.
//   - POST /forgot-password : Starts the recovery flow.
//   - POST /reset-password  : Completes the recovery flow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// # Request Payloads

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	LoginID   string `json:"loginId"`
	Password  string `json:"password"`
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	LoginID string `json:"loginId"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
signup creates a new account.

POST /api/v2/signup

Request:
  - Body: {firstName, lastName, loginId, password}

Response:
  - 200: {user} + token header (hash never serialized, status = 1)
  - 401: 1003, 1004, 1002, 1001, 1005
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	requestutil.DecodeJSON(request, &input)

	session, err := handler.authService.Signup(request.Context(), SignupInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		LoginID:   input.LoginID,
		Password:  input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKWithToken(writer, session.Token, map[string]any{"user": session.User})
}

/*
login authenticates an account.

POST /api/v2/login

Request:
  - Body: {loginId, password}

Response:
  - 200: {user} + token header
  - 401: 1101 WRONG_CREDENTIALS (single code for every failure)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	requestutil.DecodeJSON(request, &input)

	session, err := handler.authService.Login(request.Context(), input.LoginID, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKWithToken(writer, session.Token, map[string]any{"user": session.User})
}

/*
forgotPassword starts the recovery flow.

POST /api/v2/forgot-password

Request:
  - Body: {loginId}

Response:
  - 200: {message}
  - 401: 1001 WRONG_EMAIL_FORMAT, 1201 NO_ACCOUNT
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	requestutil.DecodeJSON(request, &input)

	if err := handler.authService.ForgotPassword(request.Context(), input.LoginID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Email was sent to you. Please check your email",
	})
}

/*
resetPassword completes the recovery flow.

POST /api/v2/reset-password

Request:
  - Body: {token, password}

Response:
  - 200: {message}
  - 401: 1102 (unknown/expired token), 1002 BAD_PASSWORD_FORMAT
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	requestutil.DecodeJSON(request, &input)

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Password updated successfully",
	})
}
