/**
* Name:			auth_handler.go
* Description:	Register, login and logout against the credential store
* Workflow:		form post -> CredentialStore -> session identity + flash -> redirect
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"TravelPlanner_WebProject/internal/auth"
	"TravelPlanner_WebProject/internal/middleware"
	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	noticeMissingLogin  = "Please provide both email and password."
	noticeLoginOK       = "Login successful!"
	noticeBadLogin      = "Invalid email or password."
	noticeLoggedOut     = "You have been logged out."
	noticeRegistered    = "Registration successful! Please login."
	noticeMissingFields = "Please fill in all fields."
	noticeMismatch      = "Passwords do not match."
	noticeTooLong       = "Password is too long."
	noticeEmailTaken    = "Email already registered. Please login."
	noticeNameTaken     = "That name is already taken."
)

// LoginPage godoc
// @Summary      Login page
// @Tags         Auth
// @Produce      html
// @Success      200 {string} string "login form"
// @Router       /login [get]
func (h *Handler) LoginPage(c *gin.Context, sess *session.Session) {
	h.render(c, sess, http.StatusOK, "login.html", "Login", nil)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies email and password and stores the user in the session cookie.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Param        email    formData string true "email"
// @Param        password formData string true "password"
// @Success      303 "redirect to / on success, /login on failure"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context, sess *session.Session) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.redirect(c, sess, middleware.LoginPath, session.FlashDanger, noticeMissingLogin)
		return
	}

	user, err := h.creds.Verify(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.AuthEvent("login", "invalid")
			h.redirect(c, sess, middleware.LoginPath, session.FlashDanger, noticeBadLogin)
			return
		}
		h.metrics.AuthEvent("login", "error")
		h.logger.Error("Login failed", "error", err)
		h.redirect(c, sess, middleware.LoginPath, session.FlashDanger, middleware.UnexpectedError)
		return
	}

	sess.Login(user)
	h.metrics.AuthEvent("login", "success")
	h.logger.Info("User logged in", "user_id", user.ID)
	h.redirect(c, sess, "/", session.FlashSuccess, noticeLoginOK)
}

// Logout godoc
// @Summary      Log out
// @Tags         Auth
// @Success      303 "redirect to /login"
// @Router       /logout [get]
func (h *Handler) Logout(c *gin.Context, sess *session.Session) {
	if sess.Authenticated() {
		h.logger.Info("User logged out", "user_id", sess.UserID)
	}
	sess.Clear()
	h.metrics.AuthEvent("logout", "success")
	h.redirect(c, sess, middleware.LoginPath, session.FlashInfo, noticeLoggedOut)
}

// RegisterPage godoc
// @Summary      Registration page
// @Tags         Auth
// @Produce      html
// @Success      200 {string} string "registration form"
// @Router       /register [get]
func (h *Handler) RegisterPage(c *gin.Context, sess *session.Session) {
	h.render(c, sess, http.StatusOK, "register.html", "Register", nil)
}

// Register godoc
// @Summary      Create an account
// @Description  Creates a user with a bcrypt-hashed password. A duplicate email is sent to /login.
// @Tags         Auth
// @Accept       x-www-form-urlencoded
// @Param        name      formData string true "display name"
// @Param        email     formData string true "email"
// @Param        password  formData string true "password"
// @Param        password2 formData string true "password confirmation"
// @Success      303 "redirect to /login on success, /register on failure"
// @Router       /register [post]
func (h *Handler) Register(c *gin.Context, sess *session.Session) {
	in := auth.RegisterInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password2"),
	}

	user, err := h.creds.Register(c.Request.Context(), in)
	if err != nil {
		location, notice := registerFailure(err)
		if notice == middleware.UnexpectedError {
			h.logger.Error("Registration failed", "error", err)
			h.metrics.AuthEvent("register", "error")
		} else {
			h.metrics.AuthEvent("register", "rejected")
		}
		h.redirect(c, sess, location, session.FlashDanger, notice)
		return
	}

	h.metrics.AuthEvent("register", "success")
	h.logger.Info("User registered", "user_id", user.ID)
	h.redirect(c, sess, middleware.LoginPath, session.FlashSuccess, noticeRegistered)
}

func registerFailure(err error) (location, notice string) {
	switch {
	case errors.Is(err, auth.ErrMissingField):
		return "/register", noticeMissingFields
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "/register", noticeMismatch
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "/register", noticeTooLong
	case errors.Is(err, auth.ErrDuplicateEmail):
		return middleware.LoginPath, noticeEmailTaken
	case errors.Is(err, auth.ErrDuplicateName):
		return "/register", noticeNameTaken
	default:
		return "/register", middleware.UnexpectedError
	}
}
