package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type AuthController struct {
	API      *upstream.Client
	Sessions *services.SessionService
	Notifier *services.NotificationCenter
}

// @Summary Register
// @Description Create an account with the upstream auth service and start a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	resp, err := ctrl.API.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		ctrl.loginError(c, err)
		return
	}

	ctrl.startSession(c, resp)
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Account created", Data: resp})
}

// @Summary Login
// @Description Obtain a session token from the upstream auth service
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	resp, err := ctrl.API.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ctrl.loginError(c, err)
		return
	}

	ctrl.startSession(c, resp)
	ctrl.Notifier.Notify(middleware.SessionID(c), "Welcome back!", services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Logged in", Data: resp})
}

// @Summary Logout
// @Description Clear the session's token, user id and admin flag together
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := ctrl.Sessions.Logout(c.Request.Context(), sid); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Logged out"})
}

// @Summary Session info
// @Description Whether the session is logged in, and as whom
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/session [get]
func (ctrl *AuthController) GetSession(c *gin.Context) {
	session := ctrl.Sessions.Current(c.Request.Context(), middleware.SessionID(c))
	if session == nil {
		c.JSON(http.StatusOK, models.Response{Success: true, Data: gin.H{"loggedIn": false}})
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Data: gin.H{
		"loggedIn": true,
		"userId":   session.UserID,
		"isAdmin":  session.IsAdmin,
	}})
}

func (ctrl *AuthController) startSession(c *gin.Context, resp models.LoginResponse) {
	sid := middleware.SessionID(c)
	if err := ctrl.Sessions.Login(c.Request.Context(), sid, resp.Token, resp.User); err != nil {
		// The upstream login succeeded; the caller still gets the token even
		// if local persistence misbehaved.
		ctrl.Notifier.Notify(sid, "Signed in, but the session could not be saved", services.NotifyError)
	}
}

func (ctrl *AuthController) loginError(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: apiErr.Message})
		return
	}
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Authentication service unavailable"})
}
