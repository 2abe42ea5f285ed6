package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/middleware"
	"github.com/hwojcik/exagen/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequest true "Username, password and email"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 409 {object} dto.ErrorResponse "Username or email already taken"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing fields", Details: []string{err.Error()}})
		return
	}

	if err := c.authService.Register(req); err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Registration failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing fields", Details: []string{err.Error()}})
		return
	}

	token, err := c.authService.Login(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// Logout godoc
// @Summary Revoke the presented access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(middleware.JTI(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	profile, err := c.authService.Profile(middleware.Username(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
