package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vividexpense-be/internal/middleware"
	"vividexpense-be/internal/models"
	"vividexpense-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid request body", err)
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "Invalid request body", err)
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.authService.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UsageHint handles GET on the auth endpoints, which only accept POST
func (ac *AuthController) UsageHint(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"detail": "Use POST with JSON body (name, email, password for register; email, password for login).",
	})
}
