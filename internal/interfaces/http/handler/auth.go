package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/marketplace/backend/internal/application/identity"
)

// AuthHandler handles registration, login and account endpoints
type AuthHandler struct {
	BaseHandler
	authService  *identityapp.AuthService
	authenticate gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, authenticate gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		authenticate: authenticate,
	}
}

// Register creates a new inactive account and emails a confirmation token
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Confirm redeems an emailed confirmation token and activates the account
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req identityapp.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.ConfirmEmail(c.Request.Context(), req.Email, req.Token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"confirmed": true})
}

// Login checks credentials and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, token)
}

// GetAccount returns the authenticated account
func (h *AuthHandler) GetAccount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateAccount applies a partial update to the authenticated account
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.UpdateAccount(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeRole switches the account between buyer and shop after a
// password recheck
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req identityapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.ChangeRole(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// RegisterRoutes registers all auth and account routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register/confirm", h.Confirm)
		auth.POST("/login", h.Login)
	}

	account := rg.Group("/account", h.authenticate)
	{
		account.GET("", h.GetAccount)
		account.PUT("", h.UpdateAccount)
		account.POST("/role", h.ChangeRole)
	}
}
