package handlers

import (
	"net/http"
	"time"

	"task-approval-api/internal/auth"
	"task-approval-api/internal/cache"
	"task-approval-api/internal/models"
	"task-approval-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// challengeTTL is how long a requested OTP login stays redeemable.
const challengeTTL = 5 * time.Minute

// AuthHandler implements the two-step OTP login: request a challenge
// for an (email, role) pair, then redeem it with the OTP issued at
// account provisioning.
type AuthHandler struct {
	engine     *workflow.Engine
	challenges cache.Cache[string, time.Time]
}

// NewAuthHandler wires the login flow to the engine's credential store.
func NewAuthHandler(engine *workflow.Engine) *AuthHandler {
	return &AuthHandler{
		engine:     engine,
		challenges: cache.NewTTLCache[string, time.Time](),
	}
}

// RequestOTPRequest identifies the account asking to log in.
type RequestOTPRequest struct {
	Email string            `json:"email" binding:"required"`
	Role  models.SystemRole `json:"role" binding:"required"`
}

// LoginRequest redeems a pending challenge with the account's OTP.
type LoginRequest struct {
	Email string            `json:"email" binding:"required"`
	Role  models.SystemRole `json:"role" binding:"required"`
	OTP   string            `json:"otp" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string            `json:"token"`
	UserID  string            `json:"userId"`
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Role    models.SystemRole `json:"role"`
	Message string            `json:"message"`
}

func challengeKey(email string, role models.SystemRole) string {
	return email + "|" + string(role)
}

// RequestOTP handles POST /api/auth/request-otp
// Step 1: verify an account exists for (email, role) and open a
// short-lived challenge for step 2.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and role are required.",
		})
		return
	}

	cred, err := h.engine.FindCredential(req.Email, req.Role)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No account found with this email and role. Contact your administrator.",
		})
		return
	}

	h.challenges.Set(challengeKey(cred.Email, cred.SystemRole), time.Now(), challengeTTL)

	c.JSON(http.StatusOK, gin.H{
		"message": "Enter the OTP provided when your account was created.",
	})
}

// Login handles POST /api/auth/login
// Step 2: redeem the challenge, verify the OTP, issue a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email, role and OTP are required.",
		})
		return
	}

	cred, err := h.engine.FindCredential(req.Email, req.Role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// The challenge is single-use: a failed OTP forces a new request.
	if _, ok := h.challenges.Take(challengeKey(cred.Email, cred.SystemRole)); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "No pending login. Request an OTP first.",
		})
		return
	}

	if !h.engine.VerifyOTP(cred, req.OTP) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid OTP. Please check and try again.",
		})
		return
	}

	token, err := auth.GenerateToken(cred.Name, cred.Email, cred.SystemRole)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		UserID:  cred.ID,
		Name:    cred.Name,
		Email:   cred.Email,
		Role:    cred.SystemRole,
		Message: "Login successful",
	})
}

// Logout handles POST /api/auth/logout
// Sessions are stateless tokens; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
