package routes

import (
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler adalah struct pengelola request untuk fitur Autentikasi.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mendaftarkan endpoint autentikasi (tanpa middleware:
// register/login justru dipakai untuk mendapatkan token).
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

// Register menangani pendaftaran user baru (mahasiswa atau dosen).
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid registration input", err.Error(), nil))
		return
	}

	user, err := h.authService.Register(input)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Registration successful", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}))
}

// Login menangani proses masuk dan penerbitan JWT.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid login input", err.Error(), nil))
		return
	}

	user, token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		// Kredensial salah dikirim sebagai 401, bukan lewat taksonomi standar.
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Login failed", "invalid_credentials", nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	}))
}
