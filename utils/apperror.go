package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
 Taksonomi error aplikasi.

 Service layer hanya mengembalikan tipe-tipe di bawah ini (atau error biasa
 untuk kegagalan internal). Transport layer menerjemahkannya SEKALI di
 RespondError, jadi kode status tidak tersebar di tiap handler dan error
 internal database tidak pernah bocor ke client.

 - ValidationError    -> 400 (input salah / referensi entity tidak ada)
 - AuthorizationError -> 403 (permission ditolak)
 - NotFoundError      -> 404 (record tidak ditemukan)
 - ConflictError      -> 409 (transisi state tidak valid, kuota penuh, dll)
*/

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError membuat error input tidak valid (HTTP 400).
func NewValidationError(message string) error { return &ValidationError{Message: message} }

type AuthorizationError struct{ Message string }

func (e *AuthorizationError) Error() string { return e.Message }

// NewAuthorizationError membuat error permission ditolak (HTTP 403).
func NewAuthorizationError(message string) error { return &AuthorizationError{Message: message} }

type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NewNotFoundError membuat error record tidak ditemukan (HTTP 404).
func NewNotFoundError(resource string) error { return &NotFoundError{Resource: resource} }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError membuat error transisi state tidak valid (HTTP 409).
func NewConflictError(message string) error { return &ConflictError{Message: message} }

// RespondError memetakan error bertipe ke kode status HTTP + body standar.
// Error yang tidak dikenal dianggap kegagalan internal: detailnya di-log,
// client hanya menerima pesan generik.
func RespondError(ctx *gin.Context, err error) {
	var (
		vErr *ValidationError
		aErr *AuthorizationError
		nErr *NotFoundError
		cErr *ConflictError
	)

	switch {
	case errors.As(err, &vErr):
		ctx.JSON(http.StatusBadRequest, BuildResponseFailed(vErr.Message, "validation_error", nil))
	case errors.As(err, &aErr):
		ctx.JSON(http.StatusForbidden, BuildResponseFailed(aErr.Message, "forbidden", nil))
	case errors.As(err, &nErr):
		ctx.JSON(http.StatusNotFound, BuildResponseFailed(nErr.Error(), "not_found", nil))
	case errors.As(err, &cErr):
		ctx.JSON(http.StatusConflict, BuildResponseFailed(cErr.Message, "conflict", nil))
	default:
		log.Printf("[ERROR] %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(http.StatusInternalServerError,
			BuildResponseFailed("Internal server error", "internal_error", nil))
	}
}
