package routes

import (
	"io"
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler mengelola upload/download dokumen tesis.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler adalah constructor untuk membuat instance handler baru.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// SetupFileRoutes mendaftarkan endpoint file di belakang auth middleware.
func (h *FileHandler) SetupFileRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/files")
	g.Use(auth)
	{
		g.POST("/upload", h.Upload)
		g.GET("/:id", h.Download)
	}
}

// Upload menerima multipart form dengan field "file".
func (h *FileHandler) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Multipart field 'file' is required", err.Error(), nil))
		return
	}
	if fileHeader.Size > service.MaxFileSize {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Uploaded file exceeds the 16 MB limit", "file_too_large", nil))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	mimetype := fileHeader.Header.Get("Content-Type")
	file, err := h.fileService.Upload(ctx.Request.Context(), middleware.GetActor(ctx),
		fileHeader.Filename, mimetype, data)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("File uploaded", gin.H{
		"id":       file.ID,
		"filename": file.Filename,
		"mimetype": file.Mimetype,
	}))
}

// Download mengirim blob dokumen apa adanya (bukan envelope JSON).
func (h *FileHandler) Download(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid file ID", err.Error(), nil))
		return
	}

	file, doc, err := h.fileService.Get(ctx.Request.Context(), middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	ctx.Data(http.StatusOK, doc.ContentType, doc.Data)
}
