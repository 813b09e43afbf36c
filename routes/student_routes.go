package routes

import (
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudentHandler mengelola endpoint mahasiswa: profil, submission
// (dengan kuota), progress bar, dan detail sidang sendiri.
type StudentHandler struct {
	studentService service.StudentService
	vivaService    service.VivaService
	projectService service.ProjectService
}

// NewStudentHandler adalah constructor untuk membuat instance handler baru.
func NewStudentHandler(studentService service.StudentService, vivaService service.VivaService, projectService service.ProjectService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		vivaService:    vivaService,
		projectService: projectService,
	}
}

// SetupStudentRoutes mendaftarkan endpoint mahasiswa di belakang auth middleware.
func (h *StudentHandler) SetupStudentRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/students")
	g.Use(auth)
	{
		g.GET("", h.GetStudents)
		g.GET("/:id", h.GetStudentDetail)
		g.GET("/:id/progress", h.GetProgress)
		g.GET("/:id/submissions", h.GetSubmissions)
		g.GET("/:id/viva", h.GetViva)
		g.GET("/:id/project", h.GetProject)
		// Param :id di sini berisi EMAIL mahasiswa (router tidak mengizinkan
		// nama wildcard berbeda pada posisi yang sama).
		g.POST("/:id/submissions", h.AddSubmission)
		g.DELETE("/submissions/:id", h.DeleteSubmission)
	}
}

func (h *StudentHandler) GetStudents(ctx *gin.Context) {
	students, err := h.studentService.FindAll(middleware.GetActor(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Students retrieved", students))
}

func (h *StudentHandler) GetStudentDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	student, err := h.studentService.FindByID(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Student retrieved", student))
}

// GetProgress mengembalikan persentase progress (count/4 * 100).
func (h *StudentHandler) GetProgress(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	progress, err := h.studentService.Progress(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Progress retrieved", gin.H{
		"studentId": id,
		"progress":  progress,
	}))
}

func (h *StudentHandler) GetSubmissions(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	subs, err := h.studentService.FindSubmissions(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Submissions retrieved", subs))
}

func (h *StudentHandler) GetViva(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	viva, err := h.vivaService.FindForStudent(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Viva retrieved", viva))
}

func (h *StudentHandler) GetProject(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	project, err := h.projectService.FindForStudent(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Project retrieved", project))
}

// AddSubmission menerima pengumpulan dokumen baru untuk mahasiswa
// yang diidentifikasi lewat email.
func (h *StudentHandler) AddSubmission(ctx *gin.Context) {
	var input struct {
		Title          string  `json:"title" binding:"required"`
		SubmissionType string  `json:"submissionType" binding:"required"`
		FileID         *string `json:"fileId"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid submission input", err.Error(), nil))
		return
	}

	svcInput := service.AddSubmissionInput{
		StudentEmail:   ctx.Param("id"),
		Title:          input.Title,
		SubmissionType: input.SubmissionType,
	}
	if input.FileID != nil {
		fileID, err := uuid.Parse(*input.FileID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid file ID", err.Error(), nil))
			return
		}
		svcInput.FileID = &fileID
	}

	sub, err := h.studentService.AddSubmission(ctx.Request.Context(), middleware.GetActor(ctx), svcInput)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Submission created", sub))
}

func (h *StudentHandler) DeleteSubmission(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid submission ID", err.Error(), nil))
		return
	}
	if err := h.studentService.DeleteSubmission(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Submission deleted", nil))
}
