package routes

import (
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupervisorHandler mengelola endpoint pembimbing: promosi role, dashboard
// mahasiswa bimbingan, nominasi penguji, dan sidang yang ia uji.
type SupervisorHandler struct {
	roleService       service.RoleService
	supervisorService service.SupervisorService
	nominationService service.NominationService
	vivaService       service.VivaService
}

// NewSupervisorHandler adalah constructor untuk membuat instance handler baru.
func NewSupervisorHandler(
	roleService service.RoleService,
	supervisorService service.SupervisorService,
	nominationService service.NominationService,
	vivaService service.VivaService,
) *SupervisorHandler {
	return &SupervisorHandler{
		roleService:       roleService,
		supervisorService: supervisorService,
		nominationService: nominationService,
		vivaService:       vivaService,
	}
}

// SetupSupervisorRoutes mendaftarkan endpoint pembimbing di belakang auth middleware.
func (h *SupervisorHandler) SetupSupervisorRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/supervisors")
	g.Use(auth)
	{
		g.POST("/:lecturerId", h.Promote)
		g.GET("", h.GetSupervisors)
		g.GET("/:lecturerId/students", h.GetAssignedStudents)
		g.POST("/:lecturerId/students/:studentId", h.TakeStudent)
		g.GET("/:lecturerId/students/:studentId/progress", h.GetStudentProgress)
		g.GET("/:lecturerId/submissions", h.GetSupervisedSubmissions)
		g.GET("/:lecturerId/projects/archive", h.GetProjectArchive)
		g.POST("/:lecturerId/nominate", h.Nominate)
		g.GET("/:lecturerId/vivas", h.GetAssignedVivas)
	}
}

// Promote menjadikan seorang dosen sebagai pembimbing (idempoten).
func (h *SupervisorHandler) Promote(ctx *gin.Context) {
	lecturerID, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lecturer ID", err.Error(), nil))
		return
	}
	sup, err := h.roleService.PromoteToSupervisor(ctx.Request.Context(), middleware.GetActor(ctx), lecturerID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Lecturer promoted to supervisor", sup))
}

func (h *SupervisorHandler) GetSupervisors(ctx *gin.Context) {
	sups, err := h.supervisorService.FindAll(middleware.GetActor(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Supervisors retrieved", sups))
}

func (h *SupervisorHandler) GetAssignedStudents(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	students, err := h.supervisorService.AssignedStudents(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Assigned students retrieved", students))
}

// TakeStudent menempelkan mahasiswa ke dalam bimbingan supervisor.
func (h *SupervisorHandler) TakeStudent(ctx *gin.Context) {
	supID, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	if err := h.supervisorService.AssignStudent(ctx.Request.Context(), middleware.GetActor(ctx), supID, studentID); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Student assigned to supervisor", nil))
}

func (h *SupervisorHandler) GetStudentProgress(ctx *gin.Context) {
	supID, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	progress, err := h.supervisorService.StudentProgress(middleware.GetActor(ctx), supID, studentID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Student progress retrieved", gin.H{
		"studentId": studentID,
		"progress":  progress,
	}))
}

func (h *SupervisorHandler) GetSupervisedSubmissions(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	subs, err := h.supervisorService.SupervisedSubmissions(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Supervised submissions retrieved", subs))
}

func (h *SupervisorHandler) GetProjectArchive(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	projects, err := h.supervisorService.ProjectArchive(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Project archive retrieved", projects))
}

// Nominate mengajukan seorang dosen sebagai calon penguji.
func (h *SupervisorHandler) Nominate(ctx *gin.Context) {
	var input struct {
		LecturerID string `json:"lecturerId" binding:"required"`
		Details    string `json:"details" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid nomination input", err.Error(), nil))
		return
	}
	lecturerID, err := uuid.Parse(input.LecturerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lecturer ID", err.Error(), nil))
		return
	}

	nom, err := h.nominationService.Nominate(ctx.Request.Context(), middleware.GetActor(ctx), lecturerID, input.Details)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Nomination created", gin.H{
		"id":         nom.ID,
		"lecturerId": nom.LecturerID,
		"details":    nom.Details,
		"status":     nom.Status(),
	}))
}

func (h *SupervisorHandler) GetAssignedVivas(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("lecturerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid supervisor ID", err.Error(), nil))
		return
	}
	vivas, err := h.vivaService.FindAssignedForSupervisor(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Assigned vivas retrieved", vivas))
}
