package routes

import (
	"net/http"
	"time"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExaminerHandler mengelola endpoint penguji: promosi role, inbox nominasi
// (accept/reject), dan siklus sidang (buat, tugaskan penguji, evaluasi).
type ExaminerHandler struct {
	roleService       service.RoleService
	lecturerService   service.LecturerService
	nominationService service.NominationService
	vivaService       service.VivaService
}

// NewExaminerHandler adalah constructor untuk membuat instance handler baru.
func NewExaminerHandler(
	roleService service.RoleService,
	lecturerService service.LecturerService,
	nominationService service.NominationService,
	vivaService service.VivaService,
) *ExaminerHandler {
	return &ExaminerHandler{
		roleService:       roleService,
		lecturerService:   lecturerService,
		nominationService: nominationService,
		vivaService:       vivaService,
	}
}

// SetupExaminerRoutes mendaftarkan endpoint penguji di belakang auth middleware.
func (h *ExaminerHandler) SetupExaminerRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/examiners")
	g.Use(auth)
	{
		g.POST("/:id", h.Promote) // :id = lecturer ID
		g.GET("", h.GetExaminers)
		g.GET("/:id/nominations", h.GetNominations)
		g.POST("/nominations/:nominationId/accept", h.AcceptNomination)
		g.POST("/nominations/:nominationId/reject", h.RejectNomination)
		g.POST("/:id/vivas", h.CreateViva)
		g.GET("/:id/vivas", h.GetAssignedVivas)
		g.POST("/vivas/:vivaId/assign", h.AssignExaminers)
		g.POST("/vivas/:vivaId/evaluate", h.EvaluateViva)
	}
}

// Promote menjadikan seorang dosen sebagai penguji (idempoten).
func (h *ExaminerHandler) Promote(ctx *gin.Context) {
	lecturerID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lecturer ID", err.Error(), nil))
		return
	}
	ex, err := h.roleService.PromoteToExaminer(ctx.Request.Context(), middleware.GetActor(ctx), lecturerID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Lecturer promoted to examiner", ex))
}

func (h *ExaminerHandler) GetExaminers(ctx *gin.Context) {
	exs, err := h.lecturerService.FindAllExaminers(middleware.GetActor(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Examiners retrieved", exs))
}

// GetNominations mengambil inbox nominasi seorang penguji, dengan status
// turunan (pending/accepted/rejected) di tiap item.
func (h *ExaminerHandler) GetNominations(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid examiner ID", err.Error(), nil))
		return
	}
	noms, err := h.nominationService.ListForExaminer(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(noms))
	for _, n := range noms {
		items = append(items, gin.H{
			"id":        n.ID,
			"details":   n.Details,
			"status":    n.Status(),
			"createdAt": n.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Nominations retrieved", items))
}

func (h *ExaminerHandler) AcceptNomination(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("nominationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid nomination ID", err.Error(), nil))
		return
	}
	nom, err := h.nominationService.Accept(ctx.Request.Context(), middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Nomination accepted", gin.H{
		"id":     nom.ID,
		"status": nom.Status(),
	}))
}

func (h *ExaminerHandler) RejectNomination(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("nominationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid nomination ID", err.Error(), nil))
		return
	}
	nom, err := h.nominationService.Reject(ctx.Request.Context(), middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Nomination rejected", gin.H{
		"id":     nom.ID,
		"status": nom.Status(),
	}))
}

// CreateViva menjadwalkan sidang baru untuk seorang mahasiswa.
func (h *ExaminerHandler) CreateViva(ctx *gin.Context) {
	var input struct {
		StudentID   string   `json:"studentId" binding:"required"`
		Topic       string   `json:"topic" binding:"required"`
		VivaDate    string   `json:"vivaDate" binding:"required"`
		ExaminerIDs []string `json:"examinerIds"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid viva input", err.Error(), nil))
		return
	}

	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid student ID", err.Error(), nil))
		return
	}
	vivaDate, err := time.Parse(time.RFC3339, input.VivaDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid viva date (expected RFC3339)", err.Error(), nil))
		return
	}
	examinerIDs, err := parseUUIDs(input.ExaminerIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid examiner ID", err.Error(), nil))
		return
	}

	viva, err := h.vivaService.Create(ctx.Request.Context(), middleware.GetActor(ctx), service.CreateVivaInput{
		StudentID:   studentID,
		Topic:       input.Topic,
		VivaDate:    vivaDate,
		ExaminerIDs: examinerIDs,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Viva created", viva))
}

func (h *ExaminerHandler) GetAssignedVivas(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid examiner ID", err.Error(), nil))
		return
	}
	vivas, err := h.vivaService.FindForExaminer(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Assigned vivas retrieved", vivas))
}

// AssignExaminers menambahkan penguji ke sidang yang sudah ada.
func (h *ExaminerHandler) AssignExaminers(ctx *gin.Context) {
	vivaID, err := uuid.Parse(ctx.Param("vivaId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid viva ID", err.Error(), nil))
		return
	}
	var input struct {
		ExaminerIDs []string `json:"examinerIds" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid assignment input", err.Error(), nil))
		return
	}
	examinerIDs, err := parseUUIDs(input.ExaminerIDs)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid examiner ID", err.Error(), nil))
		return
	}

	viva, err := h.vivaService.AssignExaminers(ctx.Request.Context(), middleware.GetActor(ctx), vivaID, examinerIDs)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Examiners assigned", viva))
}

// EvaluateViva menutup sidang dengan hasil lulus/tidak (sekali saja).
func (h *ExaminerHandler) EvaluateViva(ctx *gin.Context) {
	vivaID, err := uuid.Parse(ctx.Param("vivaId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid viva ID", err.Error(), nil))
		return
	}
	var input struct {
		Evaluation string `json:"evaluation" binding:"required"`
		Passed     *bool  `json:"passed" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid evaluation input", err.Error(), nil))
		return
	}

	viva, err := h.vivaService.Evaluate(ctx.Request.Context(), middleware.GetActor(ctx), vivaID, input.Evaluation, *input.Passed)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Viva evaluated", viva))
}

// parseUUIDs mengubah slice string menjadi slice uuid.UUID.
func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
