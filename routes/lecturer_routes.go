package routes

import (
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LecturerHandler mengelola endpoint daftar dosen beserta flag capability-nya.
type LecturerHandler struct {
	lecturerService   service.LecturerService
	nominationService service.NominationService
}

// NewLecturerHandler adalah constructor untuk membuat instance handler baru.
func NewLecturerHandler(lecturerService service.LecturerService, nominationService service.NominationService) *LecturerHandler {
	return &LecturerHandler{lecturerService: lecturerService, nominationService: nominationService}
}

// SetupLecturerRoutes mendaftarkan endpoint dosen di belakang auth middleware.
func (h *LecturerHandler) SetupLecturerRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/lecturers")
	g.Use(auth)
	{
		g.GET("", h.GetLecturers)
		g.GET("/:id", h.GetLecturerDetail)
		g.GET("/:id/nominations", h.GetNominations)
	}
}

// GetLecturers mengembalikan semua dosen dengan flag isSupervisor/isExaminer,
// dipakai frontend untuk memilih calon pembimbing/penguji.
func (h *LecturerHandler) GetLecturers(ctx *gin.Context) {
	lects, err := h.lecturerService.FindAll(middleware.GetActor(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(lects))
	for _, l := range lects {
		item := gin.H{
			"id":           l.ID,
			"staffNumber":  l.StaffNumber,
			"isSupervisor": l.Supervisor != nil,
			"isExaminer":   l.Examiner != nil,
		}
		if l.User != nil {
			item["name"] = l.User.Name
			item["email"] = l.User.Email
		}
		items = append(items, item)
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Lecturers retrieved", items))
}

func (h *LecturerHandler) GetLecturerDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lecturer ID", err.Error(), nil))
		return
	}
	lect, err := h.lecturerService.FindByID(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Lecturer retrieved", lect))
}

// GetNominations adalah inbox nominasi per dosen, termasuk dosen yang
// belum punya capability examiner (nominasi pertamanya masih pending).
func (h *LecturerHandler) GetNominations(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lecturer ID", err.Error(), nil))
		return
	}
	noms, err := h.nominationService.ListForLecturer(middleware.GetActor(ctx), id)
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
