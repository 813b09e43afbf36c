package routes

import (
	"net/http"

	"thesis-management-backend/app/service"
	"thesis-management-backend/middleware"
	"thesis-management-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler mengelola endpoint arsip project (read-only).
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler adalah constructor untuk membuat instance handler baru.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// SetupProjectRoutes mendaftarkan endpoint arsip di belakang auth middleware.
func (h *ProjectHandler) SetupProjectRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/projects")
	g.Use(auth)
	{
		g.GET("", h.GetProjects)
		g.GET("/:id", h.GetProjectDetail)
	}
}

func (h *ProjectHandler) GetProjects(ctx *gin.Context) {
	projects, err := h.projectService.FindAll(middleware.GetActor(ctx))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Projects retrieved", projects))
}

func (h *ProjectHandler) GetProjectDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid project ID", err.Error(), nil))
		return
	}
	project, err := h.projectService.FindByID(middleware.GetActor(ctx), id)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Project retrieved", project))
}
