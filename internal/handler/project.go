package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/repository"
	"github.com/landsuite/plot-erp/internal/utils"
)

// ProjectHandler owns the project surface.
type ProjectHandler struct {
	Store *repository.Store
}

func NewProjectHandler(store *repository.Store) *ProjectHandler {
	return &ProjectHandler{Store: store}
}

// List handles GET /v1/projects.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.Store.ListProjects(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list projects"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": projects})
}

// Get handles GET /v1/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.Store.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /v1/projects. The route is gated on the
// settings-crud capability.
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name                string     `json:"name"`
		Code                string     `json:"code"`
		LocationCity        string     `json:"location_city"`
		LocationArea        string     `json:"location_area"`
		DeveloperName       string     `json:"developer_name"`
		LaunchDate          *time.Time `json:"launch_date"`
		DefaultPlotSizeUnit string     `json:"default_plot_size_unit"`
		BaseRate            float64    `json:"base_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Code == "" || body.BaseRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, code and base_rate are required"})
	}

	unit := domain.SizeUnit(body.DefaultPlotSizeUnit)
	if unit == "" {
		unit = domain.SizeUnitSqYd
	}
	now := time.Now().UTC()
	project := domain.Project{
		ID:                  utils.NewID("proj"),
		Name:                body.Name,
		Code:                body.Code,
		LocationCity:        body.LocationCity,
		LocationArea:        body.LocationArea,
		DeveloperName:       body.DeveloperName,
		LaunchDate:          body.LaunchDate,
		Status:              domain.ProjectStatusActive,
		DefaultPlotSizeUnit: unit,
		BaseRate:            body.BaseRate,
		CreatedBy:           userID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := h.Store.PutProject(c.Request().Context(), project); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create project"})
	}
	return c.JSON(http.StatusCreated, project)
}
