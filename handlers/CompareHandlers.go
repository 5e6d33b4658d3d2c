package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
	"ifcdash/utils"
)

// compareUploads parses file1 and file2 and returns their comparison rows.
func compareUploads(ctx context.Context, session *AnalysisSession) (models.ComparisonResponse, error) {
	model1, name1, err := session.OpenModel(ctx, "file1")
	if err != nil {
		return models.ComparisonResponse{}, err
	}
	model2, name2, err := session.OpenModel(ctx, "file2")
	if err != nil {
		return models.ComparisonResponse{}, err
	}
	return models.ComparisonResponse{
		File1: name1,
		File2: name2,
		Rows: services.CompareCounts(
			repository.CountBuildingComponents(model1),
			repository.CountBuildingComponents(model2),
		),
	}, nil
}

// CompareIFC godoc
// @Summary      Compare two IFC files
// @Description  Component counts of file1 and file2 over the union of types. Difference is file1 minus file2 and may be negative.
// @Tags         compare
// @Accept       multipart/form-data
// @Produce      json
// @Param        file1      formData  file    true   "First IFC file"
// @Param        file2      formData  file    true   "Second IFC file"
// @Param        component  formData  string  false  "Component type for detailed comparison"
// @Success      200  {object}  models.ComparisonResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/ifc/compare [post]
func CompareIFC(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		resp, err := compareUploads(ctx, session)
		if err != nil {
			fail(c, err)
			return
		}
		if component := strings.TrimSpace(c.PostForm("component")); component != "" {
			if row, ok := services.FindComparison(resp.Rows, ifc.CanonicalName(component)); ok {
				resp.Component = &row
			} else {
				resp.Messages = append(resp.Messages, fmt.Sprintf("Component '%s' not found in either file", component))
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CompareChart godoc
// @Summary      Comparison chart
// @Description  Grouped bar of one component in both files, or with overall=true a pie of the absolute differences
// @Tags         compare
// @Accept       multipart/form-data
// @Produce      image/png
// @Param        file1      formData  file    true   "First IFC file"
// @Param        file2      formData  file    true   "Second IFC file"
// @Param        component  formData  string  false  "Component type"
// @Param        overall    formData  bool    false  "Pie of all differences"
// @Success      200  {file}    file  "PNG image"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/ifc/compare/chart [post]
func CompareChart(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		overall, _ := strconv.ParseBool(c.DefaultPostForm("overall", "false"))
		component := strings.TrimSpace(c.PostForm("component"))
		if !overall && component == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request", fmt.Errorf("component or overall=true is required"))
			return
		}

		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		resp, err := compareUploads(ctx, session)
		if err != nil {
			fail(c, err)
			return
		}

		var chart services.Chart
		if overall {
			chart = services.OverallComparisonChart(resp.Rows)
		} else {
			row, ok := services.FindComparison(resp.Rows, ifc.CanonicalName(component))
			if !ok {
				utils.ErrorResponse(c, http.StatusNotFound, "Component not found", fmt.Errorf("'%s' is in neither file", component))
				return
			}
			chart = services.ComparisonChart(row, resp.File1, resp.File2)
		}

		img, err := services.RenderChart(chart)
		if err != nil {
			fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
	}
}
