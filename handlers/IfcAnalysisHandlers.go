package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
	"ifcdash/utils"
)

// AnalyzeIFC godoc
// @Summary      Analyze IFC file
// @Description  Project metadata, component counts and the entity types present. With product_type, also counts that type by the family part of its name.
// @Tags         ifc
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "IFC file"
// @Param        product_type  formData  string  false  "Product type for detailed analysis, e.g. IfcWall"
// @Param        sort_by       formData  string  false  "Detailed sort order: Count or Type"
// @Success      200  {object}  models.IfcAnalysisResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/ifc/analyze [post]
func AnalyzeIFC(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		model, name, err := session.OpenModel(ctx, "file")
		if err != nil {
			fail(c, err)
			return
		}

		resp := models.IfcAnalysisResponse{
			FileName:        name,
			Schema:          model.Schema(),
			Metadata:        repository.ProjectMetadata(model),
			ComponentCounts: repository.SortCounts(repository.CountBuildingComponents(model), "count"),
			EntityTypes:     model.AllEntityTypeNames(),
		}
		if len(resp.ComponentCounts) == 0 {
			resp.Messages = append(resp.Messages, "No building components found")
		}

		if productType := strings.TrimSpace(c.PostForm("product_type")); productType != "" {
			counts := repository.CountByNamePrefix(model, productType)
			resp.Detailed = &models.DetailedCounts{
				ProductType: ifc.CanonicalName(productType),
				Counts:      repository.SortCounts(counts, c.DefaultPostForm("sort_by", "Count")),
			}
			if len(counts) == 0 {
				resp.Messages = append(resp.Messages, "No "+productType+" products found")
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ListEntityTypes godoc
// @Summary      List entity types
// @Description  Sorted names of every entity type present in the IFC file
// @Tags         ifc
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "IFC file"
// @Success      200  {object}  object  "file_name, schema, types"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/ifc/types [post]
func ListEntityTypes(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		model, name, err := session.OpenModel(ctx, "file")
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"file_name": name,
			"schema":    model.Schema(),
			"types":     model.AllEntityTypeNames(),
		})
	}
}

// ComponentChart godoc
// @Summary      Component count chart
// @Description  PNG chart of the component counts, or of one product type by name when product_type is set
// @Tags         ifc
// @Accept       multipart/form-data
// @Produce      image/png
// @Param        file          formData  file    true   "IFC file"
// @Param        chart_type    formData  string  false  "bar or pie"
// @Param        product_type  formData  string  false  "Product type for the detailed pie"
// @Success      200  {file}    file  "PNG image"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/ifc/chart [post]
func ComponentChart(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, err := services.ParseChartKind(c.PostForm("chart_type"))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid chart_type", err)
			return
		}

		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		model, _, err := session.OpenModel(ctx, "file")
		if err != nil {
			fail(c, err)
			return
		}

		var chart services.Chart
		if productType := strings.TrimSpace(c.PostForm("product_type")); productType != "" {
			counts := repository.SortCounts(repository.CountByNamePrefix(model, productType), "count")
			chart = services.DetailedChart(ifc.CanonicalName(productType), counts)
		} else {
			chart = services.ComponentChart(repository.SortCounts(repository.CountBuildingComponents(model), "count"), kind)
		}

		img, err := services.RenderChart(chart)
		if err != nil {
			fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
	}
}
