package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the analysis API under api.
func RegisterRoutes(api *gin.RouterGroup, up Uploads) {
	api.GET("/health", Health)

	ifcGroup := api.Group("/ifc")
	ifcGroup.POST("/analyze", AnalyzeIFC(up))
	ifcGroup.POST("/types", ListEntityTypes(up))
	ifcGroup.POST("/chart", ComponentChart(up))
	ifcGroup.POST("/objects", ObjectData(up))
	ifcGroup.POST("/objects/csv", ExportObjectDataCSV(up))
	ifcGroup.POST("/objects/xlsx", ExportObjectDataXLSX(up))
	ifcGroup.POST("/compare", CompareIFC(up))
	ifcGroup.POST("/compare/chart", CompareChart(up))
	ifcGroup.POST("/report", IfcReport(up))

	excelGroup := api.Group("/excel")
	excelGroup.POST("/analyze", AnalyzeExcel(up))
	excelGroup.POST("/report", ExcelReport(up))
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  object  "status"
// @Router       /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
