package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
	"ifcdash/utils"
)

// objectRequest is the form shared by the object data routes.
type objectRequest struct {
	ClassType string
	GroupBy   []string
	SumColumn string
}

func readObjectRequest(c *gin.Context) (objectRequest, error) {
	req := objectRequest{
		ClassType: strings.TrimSpace(c.PostForm("class_type")),
		GroupBy:   utils.FormList(c, "group_by"),
		SumColumn: strings.TrimSpace(c.PostForm("sum_column")),
	}
	if req.ClassType == "" {
		return req, errors.New("class_type is required")
	}
	if req.SumColumn != "" && len(req.GroupBy) == 0 {
		return req, errors.New("sum_column requires group_by")
	}
	return req, nil
}

// buildObjectData runs extraction and flattening for one upload. Missing
// grouping columns become messages, not errors.
func buildObjectData(ctx context.Context, session *AnalysisSession, req objectRequest) (models.ObjectDataResponse, error) {
	model, name, err := session.OpenModel(ctx, "file")
	if err != nil {
		return models.ObjectDataResponse{}, err
	}
	classType := ifc.CanonicalName(req.ClassType)
	records, paths, err := repository.ExtractObjectDataContext(ctx, model, classType)
	if err != nil {
		return models.ObjectDataResponse{}, err
	}

	columns := services.ObjectColumns(paths)
	resp := models.ObjectDataResponse{
		FileName:   name,
		ClassType:  classType,
		Attributes: columns,
		Table:      services.FlattenObjects(records, columns),
	}
	if len(records) == 0 {
		resp.Messages = append(resp.Messages, "No "+classType+" entities found")
	}

	switch {
	case len(req.GroupBy) > 0:
		resp.Groups, err = services.GroupTable(resp.Table, req.GroupBy, req.SumColumn)
	case classType == services.BeamClass:
		var rows []models.GroupRow
		if rows, err = services.BeamVolumeTotals(resp.Table); err == nil {
			resp.Groups = &models.GroupResult{GroupBy: services.BeamGroupKeys, SumColumn: services.BeamVolumeColumn, Rows: rows}
		}
	}
	var missing *services.MissingColumnsError
	if errors.As(err, &missing) {
		resp.Messages = append(resp.Messages, missing.Error())
	} else if err != nil {
		return models.ObjectDataResponse{}, err
	}
	return resp, nil
}

// ObjectData godoc
// @Summary      Extract object data
// @Description  Flattened table of every entity of class_type with its property and quantity sets. IfcBeam adds NetVolume totals by Level, Type and PredefinedType.
// @Tags         ifc
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "IFC file"
// @Param        class_type  formData  string  true   "Entity class, e.g. IfcBeam"
// @Param        group_by    formData  string  false  "Comma separated grouping columns"
// @Param        sum_column  formData  string  false  "Column summed per group"
// @Success      200  {object}  models.ObjectDataResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /api/ifc/objects [post]
func ObjectData(up Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := readObjectRequest(c)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
			return
		}

		session := NewSession(c, up)
		defer session.Close()

		ctx, cancel := utils.GetDefaultAnalysisContext(c.Request.Context())
		defer cancel()

		resp, err := buildObjectData(ctx, session, req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
