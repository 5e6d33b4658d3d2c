package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ifcdash/ifc"
	"ifcdash/models"
	"ifcdash/repository"
	"ifcdash/services"
	"ifcdash/storage"
	"ifcdash/utils"
)

// Uploads is what every handler needs to accept files.
type Uploads struct {
	Store   *storage.ScratchStore
	MaxSize int64
}

// AnalysisSession holds the uploads of one request. Close removes every
// scratch file it acquired.
type AnalysisSession struct {
	ID    string
	up    Uploads
	c     *gin.Context
	paths []string
}

// errMissingFile marks a required form field that was not sent.
var errMissingFile = errors.New("missing file")

// inputError is a client mistake that should be answered with 400.
type inputError struct {
	msg string
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func NewSession(c *gin.Context, up Uploads) *AnalysisSession {
	return &AnalysisSession{ID: uuid.NewString(), up: up, c: c}
}

// Acquire saves the upload in form field `field` and returns its scratch
// path together with the client's file name.
func (s *AnalysisSession) Acquire(field, ext string) (path, name string, err error) {
	fh, err := s.c.FormFile(field)
	if err != nil {
		return "", "", fmt.Errorf("%w: form field %q", errMissingFile, field)
	}
	path, err = s.up.Store.Save(fh, ext, s.up.MaxSize)
	if err != nil {
		return "", "", err
	}
	s.paths = append(s.paths, path)
	return path, filepath.Base(fh.Filename), nil
}

// OpenModel acquires and parses an IFC upload.
func (s *AnalysisSession) OpenModel(ctx context.Context, field string) (*ifc.Model, string, error) {
	path, name, err := s.Acquire(field, ".ifc")
	if err != nil {
		return nil, "", err
	}
	model, err := ifc.OpenContext(ctx, path)
	if err != nil {
		return nil, name, fmt.Errorf("parsing %s: %w", name, err)
	}
	return model, name, nil
}

// OpenSheet acquires and loads a spreadsheet upload.
func (s *AnalysisSession) OpenSheet(field string) (*models.Sheet, string, error) {
	path, name, err := s.Acquire(field, ".xlsx")
	if err != nil {
		return nil, "", err
	}
	sheet, err := repository.ReadSheet(path)
	if err != nil {
		return nil, name, &inputError{msg: "Invalid Excel file", err: fmt.Errorf("reading %s: %w", name, err)}
	}
	return sheet, name, nil
}

func (s *AnalysisSession) Close() {
	for _, p := range s.paths {
		if err := s.up.Store.Remove(p); err != nil {
			log.Printf("session %s: %v", s.ID, err)
		}
	}
	s.paths = nil
}

// fail maps pipeline errors to HTTP statuses and writes the error body.
func fail(c *gin.Context, err error) {
	var parseErr *ifc.ParseError
	var structErr *ifc.StructureError
	var inErr *inputError
	switch {
	case errors.Is(err, errMissingFile):
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to upload file", err)
	case errors.Is(err, storage.ErrWrongExtension), errors.Is(err, storage.ErrInvalidFileName):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file", err)
	case errors.Is(err, storage.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "File size exceeds the allowed limit", err)
	case errors.As(err, &parseErr):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid IFC file", err)
	case errors.As(err, &inErr):
		utils.ErrorResponse(c, http.StatusBadRequest, inErr.msg, err)
	case errors.As(err, &structErr):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Malformed model structure", err)
	case errors.Is(err, services.ErrEmptyChart):
		utils.ErrorResponse(c, http.StatusBadRequest, "Nothing to chart", err)
	case errors.Is(err, context.DeadlineExceeded):
		utils.ErrorResponse(c, http.StatusGatewayTimeout, "Analysis timed out", err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
