package utils

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"ifcdash/models"
)

// ErrorResponse writes the standard error body and logs it with the route.
func ErrorResponse(c *gin.Context, code int, message string, err error) {
	body := models.ErrorResponse{Error: message}
	if err != nil {
		body.Details = err.Error()
		log.Printf("%s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
	}
	c.AbortWithStatusJSON(code, body)
}

// SplitList parses a comma separated form value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormList reads a multi-valued form field. Each value may itself be a
// comma separated list.
func FormList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.PostFormArray(key) {
		out = append(out, SplitList(v)...)
	}
	return out
}
