package utils

import (
	"context"
	"time"
)

// DefaultAnalysisTimeout bounds parsing and extraction of one upload.
const DefaultAnalysisTimeout = 2 * time.Minute

// ReportTimeout is for requests that also rasterize charts and build a PDF.
const ReportTimeout = 5 * time.Minute

// GetAnalysisContext returns a context with timeout for model analysis.
// A nil parent falls back to context.Background.
func GetAnalysisContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

func GetDefaultAnalysisContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetAnalysisContext(parentCtx, DefaultAnalysisTimeout)
}

func GetReportContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetAnalysisContext(parentCtx, ReportTimeout)
}
