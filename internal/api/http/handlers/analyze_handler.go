package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/analysis"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/dto"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/observability"
)

// AnalyzeHandler proxies ticket submissions to the AI-analysis webhook.
type AnalyzeHandler struct {
	analyzer analysis.Analyzer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewAnalyzeHandler constructs handler.
func NewAnalyzeHandler(analyzer analysis.Analyzer, metrics *observability.Metrics, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, metrics: metrics, logger: logger}
}

// Analyze POST /api/analyze-ticket. The webhook's JSON body is returned
// verbatim; any failure collapses to the fixed error object. No retry,
// no validation of the reply shape.
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeTicketRequest
	if err := c.BodyParser(&req); err != nil {
		h.metrics.RecordAnalyzeCall("bad_request")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to analyze ticket"})
	}

	resp, err := h.analyzer.Analyze(c.UserContext(), analysis.Request{
		Ticket:     req.Ticket,
		CustomerID: req.CustomerID,
		Subject:    req.Subject,
	})
	if err != nil {
		h.logger.Warn("analyze proxy failed", zap.Error(err))
		h.metrics.RecordAnalyzeCall("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to analyze ticket"})
	}

	h.metrics.RecordAnalyzeCall("ok")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(resp.Raw)
}
