package handler

import (
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/dto"
	"hsc-mapper/internal/logger"
	"hsc-mapper/internal/service"
	"hsc-mapper/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MappingHandler handles the syllabus mapping dev routes
type MappingHandler struct {
	service   service.MappingService
	validator *validation.Validator
}

// NewMappingHandler creates a new MappingHandler instance
func NewMappingHandler(service service.MappingService, validator *validation.Validator) *MappingHandler {
	return &MappingHandler{
		service:   service,
		validator: validator,
	}
}

// MapSyllabusDotPoints godoc
// @Summary Classify a question set against the syllabus taxonomy
// @Description Runs the three-stage LLM classification workflow over the selected question set and persists the results per record. With workflow_test_input set, runs one ad-hoc classification instead and returns the intermediate model outputs.
// @Tags dev
// @Accept json
// @Produce json
// @Param request body dto.MapSyllabusRequest true "Batch selector and options"
// @Success 200 {object} dto.MapSyllabusResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /dev/map-syllabus-dot-points [post]
func (h *MappingHandler) MapSyllabusDotPoints(c *fiber.Ctx) error {
	var req dto.MapSyllabusRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}

	if errs := h.validator.ValidateMapSyllabusRequest(&req); len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Syllabus mapping requested",
		zap.String("grade", req.Grade),
		zap.String("subject", req.Subject),
		zap.String("school", req.School),
		zap.Bool("test_mode", req.WorkflowTestInput != ""),
	)

	batchResp, testResp, err := h.service.MapSyllabusDotPoints(c.Context(), &req)
	if err != nil {
		return err
	}
	if testResp != nil {
		return c.JSON(testResp)
	}
	return c.JSON(batchResp)
}

// GetTopicTree godoc
// @Summary List the taxonomy topic tree
// @Description Returns the ordered topics and subtopics for a grade and subject.
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param grade query string true "Grade"
// @Param subject query string true "Subject"
// @Success 200 {object} dto.TopicTreeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /taxonomy/topics [get]
func (h *MappingHandler) GetTopicTree(c *fiber.Ctx) error {
	grade := c.Query("grade")
	subject := c.Query("subject")

	if errs := h.validator.ValidateTopicTreeQuery(grade, subject); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetTopicTree(c.Context(), grade, subject)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
