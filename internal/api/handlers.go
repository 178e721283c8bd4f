package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/analyzer"
	"github.com/spigell/skillgap/internal/extract"
)

type uploadResponse struct {
	*analyzer.Report
	FileKind string `json:"file_kind"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

func (s *Server) handleRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"roles":  s.service.Roles(),
		"labels": s.service.Labels(),
	})
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req analyzer.Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	report, err := s.service.Analyze(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "resume file is required")
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to open resume file")
	}
	defer file.Close()

	text, kind, err := extract.Read(header.Filename, file)
	switch {
	case errors.Is(err, extract.ErrNoText):
		s.logger.Info("no text extracted from upload, analyzing empty resume",
			zap.String("file", header.Filename),
			zap.Stringer("kind", kind),
		)
	case err != nil:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report, err := s.service.Analyze(c.UserContext(), analyzer.Request{
		Resume:         text,
		JobDescription: c.FormValue("job_description"),
		TargetRole:     c.FormValue("target_role"),
	})
	if err != nil {
		return err
	}

	return c.JSON(uploadResponse{Report: report, FileKind: kind.String()})
}
