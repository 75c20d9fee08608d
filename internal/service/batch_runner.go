package service

import (
	"context"
	"fmt"
	"strings"

	"hsc-mapper/internal/domain"

	"go.uber.org/zap"
)

type recordStatus int

const (
	recordUpdated recordStatus = iota
	recordSkipped
	recordFailed
)

// recordResult is the explicit per-record outcome of the pipeline. Collecting
// these instead of letting errors escape the loop is what enforces the
// "one record's failure must never abort the batch" invariant structurally.
type recordResult struct {
	status   recordStatus
	reason   string
	workflow *domain.WorkflowResult
}

// runBatch applies the workflow across the question set sequentially, in
// input order. Model calls go to a shared rate-limited upstream, and batches
// run as operator-triggered background jobs, so there is deliberately no
// fan-out here.
func (s *mappingService) runBatch(ctx context.Context, questions []domain.QuestionRecord, idx *domain.TaxonomyIndex, onlyUnmapped, includeDebug bool) *domain.BatchOutcome {
	outcome := &domain.BatchOutcome{TotalExam: len(questions)}

	var eligible []domain.QuestionRecord
	for _, q := range questions {
		if onlyUnmapped && q.Mapped() {
			continue
		}
		eligible = append(eligible, q)
	}
	outcome.Eligible = len(eligible)
	if onlyUnmapped {
		outcome.AlreadyMapped = outcome.TotalExam - outcome.Eligible
	}

	s.logger.Info("Starting syllabus mapping batch",
		zap.Int("total", outcome.TotalExam),
		zap.Int("eligible", outcome.Eligible),
		zap.Bool("only_unmapped", onlyUnmapped))

	for i, question := range eligible {
		result := s.processRecord(ctx, &question, idx)

		switch result.status {
		case recordUpdated:
			outcome.Updated++
		case recordSkipped:
			outcome.Skipped++
		case recordFailed:
			outcome.Failed++
			if len(outcome.Failures) < s.cfg.Mapping.FailureListCap {
				outcome.Failures = append(outcome.Failures, domain.MappingFailure{
					QuestionID:     question.ID,
					QuestionNumber: question.QuestionNumber,
					Reason:         result.reason,
				})
			}
			s.logger.Warn("Question mapping failed",
				zap.String("question_id", question.ID),
				zap.String("reason", result.reason))
		}

		if includeDebug || i < s.cfg.Mapping.DebugTraceCap {
			outcome.DebugTraces = append(outcome.DebugTraces, buildDebugTrace(&question, result))
		}
	}

	s.logger.Info("Syllabus mapping batch finished",
		zap.Int("updated", outcome.Updated),
		zap.Int("skipped", outcome.Skipped),
		zap.Int("failed", outcome.Failed))

	return outcome
}

// processRecord runs one question end to end: classify, bound-check the
// returned indices against the actual candidate list, persist. Every exit is
// a recordResult; a panic in a stage is converted to a failed result at this
// boundary rather than escaping the batch loop.
func (s *mappingService) processRecord(ctx context.Context, question *domain.QuestionRecord, idx *domain.TaxonomyIndex) (result recordResult) {
	defer func() {
		if r := recover(); r != nil {
			result = recordResult{status: recordFailed, reason: fmt.Sprintf("unexpected error: %v", r)}
		}
	}()

	if strings.TrimSpace(question.QuestionText) == "" {
		return recordResult{status: recordSkipped, reason: "empty question text"}
	}

	// On failure the workflow still carries the raw text of the stages that
	// ran, so the failed record's debug trace keeps the model output.
	workflow, err := s.runWorkflow(ctx, question.QuestionText, idx)
	if err != nil {
		return recordResult{status: recordFailed, reason: err.Error(), workflow: workflow}
	}

	// Deferred bound enforcement: the mapper's indices are only meaningful
	// against the candidate list for the final (topic, subtopic) pair.
	rows := idx.DotPointsFor(workflow.Topic, workflow.Subtopic)
	var selected []domain.TaxonomyRow
	for _, index := range workflow.Specialist.DotPointIndices {
		if index < len(rows) {
			selected = append(selected, rows[index])
		}
	}
	if len(selected) == 0 {
		return recordResult{
			status:   recordSkipped,
			reason:   "no valid dot point indices returned",
			workflow: workflow,
		}
	}

	if err := s.questionRepo.UpdateQuestionTopic(ctx, question.ID, workflow.Topic); err != nil {
		return recordResult{
			status:   recordFailed,
			reason:   fmt.Sprintf("DB topic update failed: %v", err),
			workflow: workflow,
		}
	}
	if err := s.questionRepo.UpdateQuestionSubtopicAndDotPoint(ctx, question.ID, workflow.Subtopic, joinDotPointContent(selected)); err != nil {
		return recordResult{
			status:   recordFailed,
			reason:   fmt.Sprintf("DB subtopic/dot point update failed: %v", err),
			workflow: workflow,
		}
	}

	return recordResult{status: recordUpdated, workflow: workflow}
}

// joinDotPointContent concatenates the selected dot points' content with the
// fixed separator, deduplicating repeated content.
func joinDotPointContent(rows []domain.TaxonomyRow) string {
	seen := make(map[string]struct{}, len(rows))
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Content]; ok {
			continue
		}
		seen[row.Content] = struct{}{}
		parts = append(parts, row.Content)
	}
	return strings.Join(parts, dotPointSeparator)
}

func buildDebugTrace(question *domain.QuestionRecord, result recordResult) domain.DebugTrace {
	trace := domain.DebugTrace{
		QuestionID:     question.ID,
		QuestionNumber: question.QuestionNumber,
		Reason:         result.reason,
	}
	switch result.status {
	case recordUpdated:
		trace.Outcome = "updated"
	case recordSkipped:
		trace.Outcome = "skipped"
	case recordFailed:
		trace.Outcome = "failed"
	}
	if result.workflow != nil {
		trace.TopicRaw = result.workflow.TopicRaw
		trace.SubtopicRaw = result.workflow.SubtopicRaw
		trace.SpecialistRaw = result.workflow.SpecialistRaw
		// A normalized specialist always has a non-empty topic; a zero value
		// means that stage never produced a parse.
		if result.workflow.Specialist.Topic != "" {
			parsed := result.workflow.Specialist
			trace.Parsed = &parsed
		}
	}
	return trace
}
