package service

import (
	"context"
	"fmt"

	"hsc-mapper/internal/config"
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/dto"
	"hsc-mapper/internal/llmparse"
	"hsc-mapper/internal/taxonomy"
	"hsc-mapper/internal/util"

	"go.uber.org/zap"
)

// dotPointSeparator joins the content of multiple selected dot points into
// the single dot_point column value.
const dotPointSeparator = " || "

// CategoryClassifier is one classification stage (topic-level or
// subtopic-level): one round-trip, allow-list-matched category plus raw text.
type CategoryClassifier interface {
	Classify(ctx context.Context, questionText string, candidates []string) (string, string, error)
}

// DotPointSelector is the dot point mapping stage.
type DotPointSelector interface {
	MapDotPoints(ctx context.Context, questionText, topic, subtopic string, candidates []domain.TaxonomyRow) (*domain.SpecialistOutput, string, error)
}

// MappingService runs the syllabus dot point classification workflow.
type MappingService interface {
	// MapSyllabusDotPoints runs a batch over the selected question set, or a
	// single ad-hoc workflow when the request carries a test input.
	MapSyllabusDotPoints(ctx context.Context, req *dto.MapSyllabusRequest) (*dto.MapSyllabusResponse, *dto.WorkflowTestResponse, error)

	// GetTopicTree returns the taxonomy index's topic/subtopic tree for a
	// selector, for operator inspection.
	GetTopicTree(ctx context.Context, grade, subject string) (*dto.TopicTreeResponse, error)
}

type mappingService struct {
	taxonomyProvider TaxonomyProvider
	questionRepo     domain.QuestionRepository
	topicStage       CategoryClassifier
	subtopicStage    CategoryClassifier
	dotPointMapper   DotPointSelector
	cfg              *config.Config
	logger           *zap.Logger
}

// NewMappingService creates a new instance of mappingService.
func NewMappingService(
	taxonomyProvider TaxonomyProvider,
	questionRepo domain.QuestionRepository,
	topicStage CategoryClassifier,
	subtopicStage CategoryClassifier,
	dotPointMapper DotPointSelector,
	cfg *config.Config,
	logger *zap.Logger,
) MappingService {
	return &mappingService{
		taxonomyProvider: taxonomyProvider,
		questionRepo:     questionRepo,
		topicStage:       topicStage,
		subtopicStage:    subtopicStage,
		dotPointMapper:   dotPointMapper,
		cfg:              cfg,
		logger:           logger,
	}
}

// gradesForSelector expands a grade selector into the grades whose syllabus
// content the exam assesses: HSC (year 12) papers examine year 11 content too.
func gradesForSelector(grade string) []string {
	if grade == "12" {
		return []string{"11", "12"}
	}
	return []string{grade}
}

// buildIndexForSelector loads the taxonomy rows for a selector and builds the
// per-request index. Missing rows are a NOT_FOUND condition, distinct from a
// taxonomy that exists but is unusable (CONFIGURATION_ERROR from BuildIndex).
func (s *mappingService) buildIndexForSelector(ctx context.Context, grade, subject string) (*domain.TaxonomyIndex, error) {
	rows, err := s.taxonomyProvider.GetDotPoints(ctx, gradesForSelector(grade), subject)
	if err != nil {
		return nil, domain.NewInternalError("failed to load taxonomy rows", err)
	}
	if len(rows) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("no syllabus dot points for grade %q subject %q", grade, subject))
	}
	return taxonomy.BuildIndex(rows)
}

func (s *mappingService) MapSyllabusDotPoints(ctx context.Context, req *dto.MapSyllabusRequest) (*dto.MapSyllabusResponse, *dto.WorkflowTestResponse, error) {
	idx, err := s.buildIndexForSelector(ctx, req.Grade, req.Subject)
	if err != nil {
		return nil, nil, err
	}

	// Fast-fail for the whole batch; no point attempting any record against
	// an empty topic list.
	if len(idx.Topics) == 0 {
		return nil, nil, domain.NewNoTopicsAvailableError()
	}

	if req.WorkflowTestInput != "" {
		testResp, err := s.runWorkflowTest(ctx, req.WorkflowTestInput, idx)
		return nil, testResp, err
	}

	questions, err := s.questionRepo.GetQuestions(ctx, req.Grade, req.Year, req.Subject, req.School)
	if err != nil {
		return nil, nil, domain.NewInternalError("failed to load question set", err)
	}

	outcome := s.runBatch(ctx, questions, idx, req.OnlyUnmappedOrDefault(), req.IncludeDebug)

	return &dto.MapSyllabusResponse{
		Success: true,
		Grade:   req.Grade,
		Subject: req.Subject,
		School:  req.School,
		Totals: dto.BatchTotals{
			TotalExam:     outcome.TotalExam,
			Eligible:      outcome.Eligible,
			AlreadyMapped: outcome.AlreadyMapped,
			Updated:       outcome.Updated,
			Skipped:       outcome.Skipped,
			Failed:        outcome.Failed,
		},
		Failures:          outcome.Failures,
		DebugModelOutputs: outcome.DebugTraces,
	}, nil, nil
}

func (s *mappingService) GetTopicTree(ctx context.Context, grade, subject string) (*dto.TopicTreeResponse, error) {
	idx, err := s.buildIndexForSelector(ctx, grade, subject)
	if err != nil {
		return nil, err
	}

	resp := &dto.TopicTreeResponse{Grade: grade, Subject: subject}
	for _, topic := range idx.Topics {
		resp.Topics = append(resp.Topics, dto.TopicEntry{
			Topic:     topic,
			Subtopics: idx.SubtopicsFor(topic),
		})
	}
	return resp, nil
}

// runWorkflow executes the three-stage state machine for one question: main
// topic, then subtopic, then dot points, then subtopic reconciliation. All
// three model calls share one trace id. On failure the partially-filled
// result is returned alongside the error: the stages hand their raw model
// text back even when they fail, and the debug trace of a failed record has
// to carry the failing stage's output.
func (s *mappingService) runWorkflow(ctx context.Context, questionText string, idx *domain.TaxonomyIndex) (*domain.WorkflowResult, error) {
	traceID := util.NewULID()
	log := s.logger.With(zap.String("trace_id", traceID))

	result := &domain.WorkflowResult{}

	if len(idx.Topics) == 0 {
		return result, domain.NewNoTopicsAvailableError()
	}

	topic, topicRaw, err := s.topicStage.Classify(ctx, questionText, idx.Topics)
	result.TopicRaw = topicRaw
	if err != nil {
		return result, err
	}
	result.Topic = topic
	log.Debug("Selected topic", zap.String("topic", topic))

	subtopics := idx.SubtopicsFor(topic)
	if len(subtopics) == 0 {
		return result, domain.NewNoSubtopicsForTopicError(topic)
	}

	subtopic, subtopicRaw, err := s.subtopicStage.Classify(ctx, questionText, subtopics)
	result.SubtopicRaw = subtopicRaw
	if err != nil {
		return result, err
	}
	result.Subtopic = subtopic
	log.Debug("Selected subtopic", zap.String("subtopic", subtopic))

	rows := idx.DotPointsFor(topic, subtopic)
	if len(rows) == 0 {
		return result, domain.NewNoDotPointsForSubtopicError(topic, subtopic)
	}

	specialist, specialistRaw, err := s.dotPointMapper.MapDotPoints(ctx, questionText, topic, subtopic, rows)
	result.SpecialistRaw = specialistRaw
	if err != nil {
		return result, err
	}
	result.Specialist = *specialist

	// The mapper saw the actual dot point content, so its echoed subtopic is
	// allowed to refine the stage-2 choice when it resolves against the same
	// allow-list. An unmatched echo never corrupts the result.
	if echoed := llmparse.MatchAllowed(specialist.Subtopic, subtopics); echoed != "" {
		if echoed != subtopic {
			log.Info("Specialist echo refined subtopic",
				zap.String("from", subtopic), zap.String("to", echoed))
		}
		result.Subtopic = echoed
	} else {
		log.Warn("Specialist subtopic echo did not match allow-list, keeping classifier choice",
			zap.String("echoed", specialist.Subtopic), zap.String("kept", subtopic))
	}

	return result, nil
}

func (s *mappingService) runWorkflowTest(ctx context.Context, questionText string, idx *domain.TaxonomyIndex) (*dto.WorkflowTestResponse, error) {
	result, err := s.runWorkflow(ctx, questionText, idx)
	if err != nil {
		return nil, err
	}

	rows := idx.DotPointsFor(result.Topic, result.Subtopic)
	preview := make([]dto.MappingPreviewEntry, 0, len(result.Specialist.DotPointIndices))
	for _, index := range result.Specialist.DotPointIndices {
		if index >= len(rows) {
			continue
		}
		preview = append(preview, dto.MappingPreviewEntry{
			Index:      index,
			DotPointID: rows[index].ID,
			Content:    rows[index].Content,
		})
	}

	return &dto.WorkflowTestResponse{
		Success:       true,
		Topic:         result.Topic,
		Subtopic:      result.Subtopic,
		TopicRaw:      result.TopicRaw,
		SubtopicRaw:   result.SubtopicRaw,
		SpecialistRaw: result.SpecialistRaw,
		Parsed: dto.SpecialistOutputDTO{
			Topic:           result.Specialist.Topic,
			Subtopic:        result.Specialist.Subtopic,
			DotPointIndices: result.Specialist.DotPointIndices,
		},
		MappingPreview: preview,
	}, nil
}
