package main

import (
	"context"
	"flag"
	"fmt"

	"hsc-mapper/internal/adapter"
	"hsc-mapper/internal/adapter/completion"
	"hsc-mapper/internal/cache"
	"hsc-mapper/internal/classifier"
	"hsc-mapper/internal/config"
	"hsc-mapper/internal/database"
	"hsc-mapper/internal/domain"
	"hsc-mapper/internal/dto"
	"hsc-mapper/internal/logger"
	"hsc-mapper/internal/repository"
	"hsc-mapper/internal/service"

	"go.uber.org/zap"
)

// Operator-triggered batch runner: classifies one question set from the
// command line without going through the HTTP surface.
func main() {
	grade := flag.String("grade", "12", "grade of the question set")
	subject := flag.String("subject", "", "subject of the question set")
	school := flag.String("school", "", "school of the question set")
	year := flag.Int("year", 0, "exam year (0 = all years)")
	onlyUnmapped := flag.Bool("only-unmapped", true, "skip records that already have a mapping")
	includeDebug := flag.Bool("debug", false, "capture debug traces for all records")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Syllabus mapping batch starting up...")

	if *subject == "" || *school == "" {
		appLogger.Fatal("Both -subject and -school are required")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	taxonomyRepo := repository.NewTaxonomyDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis client", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}
	taxonomyProvider := service.NewTaxonomyCacheService(cacheAdapter, taxonomyRepo, cfg)

	var completer domain.TextCompleter
	switch cfg.LLM.Source {
	case "openai":
		completer, err = completion.NewOpenAICompleter(cfg.LLM)
	default:
		completer, err = completion.NewOllamaCompleter(cfg.LLM)
	}
	if err != nil {
		appLogger.Fatal("Failed to create completer", zap.Error(err))
	}

	mappingService := service.NewMappingService(
		taxonomyProvider,
		questionRepo,
		classifier.NewStage("topic classifier", completer),
		classifier.NewStage("subtopic classifier", completer),
		classifier.NewDotPointMapper(completer),
		cfg,
		appLogger,
	)

	req := &dto.MapSyllabusRequest{
		Grade:        *grade,
		Subject:      *subject,
		School:       *school,
		Year:         *year,
		OnlyUnmapped: onlyUnmapped,
		IncludeDebug: *includeDebug,
	}

	resp, _, err := mappingService.MapSyllabusDotPoints(context.Background(), req)
	if err != nil {
		appLogger.Fatal("Batch failed", zap.Error(err))
	}

	appLogger.Info("Batch finished",
		zap.Int("total_exam", resp.Totals.TotalExam),
		zap.Int("eligible", resp.Totals.Eligible),
		zap.Int("already_mapped", resp.Totals.AlreadyMapped),
		zap.Int("updated", resp.Totals.Updated),
		zap.Int("skipped", resp.Totals.Skipped),
		zap.Int("failed", resp.Totals.Failed),
	)
	for _, failure := range resp.Failures {
		appLogger.Warn("Failed question",
			zap.String("question_id", failure.QuestionID),
			zap.String("question_number", failure.QuestionNumber),
			zap.String("reason", failure.Reason),
		)
	}
}
