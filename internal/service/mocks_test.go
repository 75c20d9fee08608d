package service

import (
	"context"
	"time"

	"hsc-mapper/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTaxonomyProvider ---

type MockTaxonomyProvider struct {
	mock.Mock
}

func (m *MockTaxonomyProvider) GetDotPoints(ctx context.Context, grades []string, subject string) ([]domain.TaxonomyRow, error) {
	args := m.Called(ctx, grades, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxonomyRow), args.Error(1)
}

// --- MockTaxonomyRepository ---

type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) GetDotPoints(ctx context.Context, grades []string, subject string) ([]domain.TaxonomyRow, error) {
	args := m.Called(ctx, grades, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxonomyRow), args.Error(1)
}

// --- MockQuestionRepository ---

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetQuestions(ctx context.Context, grade string, year int, subject, school string) ([]domain.QuestionRecord, error) {
	args := m.Called(ctx, grade, year, subject, school)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRecord), args.Error(1)
}

func (m *MockQuestionRepository) UpdateQuestionTopic(ctx context.Context, id, topic string) error {
	args := m.Called(ctx, id, topic)
	return args.Error(0)
}

func (m *MockQuestionRepository) UpdateQuestionSubtopicAndDotPoint(ctx context.Context, id, subtopic, dotPointText string) error {
	args := m.Called(ctx, id, subtopic, dotPointText)
	return args.Error(0)
}

// --- MockClassifier ---

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, questionText string, candidates []string) (string, string, error) {
	args := m.Called(ctx, questionText, candidates)
	return args.String(0), args.String(1), args.Error(2)
}

// --- MockDotPointSelector ---

type MockDotPointSelector struct {
	mock.Mock
}

func (m *MockDotPointSelector) MapDotPoints(ctx context.Context, questionText, topic, subtopic string, candidates []domain.TaxonomyRow) (*domain.SpecialistOutput, string, error) {
	args := m.Called(ctx, questionText, topic, subtopic, candidates)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.SpecialistOutput), args.String(1), args.Error(2)
}

// --- MockCache ---

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
