package sale

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/posting"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

// Service provides business operations for sale documents.
type Service struct {
	repo      Repository
	engine    *posting.Engine
	numerator numerator.Generator
	hooks     *domain.HookRegistry[*Sale]
}

// NewService creates a new sale service.
func NewService(repo Repository, engine *posting.Engine, num numerator.Generator) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		numerator: num,
		hooks:     domain.NewHookRegistry[*Sale](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Sale] {
	return s.hooks
}

// Commit validates the document and commits it atomically: header,
// lines, and all stock decreases land together or not at all. A line
// that asks for more than is on hand aborts the whole document with an
// insufficient-stock error naming the available quantity.
func (s *Service) Commit(ctx context.Context, doc *Sale) (*Sale, error) {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	if doc.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SAL"), time.Now())
		if err != nil {
			return nil, fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	total, err := s.engine.Post(ctx, posting.Doc{
		ID:           doc.ID,
		RecorderType: DocumentType,
		Direction:    entity.DirectionDecrease,
		Date:         doc.Date,
		Lines:        doc.PostingLines(),
		Persist: func(ctx context.Context) error {
			if err := s.repo.Create(ctx, doc); err != nil {
				return fmt.Errorf("create document: %w", err)
			}
			if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
				return fmt.Errorf("save lines: %w", err)
			}
			return nil
		},
		SetTotal: func(ctx context.Context, total types.Money) error {
			return s.repo.SetTotal(ctx, doc.ID, total)
		},
	})
	if err != nil {
		return nil, err
	}
	doc.Total = total

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	return s.GetByID(ctx, doc.ID)
}

// GetByID retrieves a sale with lines and display names.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
