package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quantos/internal/models"
)

// CodeGenerator is the collaborator contract for AI-assisted strategy
// authoring.
type CodeGenerator interface {
	GenerateStrategyCode(ctx context.Context, description string) (string, error)
}

const defaultStrategyTemplate = `# Momentum Alpha Strategy
import backtrader as bt

class MyStrategy(bt.Strategy):
    def next(self):
        if self.data.close[0] > self.data.sma[0]:
            self.buy()
        elif self.data.close[0] < self.data.sma[0]:
            self.sell()`

// StrategyService holds the single active strategy the dashboard edits and
// backtests.
type StrategyService struct {
	mu        sync.RWMutex
	strategy  models.Strategy
	generator CodeGenerator
}

func NewStrategyService(generator CodeGenerator) *StrategyService {
	return &StrategyService{
		strategy: models.Strategy{
			ID:         uuid.NewString(),
			Name:       "Momentum Alpha",
			Code:       defaultStrategyTemplate,
			LastEdited: time.Now(),
			Tags:       []string{"Momentum", "Trend"},
		},
		generator: generator,
	}
}

// Strategy returns a copy of the active strategy.
func (s *StrategyService) Strategy() models.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// UpdateCode replaces the strategy source and refreshes the edit timestamp.
func (s *StrategyService) UpdateCode(code string) models.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.strategy.Code = code
	s.strategy.LastEdited = time.Now()
	return s.copyLocked()
}

// GenerateCode asks the collaborator for new strategy source and applies it
// on success. Collaborator error kinds (ErrNotConfigured,
// ErrGenerationFailed) pass through to the caller untouched.
func (s *StrategyService) GenerateCode(ctx context.Context, description string) (models.Strategy, error) {
	code, err := s.generator.GenerateStrategyCode(ctx, description)
	if err != nil {
		return models.Strategy{}, err
	}
	return s.UpdateCode(code), nil
}

func (s *StrategyService) copyLocked() models.Strategy {
	cp := s.strategy
	cp.Tags = append([]string(nil), s.strategy.Tags...)
	return cp
}
