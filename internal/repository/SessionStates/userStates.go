package SessionStates

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/chenders/deadonfilm/internal/domain"
)

type SessionStates struct {
	states map[int64]*domain.SessionState
	mu     sync.RWMutex
}

func NewSessionStates() *SessionStates {
	states := make(map[int64]*domain.SessionState)
	return &SessionStates{
		states: states,
		mu:     sync.RWMutex{},
	}
}

func (s *SessionStates) GetCurrentStatesID(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	states := make([]int64, 0, 32)

	for k, v := range s.states {
		if v != nil {
			states = append(states, k)
		}
	}
	return states
}

// GetStateByID creates the state on first access, so it needs the write lock.
func (s *SessionStates) GetStateByID(ctx context.Context, chatID int64) *domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[chatID]; !ok {
		s.states[chatID] = &domain.SessionState{
			CorrelationID:     generateCorrelationID(),
			SentMediaMessages: []int{},
			PendingActors:     []domain.PhotoData{},
		}
	}
	return s.states[chatID]
}

func (s *SessionStates) ResetUserState(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

func (s *SessionStates) GetCorrelationID(ctx context.Context, chatID int64) string {
	return s.GetStateByID(ctx, chatID).CorrelationID
}

func generateCorrelationID() string {
	return uuid.New().String()
}

func (s *SessionStates) SetState(ctx context.Context, chatID int64, state *domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = state
	return nil
}
