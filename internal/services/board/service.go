package board

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/sequencegame/internal/model"
)

// Service keeps the named layouts games can be played on
type Service struct {
	mu      sync.RWMutex
	layouts map[string]Layout
	logger  *slog.Logger
}

// New creates a new board service with the standard layout registered
func New(logger *slog.Logger) *Service {
	return &Service{
		layouts: map[string]Layout{StandardLayoutName: StandardLayout()},
		logger:  logger.With(slog.String("component", "board-service")),
	}
}

// Register validates and stores a variant layout under the given name
func (s *Service) Register(name string, layout Layout) error {
	if name == "" {
		return fmt.Errorf("%w: layout name is required", model.ErrInvalidArgument)
	}
	if _, err := FromLayout(layout); err != nil {
		return err
	}

	s.mu.Lock()
	s.layouts[name] = layout.Clone()
	s.mu.Unlock()

	s.logger.Info("layout registered",
		slog.String("layout", name),
		slog.Int("height", len(layout)),
		slog.Int("width", len(layout[0])),
	)
	return nil
}

// Create builds a fresh, empty board from a registered layout. An empty
// name selects the standard layout.
func (s *Service) Create(name string) (*model.Board, error) {
	if name == "" {
		name = StandardLayoutName
	}

	s.mu.RLock()
	layout, ok := s.layouts[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown layout %q", model.ErrInvalidLayout, name)
	}
	return FromLayout(layout)
}

// Layouts returns the registered layout names, sorted
func (s *Service) Layouts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render draws a board as text
func (s *Service) Render(b *model.Board) string {
	return Render(b)
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(name string, layout Layout) error
	Create(name string) (*model.Board, error)
	Layouts() []string
	Render(b *model.Board) string
}

var _ ServiceInterface = (*Service)(nil)
