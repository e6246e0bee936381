// Package catalog keeps the storefront menu: the latest simplified iiko
// nomenclature, refreshed by a single periodic poll loop, with a static
// menu file as fallback.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/leademy-studio/shusha-rest/internal/domain"
	"github.com/leademy-studio/shusha-rest/internal/iiko"
)

// ErrMenuUnavailable is returned when neither iiko nor the static fallback
// can produce a menu.
var ErrMenuUnavailable = errors.New("menu not available")

// MenuSource is the slice of the iiko client the service consumes.
type MenuSource interface {
	AccessToken(ctx context.Context) (string, error)
	Organizations(ctx context.Context, token string) ([]iiko.Organization, error)
	TerminalGroups(ctx context.Context, token string, organizationIDs []string) ([]iiko.TerminalGroup, error)
	Nomenclature(ctx context.Context, token, organizationID string) (*iiko.Nomenclature, error)
}

// Menu is the catalog payload served to the storefront.
type Menu struct {
	Items           []domain.Product `json:"items"`
	OrganizationID  string           `json:"organizationId,omitempty"`
	TerminalGroupID string           `json:"terminalGroupId,omitempty"`
}

// Service caches the latest good menu. A nil source means the service runs
// on the static menu only.
type Service struct {
	mu         sync.RWMutex
	menu       *Menu
	source     MenuSource
	staticPath string
	logger     *log.Logger
}

// New builds the service. staticPath may be empty when no fallback file is
// shipped.
func New(source MenuSource, staticPath string, logger *log.Logger) *Service {
	return &Service{source: source, staticPath: staticPath, logger: logger}
}

// Menu returns the cached menu, refreshing on demand when nothing is cached
// yet.
func (s *Service) Menu(ctx context.Context) (*Menu, error) {
	s.mu.RLock()
	menu := s.menu
	s.mu.RUnlock()
	if menu != nil {
		return menu, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu, nil
}

// Ready reports whether a menu has been cached.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu != nil
}

// Refresh fetches the live menu. When iiko is unavailable the last good
// menu keeps serving; only an empty cache falls back to the static file.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source != nil {
		menu, err := s.fetchLive(ctx)
		if err == nil {
			s.mu.Lock()
			s.menu = menu
			s.mu.Unlock()
			return nil
		}
		s.logger.Printf("iiko unavailable, falling back to static menu: %v", err)
	}

	s.mu.RLock()
	cached := s.menu != nil
	s.mu.RUnlock()
	if cached {
		return nil
	}

	menu, err := s.loadStatic()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.menu = menu
	s.mu.Unlock()
	return nil
}

// Run is the periodic poll loop. It refreshes once immediately and then on
// every tick until the context is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Printf("initial menu refresh: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Printf("menu refresh: %v", err)
			}
		}
	}
}

func (s *Service) fetchLive(ctx context.Context) (*Menu, error) {
	token, err := s.source.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}
	orgs, err := s.source.Organizations(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("organizations: %w", err)
	}
	if len(orgs) == 0 {
		return nil, errors.New("no organizations for api login")
	}
	organizationID := orgs[0].ID

	groups, err := s.source.TerminalGroups(ctx, token, []string{organizationID})
	if err != nil {
		return nil, fmt.Errorf("terminal groups: %w", err)
	}
	terminalGroupID := ""
	for _, g := range groups {
		if g.IsActive {
			terminalGroupID = g.ID
			break
		}
	}
	if terminalGroupID == "" && len(groups) > 0 {
		terminalGroupID = groups[0].ID
	}
	if terminalGroupID == "" {
		return nil, errors.New("no terminal groups for organization")
	}

	nom, err := s.source.Nomenclature(ctx, token, organizationID)
	if err != nil {
		return nil, fmt.Errorf("nomenclature: %w", err)
	}

	return &Menu{
		Items:           iiko.Simplify(nom, organizationID),
		OrganizationID:  organizationID,
		TerminalGroupID: terminalGroupID,
	}, nil
}

func (s *Service) loadStatic() (*Menu, error) {
	if s.staticPath == "" {
		return nil, ErrMenuUnavailable
	}
	data, err := os.ReadFile(s.staticPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read static menu: %v", ErrMenuUnavailable, err)
	}
	var menu Menu
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("%w: decode static menu: %v", ErrMenuUnavailable, err)
	}
	return &menu, nil
}
