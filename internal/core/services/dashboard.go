package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driving"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// Ensure DashboardService implements the interface.
var _ driving.DashboardService = (*DashboardService)(nil)

// RecentActivityLimit is how many activities the dashboard shows.
const RecentActivityLimit = 5

// DashboardService assembles the dashboard home screen.
type DashboardService struct {
	session   driving.SessionService
	documents driving.DocumentService
	personas  driving.PersonaService
	templates driving.TemplateService
	axioms    driving.AxiomService
	activity  driven.ActivityStore
}

// NewDashboardService creates a new dashboard service.
// Any resource service may be nil; its count is then reported as unavailable.
func NewDashboardService(
	session driving.SessionService,
	documents driving.DocumentService,
	personas driving.PersonaService,
	templates driving.TemplateService,
	axioms driving.AxiomService,
	activity driven.ActivityStore,
) *DashboardService {
	return &DashboardService{
		session:   session,
		documents: documents,
		personas:  personas,
		templates: templates,
		axioms:    axioms,
		activity:  activity,
	}
}

// Overview loads the counts of every resource concurrently. A failing
// resource is recorded in Errors and does not affect the others.
func (s *DashboardService) Overview(ctx context.Context) (*driving.Overview, error) {
	ov := &driving.Overview{
		Greeting: s.greeting(),
		Counts:   make(map[domain.ActivityKind]int),
		Errors:   make(map[domain.ActivityKind]string),
	}

	counters := map[domain.ActivityKind]func(context.Context) (int, error){
		domain.KindDocument: s.countDocuments,
		domain.KindPersona:  s.countPersonas,
		domain.KindTemplate: s.countTemplates,
		domain.KindAxiom:    s.countAxioms,
	}

	var mu sync.Mutex
	var g errgroup.Group
	for kind, count := range counters {
		g.Go(func() error {
			n, err := count(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("dashboard: count %s: %v", kind, err)
				ov.Errors[kind] = domain.UserMessage(err, fmt.Sprintf("Could not load %ss", kind))
				return nil
			}
			ov.Counts[kind] = n
			return nil
		})
	}
	_ = g.Wait()

	recent, err := s.Activity(ctx, RecentActivityLimit)
	if err != nil {
		logger.Warn("dashboard: recent activity: %v", err)
	}
	ov.Recent = recent
	return ov, nil
}

// Activity returns recent local activity, newest first.
func (s *DashboardService) Activity(ctx context.Context, limit int) ([]domain.Activity, error) {
	if s.activity == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = RecentActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}

func (s *DashboardService) greeting() string {
	name := ""
	if s.session != nil {
		if u := s.session.State().User; u != nil {
			name = u.Name
		}
	}
	return "Welcome back, " + domain.FirstName(name, "there")
}

func (s *DashboardService) countDocuments(ctx context.Context) (int, error) {
	if s.documents == nil {
		return 0, domain.ErrNotImplemented
	}
	page, err := s.documents.List(ctx, domain.DocumentListParams{})
	if err != nil {
		return 0, err
	}
	return page.Count(), nil
}

func (s *DashboardService) countPersonas(ctx context.Context) (int, error) {
	if s.personas == nil {
		return 0, domain.ErrNotImplemented
	}
	page, err := s.personas.List(ctx, domain.ListParams{})
	if err != nil {
		return 0, err
	}
	return page.Count(), nil
}

func (s *DashboardService) countTemplates(ctx context.Context) (int, error) {
	if s.templates == nil {
		return 0, domain.ErrNotImplemented
	}
	page, err := s.templates.List(ctx, domain.TemplateListParams{})
	if err != nil {
		return 0, err
	}
	return page.Count(), nil
}

func (s *DashboardService) countAxioms(ctx context.Context) (int, error) {
	if s.axioms == nil {
		return 0, domain.ErrNotImplemented
	}
	page, err := s.axioms.List(ctx, domain.ListParams{})
	if err != nil {
		return 0, err
	}
	return page.Count(), nil
}
