package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/validators"
	"github.com/MKhiriev/go-data-hub/models"
)

type projectService struct {
	cache     cache.TableCache
	engine    MutationEngine
	validator validators.Validator
	ids       IDGenerator
	now       func() time.Time
}

func NewProjectService(c cache.TableCache, engine MutationEngine, v validators.Validator, ids IDGenerator) ProjectService {
	return &projectService{cache: c, engine: engine, validator: v, ids: ids, now: time.Now}
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	snap, err := s.cache.GetOrFetch(ctx, models.TableProjects)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, snap.Len())
	for _, r := range snap.Records {
		projects = append(projects, models.ProjectFromRecord(r))
	}
	return projects, nil
}

func (s *projectService) ListActive(ctx context.Context) ([]models.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := projects[:0]
	for _, p := range projects {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *projectService) Find(ctx context.Context, id string) (models.Project, error) {
	snap, err := s.cache.GetOrFetch(ctx, models.TableProjects)
	if err != nil {
		return models.Project{}, err
	}

	key := models.ByID(id)
	i := snap.IndexOf(key)
	if i < 0 {
		return models.Project{}, notFound(models.TableProjects, key)
	}
	return models.ProjectFromRecord(snap.Records[i]), nil
}

func (s *projectService) Create(ctx context.Context, by models.Identity, req models.NewProjectRequest) (models.Project, error) {
	log := logger.FromContext(ctx)

	req.Status = strings.TrimSpace(req.Status)
	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "*projectService.Create").Msg("invalid project request")
		return models.Project{}, err
	}

	record := req.ToRecord(s.ids.Generate(), s.now(), by.Operator())
	if err := s.engine.Append(ctx, models.TableProjects, record); err != nil {
		return models.Project{}, fmt.Errorf("error creating project: %w", err)
	}

	project := models.ProjectFromRecord(record)
	log.Info().Str("project_id", project.ID).Str("by", by.Email).Msg("project created")
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) (models.Project, error) {
	removed, err := s.engine.Delete(ctx, models.TableProjects, models.ByID(id))
	if err != nil {
		return models.Project{}, fmt.Errorf("error deleting project: %w", err)
	}
	return models.ProjectFromRecord(removed), nil
}

// ToggleStatus flips the active flag based on the value currently stored.
func (s *projectService) ToggleStatus(ctx context.Context, id string) (models.Project, error) {
	updated, err := s.engine.UpdateFieldFunc(ctx, models.TableProjects, models.ByID(id), models.ColProjectActive,
		func(current models.Value) models.Value {
			return models.String(models.ToggledStatus(current.Text()))
		})
	if err != nil {
		return models.Project{}, fmt.Errorf("error toggling project status: %w", err)
	}
	return models.ProjectFromRecord(updated), nil
}
