package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/validators"
	"github.com/MKhiriev/go-data-hub/models"
)

type beneficiaryService struct {
	cache     cache.TableCache
	engine    MutationEngine
	validator validators.Validator
	sanitizer validators.Sanitizer
}

func NewBeneficiaryService(c cache.TableCache, engine MutationEngine, v validators.Validator, s validators.Sanitizer) BeneficiaryService {
	return &beneficiaryService{cache: c, engine: engine, validator: v, sanitizer: s}
}

func (s *beneficiaryService) List(ctx context.Context) (models.Snapshot, error) {
	return s.cache.GetOrFetch(ctx, models.TableBeneficiaries)
}

// Register appends the beneficiary row and then bumps the counter of every
// project the person joins. The row is kept when the counter update fails;
// the failure is returned as a warning.
func (s *beneficiaryService) Register(ctx context.Context, by models.Identity, b models.Beneficiary) (models.RegistrationResult, error) {
	log := logger.FromContext(ctx)

	b = s.sanitize(b)
	b.FilledBy = by.Operator()

	if err := s.validator.Validate(ctx, b); err != nil {
		log.Err(err).Str("func", "*beneficiaryService.Register").Msg("invalid beneficiary")
		return models.RegistrationResult{}, err
	}

	if err := s.engine.Append(ctx, models.TableBeneficiaries, b.ToRecord()); err != nil {
		return models.RegistrationResult{}, fmt.Errorf("error registering beneficiary: %w", err)
	}

	result := models.RegistrationResult{Name: b.FullName}
	if len(b.Projects) == 0 {
		return result, nil
	}

	counted, err := s.engine.IncrementCounts(ctx, models.TableProjects, models.ColProjectName, b.Projects, models.ColProjectCount)
	if err != nil {
		log.Warn().Err(err).Str("func", "*beneficiaryService.Register").Msg("beneficiary stored but project counters not updated")
		result.Warnings = append(result.Warnings, "beneficiary registered, but project counters were not updated: "+err.Error())
		return result, nil
	}

	result.ProjectsCounted = counted
	if counted < len(b.Projects) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d of %d selected projects were not found", len(b.Projects)-counted, len(b.Projects)))
	}

	log.Info().Int("projects", counted).Msg("beneficiary registered")
	return result, nil
}

func (s *beneficiaryService) sanitize(b models.Beneficiary) models.Beneficiary {
	for _, field := range []*string{
		&b.FullName, &b.CPF, &b.RG, &b.BirthDate, &b.Sex, &b.Gender, &b.Race, &b.Phone,
		&b.Address, &b.Neighborhood, &b.HousingType, &b.WaterAccess, &b.SewageAccess, &b.PowerAccess,
		&b.MaritalStatus, &b.HouseholdHead,
		&b.LeprosyStatus, &b.HadLeprosy, &b.OperationalClass, &b.ClinicalForm,
		&b.LesionCount, &b.AffectedNerves, &b.DisabilityGrade, &b.Interviewer,
	} {
		*field = s.sanitizer.Sanitize(*field)
	}

	projects := make([]string, 0, len(b.Projects))
	for _, p := range b.Projects {
		if p = s.sanitizer.Sanitize(p); p != "" && !slices.Contains(projects, p) {
			projects = append(projects, p)
		}
	}
	b.Projects = projects

	return b
}
