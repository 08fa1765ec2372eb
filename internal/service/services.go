package service

import (
	"fmt"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/config"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/internal/store"
	"github.com/MKhiriev/go-data-hub/internal/utils"
	"github.com/MKhiriev/go-data-hub/internal/validators"
)

type Services struct {
	AccessGate         AccessGate
	MutationEngine     MutationEngine
	UserService        UserService
	ProjectService     ProjectService
	BeneficiaryService BeneficiaryService
	DashboardService   DashboardService
	SessionService     SessionService
	CacheService       CacheService
	AppInfoService     AppInfoService
}

// NewServices wires every service over one store and the cache reading
// through it.
func NewServices(ts store.TableStore, c cache.TableCache, cfg config.StructuredConfig, rec metrics.Recorder, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewRecordValidator()
	engine := NewMutationEngine(ts, c, rec)

	log.Debug().Str("func", "NewServices").Msg("services created")
	return &Services{
		AccessGate:         NewAccessGate(c, rec),
		MutationEngine:     engine,
		UserService:        NewUserService(c, engine, validator),
		ProjectService:     NewProjectService(c, engine, validator, utils.NewUUIDGenerator()),
		BeneficiaryService: NewBeneficiaryService(c, engine, validator, validators.NewTextSanitizer()),
		DashboardService:   NewDashboardService(c),
		SessionService:     NewSessionService(cfg.App),
		CacheService:       NewCacheService(c),
		AppInfoService:     appInfo,
	}, nil
}
