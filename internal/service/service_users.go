package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/validators"
	"github.com/MKhiriev/go-data-hub/models"
)

type userService struct {
	cache     cache.TableCache
	engine    MutationEngine
	validator validators.Validator
	now       func() time.Time
}

func NewUserService(c cache.TableCache, engine MutationEngine, v validators.Validator) UserService {
	return &userService{cache: c, engine: engine, validator: v, now: time.Now}
}

func (s *userService) List(ctx context.Context) ([]models.AuthorizedUser, error) {
	snap, err := s.cache.GetOrFetch(ctx, models.TableAuth)
	if err != nil {
		return nil, err
	}

	users := make([]models.AuthorizedUser, 0, snap.Len())
	for _, r := range snap.Records {
		users = append(users, models.UserFromRecord(r))
	}
	return users, nil
}

func (s *userService) Add(ctx context.Context, by models.Identity, req models.NewUserRequest) (models.AuthorizedUser, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Str("func", "*userService.Add").Msg("invalid user request")
		return models.AuthorizedUser{}, err
	}

	record := req.ToRecord(s.now(), by.Operator())
	if err := s.engine.Append(ctx, models.TableAuth, record); err != nil {
		return models.AuthorizedUser{}, fmt.Errorf("error adding authorized user: %w", err)
	}

	log.Info().Str("by", by.Email).Msg("authorized user added")
	return models.UserFromRecord(record), nil
}

// DeleteByEmail removes the first row whose address matches email
// case-insensitively. The caller cannot remove their own address.
func (s *userService) DeleteByEmail(ctx context.Context, by models.Identity, email string) (models.AuthorizedUser, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return models.AuthorizedUser{}, &ValidationError{Fields: []string{models.ColEmail}}
	}
	if email == models.NormalizeEmail(by.Email) {
		return models.AuthorizedUser{}, ErrSelfRemoval
	}

	removed, err := s.engine.Delete(ctx, models.TableAuth, models.ByEmail(email))
	if err != nil {
		return models.AuthorizedUser{}, fmt.Errorf("error deleting authorized user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("by", by.Email).Msg("authorized user removed")
	return models.UserFromRecord(removed), nil
}
