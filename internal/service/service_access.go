package service

import (
	"context"

	"github.com/MKhiriev/go-data-hub/internal/cache"
	"github.com/MKhiriev/go-data-hub/internal/logger"
	"github.com/MKhiriev/go-data-hub/internal/metrics"
	"github.com/MKhiriev/go-data-hub/models"
)

type accessGate struct {
	cache    cache.TableCache
	recorder metrics.Recorder
}

// NewAccessGate checks membership against the e-mail column of the
// authorization table, read through c.
func NewAccessGate(c cache.TableCache, rec metrics.Recorder) AccessGate {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &accessGate{cache: c, recorder: rec}
}

// IsAllowed fails closed: a store error yields false together with the error.
func (g *accessGate) IsAllowed(ctx context.Context, email string) (bool, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		g.recorder.RecordAccessDecision(false)
		return false, nil
	}

	snap, err := g.cache.GetOrFetch(ctx, models.TableAuth)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accessGate.IsAllowed").Msg("error reading authorization table")
		g.recorder.RecordAccessDecision(false)
		return false, err
	}

	allowed := false
	for _, v := range snap.Column(models.ColEmail) {
		if models.NormalizeEmail(v.Text()) == email {
			allowed = true
			break
		}
	}

	g.recorder.RecordAccessDecision(allowed)
	return allowed, nil
}

func (g *accessGate) Authorize(ctx context.Context, identity models.Identity) error {
	if !identity.LoggedIn {
		return ErrNotLoggedIn
	}

	allowed, err := g.IsAllowed(ctx, identity.Email)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrAccessDenied
	}

	return nil
}
