package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-data-hub/internal/validators"
	"github.com/MKhiriev/go-data-hub/models"
)

var operator = models.Identity{Email: "op@x.com", DisplayName: "Operadora", LoggedIn: true}

func newTestUserService(t *testing.T, s testStack) *userService {
	t.Helper()
	svc := NewUserService(s.cache, s.engine, validators.NewRecordValidator()).(*userService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestUserService_Add(t *testing.T) {
	s := newTestStack(t, authSnapshot("op@x.com"))
	svc := newTestUserService(t, s)
	ctx := context.Background()

	user, err := svc.Add(ctx, operator, models.NewUserRequest{Name: " Ana ", Email: "ana@x.com", Phone: "11 90000-0000"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "Operadora", user.RegisteredBy)
	assert.Equal(t, "14/03/2026 09:30:00", user.RegisteredAt)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ana@x.com", users[1].Email)
}

func TestUserService_Add_MissingFields(t *testing.T) {
	s := newTestStack(t, authSnapshot("op@x.com"))
	svc := newTestUserService(t, s)

	_, err := svc.Add(context.Background(), operator, models.NewUserRequest{Email: "ana@x.com"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{models.ColUserName, models.ColPhone}, verr.Fields)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, readTable(t, s.store, models.TableAuth).Len())
}

func TestUserService_DeleteByEmail(t *testing.T) {
	s := newTestStack(t, authSnapshot("op@x.com", "Ana@X.com"))
	svc := newTestUserService(t, s)
	ctx := context.Background()

	removed, err := svc.DeleteByEmail(ctx, operator, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana@X.com", removed.Email)

	_, err = svc.DeleteByEmail(ctx, operator, "ana@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_DeleteByEmail_Self(t *testing.T) {
	s := newTestStack(t, authSnapshot("op@x.com"))
	svc := newTestUserService(t, s)

	_, err := svc.DeleteByEmail(context.Background(), operator, " OP@x.com")
	assert.ErrorIs(t, err, ErrSelfRemoval)
	assert.Equal(t, 1, readTable(t, s.store, models.TableAuth).Len())
}
