package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	"github.com/unclebandit/campaign-scheduler/internal/db"
	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
	"github.com/unclebandit/campaign-scheduler/internal/model"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
	"github.com/unclebandit/campaign-scheduler/internal/service"
	"github.com/unclebandit/campaign-scheduler/internal/validation"
)

func newSQLiteStore(t *testing.T) *repository.SQLStore {
	t.Helper()
	ctx := context.Background()
	conn, dialect, err := db.Open(ctx, config.DB{
		Driver: "sqlite",
		URL:    "file:" + filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, dialect))
	return repository.NewSQLStore(conn, dialect)
}

func TestConcurrentCreatesSameKey(t *testing.T) {
	const writers = 20

	stores := map[string]func(t *testing.T) repository.CatalogRepositoryInterface{
		"memory": func(*testing.T) repository.CatalogRepositoryInterface { return repository.NewMemoryStore() },
		"sqlite": func(t *testing.T) repository.CatalogRepositoryInterface { return newSQLiteStore(t) },
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			svc := &service.CatalogService{Store: open(t), Validator: validation.NewEngine()}

			var wg sync.WaitGroup
			errs := make([]error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = svc.CreateRecipientList(context.Background(), model.RecipientListInput{RecipientCategory: model.Some("x")})
				}(i)
			}
			wg.Wait()

			ok, conflicts := 0, 0
			for _, err := range errs {
				if err == nil {
					ok++
					continue
				}
				rej, isRejection := apperrors.AsRejection(err)
				require.True(t, isRejection, "unexpected error: %v", err)
				assert.Equal(t, apperrors.ReasonConflict, rej.Reason)
				conflicts++
			}
			assert.Equal(t, 1, ok)
			assert.Equal(t, writers-1, conflicts)

			lists, err := svc.ListRecipientLists(context.Background())
			require.NoError(t, err)
			assert.Len(t, lists, 1)
		})
	}
}
