//go:build integration

package typlate

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresStorage, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("typlate_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres storage")

	cleanup := func() {
		if storage != nil {
			_ = storage.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return storage, cleanup
}

func TestPostgres_E2E_BasicCRUD(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		tmpl := &StoredTemplate{
			Name:     "meta-layout",
			Source:   "#let paper-title = \"{{title}}\"",
			Metadata: map[string]string{"author": "test"},
			Tags:     []string{"layout", "default", `rev "a"`, `path\sep`},
		}

		err := storage.Save(ctx, tmpl)
		require.NoError(t, err)
		assert.NotEmpty(t, tmpl.ID)
		assert.Equal(t, 1, tmpl.Version)
		assert.False(t, tmpl.CreatedAt.IsZero())
		assert.False(t, tmpl.UpdatedAt.IsZero())
	})

	t.Run("Get", func(t *testing.T) {
		tmpl, err := storage.Get(ctx, "meta-layout")
		require.NoError(t, err)
		assert.Equal(t, "meta-layout", tmpl.Name)
		assert.Contains(t, tmpl.Source, "{{title}}")
		assert.Equal(t, 1, tmpl.Version)
		assert.Equal(t, "test", tmpl.Metadata["author"])
		assert.Equal(t, []string{"layout", "default", `rev "a"`, `path\sep`}, tmpl.Tags)
	})

	t.Run("Versioning", func(t *testing.T) {
		v2 := &StoredTemplate{Name: "meta-layout", Source: "v2 source"}
		require.NoError(t, storage.Save(ctx, v2))
		assert.Equal(t, 2, v2.Version)

		latest, err := storage.Get(ctx, "meta-layout")
		require.NoError(t, err)
		assert.Equal(t, 2, latest.Version)
		assert.Equal(t, "v2 source", latest.Source)

		first, err := storage.GetVersion(ctx, "meta-layout", 1)
		require.NoError(t, err)
		assert.Contains(t, first.Source, "{{title}}")
	})

	t.Run("GetVersion not found", func(t *testing.T) {
		_, err := storage.GetVersion(ctx, "meta-layout", 99)
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, storage.Save(ctx, &StoredTemplate{Name: "another", Source: "x"}))

		list, err := storage.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "another", list[0].Name)
		assert.Equal(t, "meta-layout", list[1].Name)
		assert.Equal(t, 2, list[1].Version)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, "another"))
		_, err := storage.Get(ctx, "another")
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))

		err = storage.Delete(ctx, "another")
		require.Error(t, err)
		assert.True(t, IsTemplateNotFound(err))
	})
}

func TestPostgres_E2E_ConcurrentSaves(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	// Concurrent saves of the same name must receive distinct versions
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = storage.Save(ctx, &StoredTemplate{
				Name:   "contended",
				Source: "writer " + strconv.Itoa(n),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}

	latest, err := storage.Get(ctx, "contended")
	require.NoError(t, err)
	assert.Equal(t, workers, latest.Version)
}

func TestPostgres_E2E_EngineIntegration(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &StoredTemplate{
		Name:   "greeting",
		Source: "Hello {{each names |n|}}{{n}} {{/each}}",
	}))

	engine := MustNew(WithStorage(storage))
	out, err := engine.RenderStored(ctx, "greeting", NewTemplateContext(TableValue(map[string]Value{
		"names": ListValue(StringValue("Ada"), StringValue("Lin")),
	})))
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada Lin ", out)
}

func TestPostgres_E2E_Closed(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, storage.Close())

	_, err := storage.Get(ctx, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)

	err = storage.Save(ctx, &StoredTemplate{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
}
