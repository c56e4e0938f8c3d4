package remote

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
)

func TestNewUnconfigured(t *testing.T) {

	t.Run("EmptyDSN", func(t *testing.T) {
		g := New(t.Context(), "")
		assert.False(t, g.Configured())
	})

	t.Run("MalformedDSN", func(t *testing.T) {
		g := New(t.Context(), "postgres://user@host:notaport/db")
		assert.False(t, g.Configured())
	})

	t.Run("CallsReportNotConfigured", func(t *testing.T) {
		g := New(t.Context(), "")

		_, err := g.FetchAll(t.Context(), domain.CollectionProducts)
		assert.ErrorIs(t, err, port.ErrNotConfigured)

		err = g.Upsert(t.Context(), domain.CollectionProducts, port.Row{ID: "p1"})
		assert.ErrorIs(t, err, port.ErrNotConfigured)

		err = g.Delete(t.Context(), domain.CollectionProducts, "p1")
		assert.ErrorIs(t, err, port.ErrNotConfigured)
	})
}

func TestClassify(t *testing.T) {

	t.Run("UndefinedTableIsSchemaMissing", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: pgerrcode.UndefinedTable})
		assert.ErrorIs(t, err, port.ErrSchemaMissing)
	})

	t.Run("OtherPostgresErrorsPassThrough", func(t *testing.T) {
		src := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		err := classify(src)

		assert.NotErrorIs(t, err, port.ErrSchemaMissing)
		assert.NotErrorIs(t, err, port.ErrUnavailable)

		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)
	})

	t.Run("TransportErrorsAreUnavailable", func(t *testing.T) {
		err := classify(errors.New("dial tcp: connection refused"))
		assert.ErrorIs(t, err, port.ErrUnavailable)
	})
}

func TestTableIdent(t *testing.T) {
	assert.Equal(t, `"products"`, tableIdent(domain.CollectionProducts))
	assert.Equal(t, `"carousel_slides"`, tableIdent(domain.CollectionCarouselSlides))
}
