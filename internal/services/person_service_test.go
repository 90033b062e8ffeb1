package services

import (
	"context"
	"testing"
	"time"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *memoryStore {
	t.Helper()

	store := newMemoryStore()
	importer := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))
	_, err := importer.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Bruno", "bruno@x.com", "1985-02-10", ""},
		[]interface{}{"Ana", "ana@x.com", "1990-05-01", ""},
		[]interface{}{"Caio", "caio@x.com", "2014-07-07", ""},
	))
	require.NoError(t, err)
	return store
}

func TestListPeople(t *testing.T) {
	svc := NewPersonService(seededStore(t))
	ctx := context.Background()

	t.Run("All people ordered by name", func(t *testing.T) {
		people, err := svc.ListPeople(ctx, models.PersonFilter{})
		require.NoError(t, err)

		names := []string{}
		for _, p := range people {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Ana", "Bruno", "Caio"}, names)
	})

	t.Run("Inactive only", func(t *testing.T) {
		inactive := false
		people, err := svc.ListPeople(ctx, models.PersonFilter{Active: &inactive})
		require.NoError(t, err)

		require.Len(t, people, 1)
		assert.Equal(t, "caio@x.com", people[0].Email)
	})

	t.Run("Search is trimmed", func(t *testing.T) {
		people, err := svc.ListPeople(ctx, models.PersonFilter{Search: "  bruno "})
		require.NoError(t, err)

		require.Len(t, people, 1)
		assert.Equal(t, "Bruno", people[0].Name)
	})
}

func TestGetPersonByEmail(t *testing.T) {
	svc := NewPersonService(seededStore(t))
	ctx := context.Background()

	person, err := svc.GetPersonByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", person.Name)

	_, err = svc.GetPersonByEmail(ctx, "ninguem@x.com")
	assert.ErrorIs(t, err, ErrPersonNotFound)

	_, err = svc.GetPersonByEmail(ctx, "  ")
	assert.Error(t, err)
}
