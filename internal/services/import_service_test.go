package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImportService(store PersonStore, today time.Time) *ImportService {
	svc := NewImportService(store)
	svc.now = func() time.Time { return today }
	return svc
}

func TestImportActivationOnBirthday(t *testing.T) {
	t.Run("Turns 18 today", func(t *testing.T) {
		store := newMemoryStore()
		svc := newTestImportService(store, time.Date(2026, time.June, 15, 10, 0, 0, 0, time.Local))

		results, err := svc.Import(context.Background(), workbook(t,
			headerRow,
			[]interface{}{"Ana", "ana@x.com", "2008-06-15", "TRUE"},
		))
		require.NoError(t, err)

		assert.Equal(t, []models.PersonResult{{
			Name:      "Ana",
			Email:     "ana@x.com",
			BirthDate: "2008-06-15",
			Active:    true,
			Fee:       "R$ 100.00",
		}}, results)

		stored := store.people["ana@x.com"]
		require.NotNil(t, stored)
		assert.True(t, stored.Active)
		assert.Equal(t, "100", stored.Fee.Decimal.String())
	})

	t.Run("Day before 18th birthday", func(t *testing.T) {
		store := newMemoryStore()
		svc := newTestImportService(store, time.Date(2026, time.June, 14, 10, 0, 0, 0, time.Local))

		results, err := svc.Import(context.Background(), workbook(t,
			headerRow,
			[]interface{}{"Ana", "ana@x.com", "2008-06-15", "TRUE"},
		))
		require.NoError(t, err)

		assert.Empty(t, results)
		assert.NotNil(t, results, "empty result should encode as []")

		stored := store.people["ana@x.com"]
		require.NotNil(t, stored, "inactive rows are still persisted")
		assert.False(t, stored.Active)
		assert.False(t, stored.Fee.Valid)
	})
}

func TestImportFeeTierBoundaries(t *testing.T) {
	store := newMemoryStore()
	svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

	results, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Vinte", "vinte@x.com", "2006-10-19", ""},
		[]interface{}{"Vinte e um", "vinteeum@x.com", "2005-10-19", ""},
		[]interface{}{"Cinquenta e nove", "cinq@x.com", "1967-10-19", ""},
		[]interface{}{"Sessenta", "sessenta@x.com", "1966-10-19", ""},
		[]interface{}{"Quase sessenta", "quase@x.com", "1966-10-20", ""},
	))
	require.NoError(t, err)
	require.Len(t, results, 5)

	fees := make([]string, len(results))
	for i, r := range results {
		fees[i] = r.Fee
	}
	assert.Equal(t, []string{"R$ 100.00", "R$ 150.00", "R$ 150.00", "R$ 200.00", "R$ 150.00"}, fees)
}

func TestImportIgnoresActiveColumn(t *testing.T) {
	store := newMemoryStore()
	svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

	results, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Adulto", "adulto@x.com", "1990-01-01", false},
		[]interface{}{"Menor", "menor@x.com", "2015-01-01", true},
	))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "adulto@x.com", results[0].Email)
	assert.True(t, results[0].Active)
	assert.False(t, store.people["menor@x.com"].Active)
}

func TestImportDateCells(t *testing.T) {
	store := newMemoryStore()
	svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

	results, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Carla", "carla@x.com", time.Date(1960, time.January, 5, 0, 0, 0, 0, time.UTC), nil},
	))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "1960-01-05", results[0].BirthDate)
	assert.Equal(t, "R$ 200.00", results[0].Fee)
}

func TestImportSkipsInvalidRows(t *testing.T) {
	store := newMemoryStore()
	store.people["old@x.com"] = &models.Person{ID: "keep", Name: "Old", Email: "old@x.com", Active: true}
	store.order = append(store.order, "old@x.com")

	svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

	results, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Ana", "ana@x.com", "1990-05-01", ""},
		[]interface{}{"Old", "old@x.com", "01/05/1990", ""},
		[]interface{}{"Sem data", "semdata@x.com", nil, ""},
		[]interface{}{"Numero", "numero@x.com", 12345, ""},
		[]interface{}{},
		[]interface{}{"Email ruim", "not-an-email", "1990-05-01", ""},
		[]interface{}{"", "noname@x.com", "1990-05-01", ""},
		[]interface{}{"Extra", "extra@x.com", "1990-05-01", "", "surplus"},
		[]interface{}{"Bruno", "bruno@x.com", "1985-02-10", ""},
	))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "ana@x.com", results[0].Email)
	assert.Equal(t, "bruno@x.com", results[1].Email)

	assert.Equal(t, 2, store.upserts)
	assert.Equal(t, "Old", store.people["old@x.com"].Name, "row with bad date must not touch the stored record")
	assert.NotContains(t, store.people, "semdata@x.com")
	assert.NotContains(t, store.people, "numero@x.com")
	assert.NotContains(t, store.people, "not-an-email")
	assert.NotContains(t, store.people, "noname@x.com")
	assert.NotContains(t, store.people, "extra@x.com")
}

func TestImportUpsertsByEmail(t *testing.T) {
	store := newMemoryStore()
	svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

	_, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Ana", "ana@x.com", "2010-01-01", ""},
	))
	require.NoError(t, err)
	firstID := store.people["ana@x.com"].ID
	assert.False(t, store.people["ana@x.com"].Active)

	results, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Ana Maria", "ana@x.com", "1980-01-01", ""},
	))
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Len(t, store.people, 1)

	updated := store.people["ana@x.com"]
	assert.Equal(t, firstID, updated.ID)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "1980-01-01", updated.BirthDate.Format(models.DateLayout))
	assert.True(t, updated.Active)
	assert.Equal(t, "R$ 150.00", models.FormatFee(updated.Fee))
}

func TestImportHeaderValidation(t *testing.T) {
	testCases := []struct {
		name   string
		header []interface{}
		valid  bool
	}{
		{"Exact header", headerRow, true},
		{"Different case", []interface{}{"Nome", "E-MAIL", "Data de Nascimento", "ATIVO"}, true},
		{"Missing column", []interface{}{"nome", "e-mail", "data de nascimento"}, false},
		{"Extra column", []interface{}{"nome", "e-mail", "data de nascimento", "ativo", "valor"}, false},
		{"Reordered", []interface{}{"e-mail", "nome", "data de nascimento", "ativo"}, false},
		{"Misspelled", []interface{}{"nome", "email", "data de nascimento", "ativo"}, false},
		{"Padded", []interface{}{"nome ", "e-mail", "data de nascimento", "ativo"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryStore()
			svc := newTestImportService(store, time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local))

			_, err := svc.Import(context.Background(), workbook(t,
				tc.header,
				[]interface{}{"Ana", "ana@x.com", "1990-05-01", ""},
			))

			if tc.valid {
				assert.NoError(t, err)
				assert.Len(t, store.people, 1)
			} else {
				assert.ErrorIs(t, err, ErrSchema)
				assert.Empty(t, store.people, "no rows may be written on schema error")
			}
		})
	}
}

func TestImportEmptyWorkbook(t *testing.T) {
	svc := newTestImportService(newMemoryStore(), time.Now())

	_, err := svc.Import(context.Background(), workbook(t))
	assert.ErrorIs(t, err, ErrSchema)
}

func TestImportParseError(t *testing.T) {
	store := newMemoryStore()
	svc := newTestImportService(store, time.Now())

	_, err := svc.Import(context.Background(), strings.NewReader("this is not a spreadsheet"))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Error(t, parseErr.Cause)
	assert.Empty(t, store.people)
}

func TestImportStoreError(t *testing.T) {
	store := newMemoryStore()
	store.upsertErr = errors.New("disk full")
	svc := newTestImportService(store, time.Now())

	_, err := svc.Import(context.Background(), workbook(t,
		headerRow,
		[]interface{}{"Ana", "ana@x.com", "1990-05-01", ""},
	))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.ErrorIs(t, err, store.upsertErr)
}
