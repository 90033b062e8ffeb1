package services

import (
	"bytes"
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/alimgiray/pessoas/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// memoryStore is an in-memory PersonStore keyed by email
type memoryStore struct {
	people    map[string]*models.Person
	order     []string
	upserts   int
	upsertErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{people: map[string]*models.Person{}}
}

func (m *memoryStore) Upsert(_ context.Context, person *models.Person) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++

	if existing, ok := m.people[person.Email]; ok {
		person.ID = existing.ID
		person.CreatedAt = existing.CreatedAt
	} else {
		if person.ID == "" {
			person.ID = uuid.New().String()
		}
		m.order = append(m.order, person.Email)
	}

	stored := *person
	m.people[person.Email] = &stored
	return nil
}

func (m *memoryStore) GetActive(_ context.Context) ([]*models.Person, error) {
	var people []*models.Person
	for _, email := range m.order {
		if p := m.people[email]; p.Active {
			people = append(people, p)
		}
	}
	return people, nil
}

func (m *memoryStore) GetByEmail(_ context.Context, email string) (*models.Person, error) {
	p, ok := m.people[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *memoryStore) List(_ context.Context, filter models.PersonFilter) ([]*models.Person, error) {
	var people []*models.Person
	for _, email := range m.order {
		p := m.people[email]
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Name, filter.Search) && !strings.Contains(p.Email, filter.Search) {
			continue
		}
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return people, nil
}

var headerRow = []interface{}{"nome", "e-mail", "data de nascimento", "ativo"}

// workbook builds an xlsx file with the given rows on its first sheet
func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}
