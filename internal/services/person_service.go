package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alimgiray/pessoas/internal/models"
)

type PersonService struct {
	store PersonStore
}

func NewPersonService(store PersonStore) *PersonService {
	return &PersonService{
		store: store,
	}
}

// ListPeople returns people matching the filter, ordered by name
func (s *PersonService) ListPeople(ctx context.Context, filter models.PersonFilter) ([]*models.Person, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.store.List(ctx, filter)
}

// GetPersonByEmail retrieves a person by email
func (s *PersonService) GetPersonByEmail(ctx context.Context, email string) (*models.Person, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email is required")
	}

	person, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPersonNotFound
	}
	return person, err
}
