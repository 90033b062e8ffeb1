package services

import (
	"context"

	"github.com/alimgiray/pessoas/internal/models"
)

// PersonStore is the persistence the import and export services depend on.
// repositories.PersonRepository is the SQLite implementation.
type PersonStore interface {
	Upsert(ctx context.Context, person *models.Person) error
	GetActive(ctx context.Context) ([]*models.Person, error)
	GetByEmail(ctx context.Context, email string) (*models.Person, error)
	List(ctx context.Context, filter models.PersonFilter) ([]*models.Person, error)
}
