package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alimgiray/pessoas/internal/models"
)

const personColumns = `id, name, email, birth_date, active, fee, created_at, updated_at`

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Upsert inserts a person or overwrites the existing row with the same email.
// ID and timestamps are refreshed from the stored row.
func (r *PersonRepository) Upsert(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO people (
			id, name, email, birth_date, active, fee, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			birth_date = excluded.birth_date,
			active = excluded.active,
			fee = excluded.fee,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		person.ID, person.Name, person.Email, person.BirthDate.Format(models.DateLayout),
		person.Active, person.Fee,
	)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM people WHERE email = ?`, person.Email,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
}

// GetByEmail retrieves a person by email
func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE email = ?`

	person, err := scanPerson(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, err
	}

	return person, nil
}

// GetActive retrieves every active person in storage order
func (r *PersonRepository) GetActive(ctx context.Context) ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE active = 1`

	return r.queryPeople(ctx, query)
}

// List retrieves people matching the filter, ordered by name
func (r *PersonRepository) List(ctx context.Context, filter models.PersonFilter) ([]*models.Person, error) {
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ?)")
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}

	query := `SELECT ` + personColumns + ` FROM people`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	return r.queryPeople(ctx, query, args...)
}

func (r *PersonRepository) queryPeople(ctx context.Context, query string, args ...interface{}) ([]*models.Person, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	person := &models.Person{}
	err := row.Scan(
		&person.ID, &person.Name, &person.Email, &person.BirthDate,
		&person.Active, &person.Fee, &person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return person, nil
}
