package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JibinB02/pehlahath/internal/entity"
)

const resourceColumns = `id, name, category, quantity, unit, location, status,
	description, urgency, provided_by, created_at`

type PostgresResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

func (r *PostgresResourceRepository) Create(ctx context.Context, resource *entity.Resource) (*entity.Resource, error) {
	query := `
	INSERT INTO resource (name, category, quantity, unit, location, description, urgency, provided_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + resourceColumns

	row := r.db.QueryRow(ctx, query,
		resource.Name,
		resource.Category,
		resource.Quantity,
		resource.Unit,
		resource.Location,
		resource.Description,
		resource.Urgency,
		resource.ProvidedBy,
	)

	return scanResource(row)
}

func (r *PostgresResourceRepository) GetByID(ctx context.Context, id int) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resource WHERE id = $1`

	resource, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return resource, nil
}

func (r *PostgresResourceRepository) List(ctx context.Context) ([]entity.Resource, error) {
	return r.list(ctx, `SELECT `+resourceColumns+` FROM resource ORDER BY created_at DESC`)
}

func (r *PostgresResourceRepository) ListByProvider(ctx context.Context, userID int) ([]entity.Resource, error) {
	return r.list(ctx,
		`SELECT `+resourceColumns+` FROM resource WHERE provided_by = $1 ORDER BY created_at DESC`,
		userID)
}

func (r *PostgresResourceRepository) UpdateStatus(ctx context.Context, id int, status entity.ResourceStatus) (*entity.Resource, error) {
	query := `
	UPDATE resource
	SET status = $2
	WHERE id = $1
	RETURNING ` + resourceColumns

	resource, err := scanResource(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return resource, nil
}

// Allocate marks a resource allocated, but only for its own provider.
func (r *PostgresResourceRepository) Allocate(ctx context.Context, id, providerID int) (*entity.Resource, error) {
	query := `
	UPDATE resource
	SET status = 'allocated'
	WHERE id = $1 AND provided_by = $2
	RETURNING ` + resourceColumns

	resource, err := scanResource(r.db.QueryRow(ctx, query, id, providerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return resource, nil
}

// DeleteAllocated removes an allocated resource owned by providerID.
// Reports whether a row was deleted.
func (r *PostgresResourceRepository) DeleteAllocated(ctx context.Context, id, providerID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM resource WHERE id = $1 AND provided_by = $2 AND status = 'allocated'`,
		id, providerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresResourceRepository) list(ctx context.Context, query string, args ...any) ([]entity.Resource, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []entity.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *resource)
	}

	return resources, rows.Err()
}

func scanResource(row pgx.Row) (*entity.Resource, error) {
	var resource entity.Resource
	err := row.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Category,
		&resource.Quantity,
		&resource.Unit,
		&resource.Location,
		&resource.Status,
		&resource.Description,
		&resource.Urgency,
		&resource.ProvidedBy,
		&resource.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}
