package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JibinB02/pehlahath/internal/entity"
)

const taskColumns = `id, title, description, location, status, priority, created_by,
	volunteers, max_volunteers, required_skills, estimated_duration,
	duration_hours, actual_hours, created_at, completed_at`

type PostgresTaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *entity.VolunteerTask) (*entity.VolunteerTask, error) {
	query := `
	INSERT INTO volunteer_task
		(title, description, location, priority, created_by, max_volunteers,
		 required_skills, estimated_duration, duration_hours)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + taskColumns

	row := r.db.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Location,
		task.Priority,
		task.CreatedBy,
		task.MaxVolunteers,
		task.RequiredSkills,
		task.EstimatedDuration,
		task.DurationHours,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id int) (*entity.VolunteerTask, error) {
	query := `SELECT ` + taskColumns + ` FROM volunteer_task WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return task, nil
}

func (r *PostgresTaskRepository) List(ctx context.Context) ([]entity.VolunteerTask, error) {
	query := `SELECT ` + taskColumns + ` FROM volunteer_task ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.VolunteerTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// AddVolunteer appends userID in a single conditional update so two joins
// racing for the last slot cannot both succeed. The status flips to
// in_progress on the first join. Returns (nil, nil) when no row matched.
func (r *PostgresTaskRepository) AddVolunteer(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error) {
	query := `
	UPDATE volunteer_task
	SET volunteers = array_append(volunteers, $2),
	    status = CASE WHEN status = 'open' THEN 'in_progress' ELSE status END
	WHERE id = $1
	  AND status IN ('open', 'in_progress')
	  AND NOT ($2 = ANY (volunteers))
	  AND cardinality(volunteers) < max_volunteers
	RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return task, nil
}

// Complete marks the task completed, stamps completed_at exactly once and
// records actual hours, falling back to the estimate. Terminal states are
// excluded by the guard. Returns (nil, nil) when no row matched.
func (r *PostgresTaskRepository) Complete(ctx context.Context, taskID int, actualHours *float64) (*entity.VolunteerTask, error) {
	query := `
	UPDATE volunteer_task
	SET status = 'completed',
	    completed_at = CURRENT_TIMESTAMP,
	    actual_hours = COALESCE($2, duration_hours)
	WHERE id = $1
	  AND status NOT IN ('completed', 'cancelled')
	RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, actualHours))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return task, nil
}

// Cancel is the administrative terminal transition. Returns (nil, nil)
// when the task is absent or already terminal.
func (r *PostgresTaskRepository) Cancel(ctx context.Context, taskID int) (*entity.VolunteerTask, error) {
	query := `
	UPDATE volunteer_task
	SET status = 'cancelled'
	WHERE id = $1
	  AND status NOT IN ('completed', 'cancelled')
	RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return task, nil
}

func scanTask(row pgx.Row) (*entity.VolunteerTask, error) {
	var task entity.VolunteerTask
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Location,
		&task.Status,
		&task.Priority,
		&task.CreatedBy,
		&task.Volunteers,
		&task.MaxVolunteers,
		&task.RequiredSkills,
		&task.EstimatedDuration,
		&task.DurationHours,
		&task.ActualHours,
		&task.CreatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
