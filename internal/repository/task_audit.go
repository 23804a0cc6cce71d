package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JibinB02/pehlahath/internal/entity"
)

type PostgresTaskAuditRepository struct {
	db *pgxpool.Pool
}

func NewTaskAuditRepository(db *pgxpool.Pool) *PostgresTaskAuditRepository {
	return &PostgresTaskAuditRepository{db: db}
}

func (r *PostgresTaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	query := `
	INSERT INTO task_audit (actor_id, event_type, entity_id, payload)
	VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		audit.ActorID,
		audit.EventType,
		audit.EntityID,
		audit.Payload,
	)
	return err
}

func (r *PostgresTaskAuditRepository) ListByEntity(ctx context.Context, entityID int) ([]entity.TaskAudit, error) {
	query := `
	SELECT id, actor_id, event_type, entity_id, payload, created_at
	FROM task_audit
	WHERE entity_id = $1
	ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []entity.TaskAudit
	for rows.Next() {
		var audit entity.TaskAudit
		err := rows.Scan(
			&audit.ID,
			&audit.ActorID,
			&audit.EventType,
			&audit.EntityID,
			&audit.Payload,
			&audit.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}

	return audits, rows.Err()
}
