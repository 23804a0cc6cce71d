package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JibinB02/pehlahath/internal/entity"
)

const reportColumns = `id, type, title, description, location, severity, images, created_at`

type PostgresReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) Create(ctx context.Context, report *entity.Report) (*entity.Report, error) {
	query := `
	INSERT INTO report (type, title, description, location, severity, images)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + reportColumns

	row := r.db.QueryRow(ctx, query,
		report.Type,
		report.Title,
		report.Description,
		report.Location,
		report.Severity,
		report.Images,
	)

	return scanReport(row)
}

func (r *PostgresReportRepository) GetByID(ctx context.Context, id int) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM report WHERE id = $1`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return report, nil
}

func (r *PostgresReportRepository) List(ctx context.Context) ([]entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM report ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []entity.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return reports, rows.Err()
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var report entity.Report
	err := row.Scan(
		&report.ID,
		&report.Type,
		&report.Title,
		&report.Description,
		&report.Location,
		&report.Severity,
		&report.Images,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
