package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JibinB02/pehlahath/internal/entity"
)

const userColumns = `id, name, email, password_hash, phone, role, is_verified,
	verification_token, created_at, last_login`

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
	INSERT INTO "user" (name, email, password_hash, phone, role, verification_token)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.VerificationToken,
	)

	return scanUser(row)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// GetRefs resolves a set of user ids to display identities in one query.
func (r *PostgresUserRepository) GetRefs(ctx context.Context, ids []int) (map[int]entity.UserRef, error) {
	refs := make(map[int]entity.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	query := `SELECT id, name, email, role FROM "user" WHERE id = ANY ($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ref entity.UserRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email, &ref.Role); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}

	return refs, rows.Err()
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int, name, phone string) (*entity.User, error) {
	query := `
	UPDATE "user"
	SET name = COALESCE(NULLIF($2, ''), name),
	    phone = COALESCE(NULLIF($3, ''), phone)
	WHERE id = $1
	RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, name, phone))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// VerifyByToken consumes a verification token, marking the account
// verified. Returns (nil, nil) when the token matches no user.
func (r *PostgresUserRepository) VerifyByToken(ctx context.Context, token string) (*entity.User, error) {
	query := `
	UPDATE "user"
	SET is_verified = TRUE,
	    verification_token = NULL
	WHERE verification_token = $1
	RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresUserRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `UPDATE "user" SET last_login = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.IsVerified,
		&user.VerificationToken,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
