// PixelHive - account lifecycle for a multi-tenant media platform
// Copyright (C) 2026 PixelHive contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package account

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

type Manager interface {
	Create(ctx context.Context, a *Account) error
	Get(ctx context.Context, accountId sharedTypes.UUID, includeSoftDeleted bool) (*Account, error)
	GetAdministrator(ctx context.Context) (*Account, error)
	List(ctx context.Context, includeSoftDeleted bool) ([]Account, error)
	Update(ctx context.Context, accountId sharedTypes.UUID, email, name string) error
	SetPassword(ctx context.Context, accountId sharedTypes.UUID, hashedPassword string) error
	SetProfileImagePath(ctx context.Context, accountId sharedTypes.UUID, path string) error
	SoftDelete(ctx context.Context, accountId sharedTypes.UUID) error
	Restore(ctx context.Context, accountId sharedTypes.UUID) error
	HardDelete(ctx context.Context, accountId sharedTypes.UUID) error
	ProcessSoftDeleted(ctx context.Context, cutOff time.Time, fn func(accountId sharedTypes.UUID, deletedAt time.Time) bool) error
}

func New(db *pgxpool.Pool) Manager {
	return &manager{db: db}
}

type manager struct {
	db *pgxpool.Pool
}

var ErrEmailAlreadyRegistered = &errors.InvalidStateError{
	Msg: "email already registered",
}

func rewritePostgresErr(err error) error {
	if err == pgx.ErrNoRows {
		return &errors.NotFoundError{}
	}
	if e, ok := err.(*pgconn.PgError); ok && e.Code == "23505" {
		return ErrEmailAlreadyRegistered
	}
	return err
}

const allFields = `id, email, name, is_admin, password_hash, profile_image_path, created_at, deleted_at`

func scanAccount(r pgx.Row) (*Account, error) {
	a := Account{}
	err := r.Scan(
		&a.Id, &a.Email, &a.Name, &a.IsAdmin, &a.HashedPassword,
		&a.ProfileImagePath, &a.CreatedAt, &a.DeletedAt,
	)
	if err != nil {
		return nil, rewritePostgresErr(err)
	}
	return &a, nil
}

func (m *manager) Create(ctx context.Context, a *Account) error {
	_, err := m.db.Exec(ctx, `
INSERT INTO accounts
(id, email, name, is_admin, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, transaction_timestamp())
`, a.Id, a.Email, a.Name, a.IsAdmin, a.HashedPassword)
	return rewritePostgresErr(err)
}

func (m *manager) Get(ctx context.Context, accountId sharedTypes.UUID, includeSoftDeleted bool) (*Account, error) {
	return scanAccount(m.db.QueryRow(ctx, `
SELECT `+allFields+`
FROM accounts
WHERE id = $1
  AND (deleted_at IS NULL OR $2)
`, accountId, includeSoftDeleted))
}

func (m *manager) GetAdministrator(ctx context.Context) (*Account, error) {
	return scanAccount(m.db.QueryRow(ctx, `
SELECT `+allFields+`
FROM accounts
WHERE is_admin = TRUE
  AND deleted_at IS NULL
ORDER BY created_at
LIMIT 1
`))
}

func (m *manager) List(ctx context.Context, includeSoftDeleted bool) ([]Account, error) {
	r, err := m.db.Query(ctx, `
SELECT `+allFields+`
FROM accounts
WHERE deleted_at IS NULL
   OR $1
ORDER BY created_at
`, includeSoftDeleted)
	if err != nil {
		return nil, rewritePostgresErr(err)
	}
	defer r.Close()
	accounts := make([]Account, 0)
	for r.Next() {
		a := Account{}
		err = r.Scan(
			&a.Id, &a.Email, &a.Name, &a.IsAdmin, &a.HashedPassword,
			&a.ProfileImagePath, &a.CreatedAt, &a.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err = r.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (m *manager) Update(ctx context.Context, accountId sharedTypes.UUID, email, name string) error {
	r, err := m.db.Exec(ctx, `
UPDATE accounts
SET email = $2,
    name  = $3
WHERE id = $1
  AND deleted_at IS NULL
`, accountId, email, name)
	if err != nil {
		return rewritePostgresErr(err)
	}
	if r.RowsAffected() == 0 {
		return &errors.NotFoundError{}
	}
	return nil
}

func (m *manager) SetPassword(ctx context.Context, accountId sharedTypes.UUID, hashedPassword string) error {
	r, err := m.db.Exec(ctx, `
UPDATE accounts
SET password_hash = $2
WHERE id = $1
  AND deleted_at IS NULL
`, accountId, hashedPassword)
	if err != nil {
		return err
	}
	if r.RowsAffected() == 0 {
		return &errors.NotFoundError{}
	}
	return nil
}

func (m *manager) SetProfileImagePath(ctx context.Context, accountId sharedTypes.UUID, path string) error {
	r, err := m.db.Exec(ctx, `
UPDATE accounts
SET profile_image_path = $2
WHERE id = $1
  AND deleted_at IS NULL
`, accountId, path)
	if err != nil {
		return err
	}
	if r.RowsAffected() == 0 {
		return &errors.NotFoundError{}
	}
	return nil
}

func (m *manager) SoftDelete(ctx context.Context, accountId sharedTypes.UUID) error {
	r, err := m.db.Exec(ctx, `
UPDATE accounts
SET deleted_at = transaction_timestamp()
WHERE id = $1
  AND deleted_at IS NULL
`, accountId)
	if err != nil {
		return err
	}
	if r.RowsAffected() == 0 {
		return &errors.UnprocessableEntityError{
			Msg: "account missing or already deleted",
		}
	}
	return nil
}

func (m *manager) Restore(ctx context.Context, accountId sharedTypes.UUID) error {
	r, err := m.db.Exec(ctx, `
UPDATE accounts
SET deleted_at = NULL
WHERE id = $1
  AND deleted_at IS NOT NULL
`, accountId)
	if err != nil {
		return err
	}
	if r.RowsAffected() == 0 {
		return &errors.UnprocessableEntityError{
			Msg: "account missing or not deleted",
		}
	}
	return nil
}

// HardDelete removes the record permanently. It only matches soft-deleted
// rows, an active account can never be purged through this path.
func (m *manager) HardDelete(ctx context.Context, accountId sharedTypes.UUID) error {
	r, err := m.db.Exec(ctx, `
DELETE
FROM accounts
WHERE id = $1
  AND deleted_at IS NOT NULL
`, accountId)
	if err != nil {
		return err
	}
	if r.RowsAffected() == 0 {
		return &errors.NotFoundError{}
	}
	return nil
}

// ProcessSoftDeleted pages through accounts soft-deleted on or before cutOff
// in keyset order. fn returning false stops the iteration.
func (m *manager) ProcessSoftDeleted(ctx context.Context, cutOff time.Time, fn func(accountId sharedTypes.UUID, deletedAt time.Time) bool) error {
	lastId := sharedTypes.UUID{}
	lastDeletedAt := time.Time{}
	for {
		r, err := m.db.Query(ctx, `
SELECT id, deleted_at
FROM accounts
WHERE deleted_at IS NOT NULL
  AND deleted_at <= $1
  AND (deleted_at, id) > ($2, $3)
ORDER BY deleted_at, id
LIMIT 100
`, cutOff, lastDeletedAt, lastId)
		if err != nil {
			return err
		}
		n := 0
		ok := true
		for r.Next() {
			accountId := sharedTypes.UUID{}
			deletedAt := time.Time{}
			if err = r.Scan(&accountId, &deletedAt); err != nil {
				r.Close()
				return err
			}
			n++
			lastId = accountId
			lastDeletedAt = deletedAt
			if !fn(accountId, deletedAt) {
				ok = false
			}
		}
		r.Close()
		if err = r.Err(); err != nil {
			return err
		}
		if !ok || n < 100 {
			return nil
		}
	}
}
