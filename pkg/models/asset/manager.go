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

package asset

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

// Manager cascades account-level lifecycle changes onto assets. All three
// operations are idempotent, acting on an empty set is a success.
type Manager interface {
	CascadeSoftDelete(ctx context.Context, accountId sharedTypes.UUID) error
	CascadeRestore(ctx context.Context, accountId sharedTypes.UUID) error
	CascadeHardDelete(ctx context.Context, accountId sharedTypes.UUID) error
}

func New(db *pgxpool.Pool) Manager {
	return &manager{db: db}
}

type manager struct {
	db *pgxpool.Pool
}

func (m *manager) CascadeSoftDelete(ctx context.Context, accountId sharedTypes.UUID) error {
	_, err := m.db.Exec(ctx, `
UPDATE assets
SET deleted_at = transaction_timestamp()
WHERE account_id = $1
  AND deleted_at IS NULL
`, accountId)
	return err
}

func (m *manager) CascadeRestore(ctx context.Context, accountId sharedTypes.UUID) error {
	_, err := m.db.Exec(ctx, `
UPDATE assets
SET deleted_at = NULL
WHERE account_id = $1
  AND deleted_at IS NOT NULL
`, accountId)
	return err
}

func (m *manager) CascadeHardDelete(ctx context.Context, accountId sharedTypes.UUID) error {
	_, err := m.db.Exec(ctx, `
DELETE
FROM assets
WHERE account_id = $1
`, accountId)
	return err
}
