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
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pixelhive/pixelhive-go/pkg/managers/account/internal/deletion"
	"github.com/pixelhive/pixelhive-go/pkg/managers/account/internal/management"
	"github.com/pixelhive/pixelhive-go/pkg/managers/account/internal/profileImage"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/models/album"
	"github.com/pixelhive/pixelhive-go/pkg/models/asset"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/options/env"
	"github.com/pixelhive/pixelhive-go/pkg/taskQueue"
)

type Manager interface {
	managementManager
	deletionManager
	profileImageManager
	CronOnce(ctx context.Context) bool
	ProcessDeletionQueue(ctx context.Context) error
}

func New(db *pgxpool.Pool, client redis.UniversalClient, b objectStorage.Backend) (Manager, error) {
	am := account.New(db)
	q := taskQueue.New(client)
	dm, err := deletion.New(am, album.New(db), asset.New(db), b, q)
	if err != nil {
		return nil, err
	}
	return &manager{
		managementManager:   management.New(am, b),
		deletionManager:     dm,
		profileImageManager: profileImage.New(am, b),
		q:                   q,
	}, nil
}

type managementManager = management.Manager
type deletionManager = deletion.Manager
type profileImageManager = profileImage.Manager

type CreateAccountRequest = management.CreateAccountRequest
type UpdateAccountRequest = management.UpdateAccountRequest
type ResetAdminPasswordRequest = management.ResetAdminPasswordRequest

type manager struct {
	managementManager
	deletionManager
	profileImageManager
	q taskQueue.Manager
}

// CronOnce runs a single sweep. It returns false when the sweep failed and
// should be retried on the next tick.
func (m *manager) CronOnce(ctx context.Context) bool {
	if err := m.SweepExpired(ctx); err != nil {
		log.Printf("deletion sweep: %s", err)
		return false
	}
	return true
}

func (m *manager) ProcessDeletionQueue(ctx context.Context) error {
	workers := env.GetInt("DELETION_WORKERS", 5)
	return m.q.Process(
		ctx, taskQueue.AccountDeletion, workers, m.HandleDeletionTask,
	)
}
