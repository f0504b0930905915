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

// Package deletion owns the deferred account-deletion pipeline: the façade
// soft-delete/restore, the sweep that turns expired soft-deletions into
// queue tasks, and the executor that performs the irreversible purge.
package deletion

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/models/album"
	"github.com/pixelhive/pixelhive-go/pkg/models/asset"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/taskQueue"
)

type Manager interface {
	DeleteAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (*account.Account, error)
	RestoreAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) error
	EnqueueDeletion(ctx context.Context, accountId sharedTypes.UUID) error
	SweepExpired(ctx context.Context) error
	Execute(ctx context.Context, accountId sharedTypes.UUID) (Outcome, error)
	HandleDeletionTask(ctx context.Context, payload []byte) error
}

// DeletionTask is the queue payload. The executor only trusts the account
// identifier, current state is always re-read before any mutation.
type DeletionTask struct {
	AccountId sharedTypes.UUID `json:"account_id"`
	QueuedAt  time.Time        `json:"queued_at"`
}

const recentlyEnqueuedSize = 4096

func New(am account.Manager, albm album.Manager, asm asset.Manager, b objectStorage.Backend, q taskQueue.Manager) (Manager, error) {
	recentlyEnqueued, err := lru.New[sharedTypes.UUID, time.Time](
		recentlyEnqueuedSize,
	)
	if err != nil {
		return nil, err
	}
	return &manager{
		am:               am,
		albm:             albm,
		asm:              asm,
		b:                b,
		q:                q,
		recentlyEnqueued: recentlyEnqueued,
	}, nil
}

type manager struct {
	am   account.Manager
	albm album.Manager
	asm  asset.Manager
	b    objectStorage.Backend
	q    taskQueue.Manager

	// Best effort suppression of duplicate tasks across sweeps. Correctness
	// never depends on it, the executor re-validates every task.
	recentlyEnqueued *lru.Cache[sharedTypes.UUID, time.Time]
}
