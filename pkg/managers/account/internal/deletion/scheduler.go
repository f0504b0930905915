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

package deletion

import (
	"context"
	"log"
	"time"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/taskQueue"
)

// enqueueSuppressionWindow is how long a sweep skips an account it already
// enqueued. It stays well below the sweep cadence so a task lost after
// dequeue is re-produced by the next sweep rather than parked for the rest
// of the grace period.
const enqueueSuppressionWindow = time.Hour

// SweepExpired finds every soft-deleted account past the grace period and
// enqueues one deletion task per account. Re-running on any schedule is safe,
// the executor tolerates duplicate tasks. Repository or queue errors abort
// the sweep and surface to the caller, the next scheduled run retries.
func (m *manager) SweepExpired(ctx context.Context) error {
	now := time.Now()
	cutOff := now.Add(-GracePeriod)
	n := 0
	var enqueueErr error
	err := m.am.ProcessSoftDeleted(
		ctx, cutOff,
		func(accountId sharedTypes.UUID, deletedAt time.Time) bool {
			if !IsEligible(&deletedAt, now) {
				return true
			}
			if queuedAt, ok := m.recentlyEnqueued.Get(accountId); ok &&
				now.Sub(queuedAt) < enqueueSuppressionWindow {
				return true
			}
			if enqueueErr = m.EnqueueDeletion(ctx, accountId); enqueueErr != nil {
				return false
			}
			n++
			return true
		},
	)
	if err != nil {
		return errors.Tag(err, "cannot iterate soft-deleted accounts")
	}
	if enqueueErr != nil {
		return enqueueErr
	}
	if n > 0 {
		log.Printf("deletion sweep: enqueued %d account(s)", n)
	}
	return nil
}

// EnqueueDeletion produces a single deletion task for the account. Exposed
// for administrative use, the regular producer is SweepExpired.
func (m *manager) EnqueueDeletion(ctx context.Context, accountId sharedTypes.UUID) error {
	now := time.Now()
	err := m.q.Enqueue(ctx, taskQueue.AccountDeletion, DeletionTask{
		AccountId: accountId,
		QueuedAt:  now,
	})
	if err != nil {
		return errors.Tag(err, "cannot enqueue deletion task")
	}
	m.recentlyEnqueued.Add(accountId, now)
	sweepEnqueuedTotal.Inc()
	return nil
}
