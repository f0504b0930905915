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
	"encoding/json"
	"log"
	"time"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/storageKey"
)

type Outcome string

const (
	// OutcomeCompleted means the account and all its resources are gone.
	OutcomeCompleted Outcome = "completed"
	// OutcomeSkipped means the account exists but may not be purged, e.g. it
	// was restored after the task was queued. Not an error.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNoOp means the account is already gone, likely purged by a
	// prior or concurrent execution. Not an error.
	OutcomeNoOp Outcome = "no-op"
)

// Execute performs the irreversible purge for one account. Every step is
// idempotent and the account record goes last, so a failed execution can be
// retried as a whole and converges forward. Storage is removed before any
// repository hard-delete: a retry after a partial storage failure re-attempts
// the already-partially-cleaned prefixes with no duplicate repository effects.
func (m *manager) Execute(ctx context.Context, accountId sharedTypes.UUID) (Outcome, error) {
	a, err := m.am.Get(ctx, accountId, true)
	if err != nil {
		if errors.IsNotFoundError(err) {
			executionsTotal.WithLabelValues(string(OutcomeNoOp)).Inc()
			return OutcomeNoOp, nil
		}
		executionsTotal.WithLabelValues("failed").Inc()
		return "", errors.Tag(err, "cannot get account")
	}
	if a.IsAdmin {
		log.Printf("deletion: account %s is an administrator, skipping", accountId)
		executionsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	}
	if !IsEligible(a.DeletedAt, time.Now()) {
		log.Printf("deletion: account %s is not eligible, skipping", accountId)
		executionsTotal.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	}

	for _, c := range storageKey.Categories() {
		prefix := storageKey.ForAccount(accountId, c)
		if err = m.b.DeletePrefix(ctx, prefix); err != nil {
			executionsTotal.WithLabelValues("failed").Inc()
			return "", errors.Tag(err, "cannot remove "+prefix)
		}
	}

	if err = m.albm.CascadeHardDelete(ctx, accountId); err != nil {
		executionsTotal.WithLabelValues("failed").Inc()
		return "", errors.Tag(err, "cannot delete albums")
	}
	if err = m.asm.CascadeHardDelete(ctx, accountId); err != nil {
		executionsTotal.WithLabelValues("failed").Inc()
		return "", errors.Tag(err, "cannot delete assets")
	}

	if err = m.am.HardDelete(ctx, accountId); err != nil {
		if !errors.IsNotFoundError(err) {
			executionsTotal.WithLabelValues("failed").Inc()
			return "", errors.Tag(err, "cannot delete account")
		}
		// A concurrent execution got there first.
	}
	executionsTotal.WithLabelValues(string(OutcomeCompleted)).Inc()
	return OutcomeCompleted, nil
}

// HandleDeletionTask is the queue consumer entry point. Failed executions
// return the error to the queue for retry, skipped and no-op outcomes ack.
func (m *manager) HandleDeletionTask(ctx context.Context, payload []byte) error {
	t := DeletionTask{}
	if err := json.Unmarshal(payload, &t); err != nil {
		// Not retryable, drop it.
		log.Printf("deletion: malformed task payload: %s", err)
		return nil
	}
	outcome, err := m.Execute(ctx, t.AccountId)
	if err != nil {
		return err
	}
	log.Printf("deletion: account %s: %s", t.AccountId, outcome)
	return nil
}
