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

// Package taskQueue is a redis-list backed task queue with at-least-once
// delivery. Consumers must tolerate duplicate and out-of-order payloads.
package taskQueue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
)

type Kind string

const (
	AccountDeletion Kind = "account-deletion"
)

func (k Kind) queue() string {
	return "tasks:" + string(k)
}

type Manager interface {
	Enqueue(ctx context.Context, kind Kind, payload interface{}) error
	Process(ctx context.Context, kind Kind, workers int, fn func(ctx context.Context, payload []byte) error) error
}

// queueClient is the slice of redis.UniversalClient the queue uses.
type queueClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

const defaultRequeueDelay = 5 * time.Second

func New(client redis.UniversalClient) Manager {
	return &manager{client: client, requeueDelay: defaultRequeueDelay}
}

type manager struct {
	client queueClient

	// requeueDelay throttles a worker after it pushed a failed task back.
	// A deterministic failure would otherwise turn a near-empty queue into
	// a hot loop between BRPop and LPush.
	requeueDelay time.Duration
}

func (m *manager) Enqueue(ctx context.Context, kind Kind, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Tag(err, "encode task payload")
	}
	if err = m.client.LPush(ctx, kind.queue(), body).Err(); err != nil {
		return errors.Tag(err, "enqueue task")
	}
	return nil
}

// Process consumes tasks until ctx is cancelled. A failed handler pushes the
// payload back onto the queue before the worker backs off, which yields
// at-least-once delivery without spinning on a task that keeps failing.
func (m *manager) Process(ctx context.Context, kind Kind, workers int, fn func(ctx context.Context, payload []byte) error) error {
	eg, pCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			for {
				if err := pCtx.Err(); err != nil {
					return nil
				}
				raw, err := m.client.BRPop(
					pCtx, 10*time.Second, kind.queue(),
				).Result()
				if err == redis.Nil {
					continue
				}
				if err != nil {
					if pCtx.Err() != nil {
						return nil
					}
					log.Printf("task queue %s: %s", kind, err)
					time.Sleep(time.Second)
					continue
				}
				// BRPop returns [queue, payload].
				payload := []byte(raw[1])
				if err = fn(pCtx, payload); err != nil {
					log.Printf(
						"task %s failed, requeueing: %s", kind, err,
					)
					if err = m.client.LPush(
						pCtx, kind.queue(), payload,
					).Err(); err != nil {
						log.Printf("requeue %s: %s", kind, err)
					}
					select {
					case <-pCtx.Done():
						return nil
					case <-time.After(m.requeueDelay):
					}
				}
			}
		})
	}
	return eg.Wait()
}
