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
	"io"
	"sort"
	"time"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/taskQueue"
)

// opLog records cross-component calls in order so tests can assert the
// "storage before repository, dependents before account" contract.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

type fakeAccounts struct {
	log      *opLog
	accounts map[sharedTypes.UUID]*account.Account
}

func newFakeAccounts(log *opLog) *fakeAccounts {
	return &fakeAccounts{
		log:      log,
		accounts: make(map[sharedTypes.UUID]*account.Account),
	}
}

func (f *fakeAccounts) add(a *account.Account) {
	c := *a
	f.accounts[a.Id] = &c
}

func (f *fakeAccounts) Create(_ context.Context, a *account.Account) error {
	f.add(a)
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, accountId sharedTypes.UUID, includeSoftDeleted bool) (*account.Account, error) {
	a, exists := f.accounts[accountId]
	if !exists || (a.DeletedAt != nil && !includeSoftDeleted) {
		return nil, &errors.NotFoundError{}
	}
	c := *a
	return &c, nil
}

func (f *fakeAccounts) GetAdministrator(_ context.Context) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.IsAdmin && a.DeletedAt == nil {
			c := *a
			return &c, nil
		}
	}
	return nil, &errors.NotFoundError{}
}

func (f *fakeAccounts) List(_ context.Context, includeSoftDeleted bool) ([]account.Account, error) {
	all := make([]account.Account, 0)
	for _, a := range f.accounts {
		if a.DeletedAt != nil && !includeSoftDeleted {
			continue
		}
		all = append(all, *a)
	}
	return all, nil
}

func (f *fakeAccounts) Update(_ context.Context, accountId sharedTypes.UUID, email, name string) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.Email = email
	a.Name = name
	return nil
}

func (f *fakeAccounts) SetPassword(_ context.Context, accountId sharedTypes.UUID, hashedPassword string) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.HashedPassword = hashedPassword
	return nil
}

func (f *fakeAccounts) SetProfileImagePath(_ context.Context, accountId sharedTypes.UUID, path string) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.ProfileImagePath = &path
	return nil
}

func (f *fakeAccounts) SoftDelete(_ context.Context, accountId sharedTypes.UUID) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt != nil {
		return &errors.UnprocessableEntityError{
			Msg: "account missing or already deleted",
		}
	}
	now := time.Now()
	a.DeletedAt = &now
	f.log.add("account.softDelete")
	return nil
}

func (f *fakeAccounts) Restore(_ context.Context, accountId sharedTypes.UUID) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt == nil {
		return &errors.UnprocessableEntityError{
			Msg: "account missing or not deleted",
		}
	}
	a.DeletedAt = nil
	f.log.add("account.restore")
	return nil
}

func (f *fakeAccounts) HardDelete(_ context.Context, accountId sharedTypes.UUID) error {
	a, exists := f.accounts[accountId]
	if !exists || a.DeletedAt == nil {
		return &errors.NotFoundError{}
	}
	delete(f.accounts, accountId)
	f.log.add("account.hardDelete")
	return nil
}

func (f *fakeAccounts) ProcessSoftDeleted(_ context.Context, cutOff time.Time, fn func(accountId sharedTypes.UUID, deletedAt time.Time) bool) error {
	matching := make([]*account.Account, 0)
	for _, a := range f.accounts {
		if a.DeletedAt != nil && !a.DeletedAt.After(cutOff) {
			matching = append(matching, a)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].DeletedAt.Before(*matching[j].DeletedAt)
	})
	for _, a := range matching {
		if !fn(a.Id, *a.DeletedAt) {
			return nil
		}
	}
	return nil
}

type fakeAlbums struct {
	log *opLog
}

func (f *fakeAlbums) CascadeSoftDelete(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("albums.cascadeSoftDelete")
	return nil
}

func (f *fakeAlbums) CascadeRestore(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("albums.cascadeRestore")
	return nil
}

func (f *fakeAlbums) CascadeHardDelete(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("albums.cascadeHardDelete")
	return nil
}

type fakeAssets struct {
	log *opLog
}

func (f *fakeAssets) CascadeSoftDelete(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("assets.cascadeSoftDelete")
	return nil
}

func (f *fakeAssets) CascadeRestore(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("assets.cascadeRestore")
	return nil
}

func (f *fakeAssets) CascadeHardDelete(_ context.Context, _ sharedTypes.UUID) error {
	f.log.add("assets.cascadeHardDelete")
	return nil
}

type fakeBackend struct {
	log          *opLog
	failOnPrefix string
}

func (f *fakeBackend) SendFromStream(_ context.Context, _ string, _ io.Reader, _ objectStorage.SendOptions) error {
	return nil
}

func (f *fakeBackend) GetReadStream(_ context.Context, _ string) (int64, string, io.ReadCloser, error) {
	return 0, "", nil, &errors.NotFoundError{}
}

func (f *fakeBackend) GetDirectorySize(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (f *fakeBackend) DeleteObject(_ context.Context, _ string) error {
	return nil
}

func (f *fakeBackend) DeletePrefix(_ context.Context, prefix string) error {
	if f.failOnPrefix != "" && prefix == f.failOnPrefix {
		return errors.New("permission denied")
	}
	f.log.add("storage.delete:" + prefix)
	return nil
}

type fakeQueue struct {
	tasks []DeletionTask
}

func (f *fakeQueue) Enqueue(_ context.Context, _ taskQueue.Kind, payload interface{}) error {
	blob, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	t := DeletionTask{}
	if err = json.Unmarshal(blob, &t); err != nil {
		return err
	}
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeQueue) Process(_ context.Context, _ taskQueue.Kind, _ int, _ func(ctx context.Context, payload []byte) error) error {
	return nil
}

type fixture struct {
	log      *opLog
	accounts *fakeAccounts
	backend  *fakeBackend
	queue    *fakeQueue
	m        Manager
}

func newFixture() *fixture {
	log := &opLog{}
	accounts := newFakeAccounts(log)
	backend := &fakeBackend{log: log}
	queue := &fakeQueue{}
	m, err := New(
		accounts, &fakeAlbums{log: log}, &fakeAssets{log: log},
		backend, queue,
	)
	if err != nil {
		panic(err)
	}
	return &fixture{
		log:      log,
		accounts: accounts,
		backend:  backend,
		queue:    queue,
		m:        m,
	}
}

func mustGenerateUUID() sharedTypes.UUID {
	u, err := sharedTypes.GenerateUUID()
	if err != nil {
		panic(err)
	}
	return u
}

func softDeletedAccount(deletedAgo time.Duration) *account.Account {
	deletedAt := time.Now().Add(-deletedAgo)
	return &account.Account{
		Id:        mustGenerateUUID(),
		Email:     "user@example.com",
		Name:      "user",
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
		DeletedAt: &deletedAt,
	}
}
