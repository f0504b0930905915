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

package management

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

func mustGenerateUUID() sharedTypes.UUID {
	id, err := sharedTypes.GenerateUUID()
	if err != nil {
		panic(err)
	}
	return id
}

type fakeAccounts struct {
	accounts map[sharedTypes.UUID]*account.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: make(map[sharedTypes.UUID]*account.Account),
	}
}

func (f *fakeAccounts) add(a *account.Account) {
	f.accounts[a.Id] = a
}

func (f *fakeAccounts) Create(_ context.Context, a *account.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return account.ErrEmailAlreadyRegistered
		}
	}
	copied := *a
	copied.CreatedAt = time.Now()
	f.accounts[a.Id] = &copied
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, accountId sharedTypes.UUID, includeSoftDeleted bool) (*account.Account, error) {
	a, ok := f.accounts[accountId]
	if !ok || (a.DeletedAt != nil && !includeSoftDeleted) {
		return nil, &errors.NotFoundError{}
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccounts) GetAdministrator(_ context.Context) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.IsAdmin && a.DeletedAt == nil {
			copied := *a
			return &copied, nil
		}
	}
	return nil, &errors.NotFoundError{}
}

func (f *fakeAccounts) List(_ context.Context, includeSoftDeleted bool) ([]account.Account, error) {
	accounts := make([]account.Account, 0)
	for _, a := range f.accounts {
		if a.DeletedAt != nil && !includeSoftDeleted {
			continue
		}
		accounts = append(accounts, *a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (f *fakeAccounts) Update(_ context.Context, accountId sharedTypes.UUID, email, name string) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.Email = email
	a.Name = name
	return nil
}

func (f *fakeAccounts) SetPassword(_ context.Context, accountId sharedTypes.UUID, hashedPassword string) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.HashedPassword = hashedPassword
	return nil
}

func (f *fakeAccounts) SetProfileImagePath(_ context.Context, accountId sharedTypes.UUID, path string) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt != nil {
		return &errors.NotFoundError{}
	}
	a.ProfileImagePath = &path
	return nil
}

func (f *fakeAccounts) SoftDelete(_ context.Context, accountId sharedTypes.UUID) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt != nil {
		return &errors.UnprocessableEntityError{}
	}
	now := time.Now()
	a.DeletedAt = &now
	return nil
}

func (f *fakeAccounts) Restore(_ context.Context, accountId sharedTypes.UUID) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt == nil {
		return &errors.UnprocessableEntityError{}
	}
	a.DeletedAt = nil
	return nil
}

func (f *fakeAccounts) HardDelete(_ context.Context, accountId sharedTypes.UUID) error {
	a, ok := f.accounts[accountId]
	if !ok || a.DeletedAt == nil {
		return &errors.NotFoundError{}
	}
	delete(f.accounts, accountId)
	return nil
}

func (f *fakeAccounts) ProcessSoftDeleted(_ context.Context, cutOff time.Time, fn func(accountId sharedTypes.UUID, deletedAt time.Time) bool) error {
	for _, a := range f.accounts {
		if a.DeletedAt == nil || a.DeletedAt.After(cutOff) {
			continue
		}
		if !fn(a.Id, *a.DeletedAt) {
			return nil
		}
	}
	return nil
}

type fakeBackend struct {
	sizes map[string]int64
}

func (f *fakeBackend) SendFromStream(_ context.Context, _ string, _ io.Reader, _ objectStorage.SendOptions) error {
	return nil
}

func (f *fakeBackend) GetReadStream(_ context.Context, _ string) (int64, string, io.ReadCloser, error) {
	return 0, "", nil, &errors.NotFoundError{}
}

func (f *fakeBackend) GetDirectorySize(_ context.Context, prefix string) (int64, error) {
	return f.sizes[prefix], nil
}

func (f *fakeBackend) DeleteObject(_ context.Context, _ string) error {
	return nil
}

func (f *fakeBackend) DeletePrefix(_ context.Context, _ string) error {
	return nil
}

type fixture struct {
	m        Manager
	accounts *fakeAccounts
	backend  *fakeBackend
}

func newFixture() *fixture {
	accounts := newFakeAccounts()
	backend := &fakeBackend{sizes: make(map[string]int64)}
	return &fixture{
		m:        New(accounts, backend),
		accounts: accounts,
		backend:  backend,
	}
}

func adminActor(f *fixture) *account.Account {
	a := &account.Account{
		Id:        mustGenerateUUID(),
		Email:     "admin@example.com",
		Name:      "Administrator",
		IsAdmin:   true,
		CreatedAt: time.Now(),
	}
	f.accounts.add(a)
	return a
}

func regularActor(f *fixture) *account.Account {
	a := &account.Account{
		Id:        mustGenerateUUID(),
		Email:     "user@example.com",
		Name:      "user",
		CreatedAt: time.Now(),
	}
	f.accounts.add(a)
	return a
}
