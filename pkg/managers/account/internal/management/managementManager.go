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

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

type CreateAccountRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UpdateAccountRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ResetAdminPasswordRequest struct {
	Password string `json:"password"`
}

type Manager interface {
	ListAccounts(ctx context.Context, actor *account.Account, includeSoftDeleted bool) ([]account.Account, error)
	GetAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (*account.Account, error)
	GetSelf(ctx context.Context, accountId sharedTypes.UUID) (*account.Account, error)
	CreateAccount(ctx context.Context, actor *account.Account, request *CreateAccountRequest) (*account.Account, error)
	UpdateAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID, request *UpdateAccountRequest) error
	AccountUsage(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (int64, error)
	ResetAdminPassword(ctx context.Context, request *ResetAdminPasswordRequest) (string, error)
	EnsureAdministrator(ctx context.Context) error
}

func New(am account.Manager, b objectStorage.Backend) Manager {
	return &manager{am: am, b: b}
}

type manager struct {
	am account.Manager
	b  objectStorage.Backend
}

func checkIsAdmin(actor *account.Account) error {
	if actor == nil || !actor.IsAdmin {
		return &errors.NotAuthorizedError{}
	}
	return nil
}

func checkIsSelfOrAdmin(actor *account.Account, accountId sharedTypes.UUID) error {
	if actor != nil && actor.Id == accountId {
		return nil
	}
	return checkIsAdmin(actor)
}
