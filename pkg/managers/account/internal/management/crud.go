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
	"strings"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/storageKey"
)

func (m *manager) ListAccounts(ctx context.Context, actor *account.Account, includeSoftDeleted bool) ([]account.Account, error) {
	if err := checkIsAdmin(actor); err != nil {
		return nil, err
	}
	return m.am.List(ctx, includeSoftDeleted)
}

func (m *manager) GetAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (*account.Account, error) {
	if err := checkIsSelfOrAdmin(actor, accountId); err != nil {
		return nil, err
	}
	return m.am.Get(ctx, accountId, false)
}

func (m *manager) GetSelf(ctx context.Context, accountId sharedTypes.UUID) (*account.Account, error) {
	return m.am.Get(ctx, accountId, false)
}

func validateEmail(email string) error {
	if len(email) < 3 || !strings.Contains(email, "@") {
		return &errors.ValidationError{Msg: "invalid email"}
	}
	return nil
}

func (m *manager) CreateAccount(ctx context.Context, actor *account.Account, request *CreateAccountRequest) (*account.Account, error) {
	if err := checkIsAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateEmail(request.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(request.Password); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(request.Password)
	if err != nil {
		return nil, err
	}
	id, err := sharedTypes.GenerateUUID()
	if err != nil {
		return nil, err
	}
	a := &account.Account{
		Id:             id,
		Email:          request.Email,
		Name:           request.Name,
		HashedPassword: hashed,
	}
	if err = m.am.Create(ctx, a); err != nil {
		return nil, errors.Tag(err, "cannot create account")
	}
	return a, nil
}

func (m *manager) UpdateAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID, request *UpdateAccountRequest) error {
	if err := checkIsSelfOrAdmin(actor, accountId); err != nil {
		return err
	}
	if err := validateEmail(request.Email); err != nil {
		return err
	}
	if err := m.am.Update(ctx, accountId, request.Email, request.Name); err != nil {
		return errors.Tag(err, "cannot update account")
	}
	return nil
}

func (m *manager) AccountUsage(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (int64, error) {
	if err := checkIsSelfOrAdmin(actor, accountId); err != nil {
		return 0, err
	}
	if _, err := m.am.Get(ctx, accountId, false); err != nil {
		return 0, errors.Tag(err, "cannot get account")
	}
	size, err := m.b.GetDirectorySize(
		ctx, storageKey.ForAccount(accountId, storageKey.Library),
	)
	if err != nil {
		return 0, errors.Tag(err, "cannot get library size")
	}
	return size, nil
}
