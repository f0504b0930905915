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

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

var ErrCannotDeleteAdministrator = &errors.InvalidStateError{
	Msg: "cannot delete an administrator account",
}

// DeleteAccount soft-deletes an account and cascades the soft-delete onto
// its albums. It returns the record as it was before the deletion.
func (m *manager) DeleteAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) (*account.Account, error) {
	if err := checkIsAdmin(actor); err != nil {
		return nil, err
	}
	a, err := m.am.Get(ctx, accountId, false)
	if err != nil {
		return nil, errors.Tag(err, "cannot get account")
	}
	if a.IsAdmin {
		return nil, ErrCannotDeleteAdministrator
	}
	if err = m.albm.CascadeSoftDelete(ctx, accountId); err != nil {
		return nil, errors.Tag(err, "cannot soft delete albums")
	}
	if err = m.am.SoftDelete(ctx, accountId); err != nil {
		return nil, errors.Tag(err, "cannot soft delete account")
	}
	return a, nil
}

// RestoreAccount clears the deletion timestamp and restores the albums that
// were cascaded along during the soft-delete.
func (m *manager) RestoreAccount(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID) error {
	if err := checkIsAdmin(actor); err != nil {
		return err
	}
	if err := m.am.Restore(ctx, accountId); err != nil {
		return errors.Tag(err, "cannot restore account")
	}
	if err := m.albm.CascadeRestore(ctx, accountId); err != nil {
		return errors.Tag(err, "cannot restore albums")
	}
	return nil
}

func checkIsAdmin(actor *account.Account) error {
	if actor == nil || !actor.IsAdmin {
		return &errors.NotAuthorizedError{}
	}
	return nil
}
