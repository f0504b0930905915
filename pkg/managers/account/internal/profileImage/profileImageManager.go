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

package profileImage

import (
	"context"
	"io"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
	"github.com/pixelhive/pixelhive-go/pkg/storageKey"
)

const maxProfileImageSize = 5 << 20

type Manager interface {
	SetProfileImage(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID, size int64, contentType string, reader io.Reader) error
	GetProfileImage(ctx context.Context, accountId sharedTypes.UUID) (int64, string, io.ReadCloser, error)
}

func New(am account.Manager, b objectStorage.Backend) Manager {
	return &manager{am: am, b: b}
}

type manager struct {
	am account.Manager
	b  objectStorage.Backend
}

func checkCanManage(actor *account.Account, accountId sharedTypes.UUID) error {
	if actor == nil {
		return &errors.NotAuthorizedError{}
	}
	if actor.Id == accountId || actor.IsAdmin {
		return nil
	}
	return &errors.NotAuthorizedError{}
}

func (m *manager) SetProfileImage(ctx context.Context, actor *account.Account, accountId sharedTypes.UUID, size int64, contentType string, reader io.Reader) error {
	if err := checkCanManage(actor, accountId); err != nil {
		return err
	}
	if size <= 0 || size > maxProfileImageSize {
		return &errors.ValidationError{Msg: "invalid image size"}
	}
	if _, err := m.am.Get(ctx, accountId, false); err != nil {
		return errors.Tag(err, "cannot get account")
	}
	key := storageKey.ProfileImage(accountId)
	err := m.b.SendFromStream(ctx, key, reader, objectStorage.SendOptions{
		ContentSize: size,
		ContentType: contentType,
	})
	if err != nil {
		return errors.Tag(err, "cannot upload profile image")
	}
	if err = m.am.SetProfileImagePath(ctx, accountId, key); err != nil {
		return errors.Tag(err, "cannot record profile image path")
	}
	return nil
}

func (m *manager) GetProfileImage(ctx context.Context, accountId sharedTypes.UUID) (int64, string, io.ReadCloser, error) {
	a, err := m.am.Get(ctx, accountId, false)
	if err != nil {
		return 0, "", nil, errors.Tag(err, "cannot get account")
	}
	if a.ProfileImagePath == nil {
		return 0, "", nil, &errors.NotFoundError{}
	}
	return m.b.GetReadStream(ctx, *a.ProfileImagePath)
}
