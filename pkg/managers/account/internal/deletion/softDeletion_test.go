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
	"reflect"
	"testing"
	"time"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
)

func activeAccount() *account.Account {
	return &account.Account{
		Id:        mustGenerateUUID(),
		Email:     "user@example.com",
		Name:      "user",
		CreatedAt: time.Now(),
	}
}

func adminActor() *account.Account {
	a := activeAccount()
	a.Email = "admin@example.com"
	a.IsAdmin = true
	return a
}

func TestDeleteAccount_RequiresAdministratorActor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := activeAccount()
	f.accounts.add(target)

	_, err := f.m.DeleteAccount(ctx, activeAccount(), target.Id)
	if !errors.IsNotAuthorizedError(err) {
		t.Fatalf("DeleteAccount() error = %v, want not authorized", err)
	}
	if len(f.log.ops) != 0 {
		t.Errorf("expected no mutation, got %v", f.log.ops)
	}
}

func TestDeleteAccount_RefusesAdministratorTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := adminActor()
	f.accounts.add(target)

	_, err := f.m.DeleteAccount(ctx, adminActor(), target.Id)
	if !errors.IsInvalidStateError(err) {
		t.Fatalf("DeleteAccount() error = %v, want invalid state", err)
	}
	if len(f.log.ops) != 0 {
		t.Errorf("expected no mutation, got %v", f.log.ops)
	}
	got, err := f.accounts.Get(ctx, target.Id, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.DeletedAt != nil {
		t.Errorf("administrator account was soft-deleted")
	}
}

func TestDeleteAccount_CascadesAlbumsBeforeAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := activeAccount()
	f.accounts.add(target)

	before, err := f.m.DeleteAccount(ctx, adminActor(), target.Id)
	if err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
	want := []string{"albums.cascadeSoftDelete", "account.softDelete"}
	if !reflect.DeepEqual(f.log.ops, want) {
		t.Errorf("ops = %v, want %v", f.log.ops, want)
	}
	if before.DeletedAt != nil {
		t.Errorf("returned record should be the pre-deletion state")
	}
	got, err := f.accounts.Get(ctx, target.Id, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.DeletedAt == nil {
		t.Errorf("account was not soft-deleted")
	}
}

func TestDeleteAccount_MissingAccount(t *testing.T) {
	f := newFixture()
	_, err := f.m.DeleteAccount(
		context.Background(), adminActor(), mustGenerateUUID(),
	)
	if !errors.IsNotFoundError(err) {
		t.Fatalf("DeleteAccount() error = %v, want not found", err)
	}
}

func TestRestoreAccount_CascadesAlbums(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := softDeletedAccount(time.Hour)
	f.accounts.add(target)

	if err := f.m.RestoreAccount(ctx, adminActor(), target.Id); err != nil {
		t.Fatalf("RestoreAccount() error = %v", err)
	}
	want := []string{"account.restore", "albums.cascadeRestore"}
	if !reflect.DeepEqual(f.log.ops, want) {
		t.Errorf("ops = %v, want %v", f.log.ops, want)
	}
	got, err := f.accounts.Get(ctx, target.Id, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.DeletedAt != nil {
		t.Errorf("account still soft-deleted after restore")
	}
}

func TestRestoreAccount_RequiresAdministratorActor(t *testing.T) {
	f := newFixture()
	target := softDeletedAccount(time.Hour)
	f.accounts.add(target)

	err := f.m.RestoreAccount(context.Background(), activeAccount(), target.Id)
	if !errors.IsNotAuthorizedError(err) {
		t.Fatalf("RestoreAccount() error = %v, want not authorized", err)
	}
}
