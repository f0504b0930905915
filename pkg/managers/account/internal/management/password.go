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
	"crypto/rand"
	"encoding/hex"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/options/env"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

const (
	minPasswordLength         = 8
	lenBytesFallbackPassword  = 12
	administratorFallbackName = "Administrator"
)

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &errors.ValidationError{Msg: "password too short"}
	}
	// bcrypt silently truncates beyond 72 bytes.
	if len(password) > 72 {
		return &errors.ValidationError{Msg: "password too long"}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return "", errors.Tag(err, "hash password")
	}
	return string(hashed), nil
}

func generateFallbackPassword() (string, error) {
	b := make([]byte, lenBytesFallbackPassword)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Tag(err, "generate fallback password")
	}
	return hex.EncodeToString(b), nil
}

// ResetAdminPassword sets a new password on the administrator account and
// returns the plaintext. When the request carries no password, a random
// fallback credential is generated.
func (m *manager) ResetAdminPassword(ctx context.Context, request *ResetAdminPasswordRequest) (string, error) {
	password := request.Password
	if password == "" {
		generated, err := generateFallbackPassword()
		if err != nil {
			return "", err
		}
		password = generated
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}
	admin, err := m.am.GetAdministrator(ctx)
	if err != nil {
		return "", errors.Tag(err, "cannot get administrator")
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return "", err
	}
	if err = m.am.SetPassword(ctx, admin.Id, hashed); err != nil {
		return "", errors.Tag(err, "cannot set password")
	}
	return password, nil
}

// EnsureAdministrator creates the administrator account on first start.
func (m *manager) EnsureAdministrator(ctx context.Context) error {
	_, err := m.am.GetAdministrator(ctx)
	if err == nil {
		return nil
	}
	if !errors.IsNotFoundError(err) {
		return errors.Tag(err, "cannot get administrator")
	}
	email := env.GetString("ADMIN_EMAIL", "admin@localhost")
	password, err := generateFallbackPassword()
	if err != nil {
		return err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	id, err := sharedTypes.GenerateUUID()
	if err != nil {
		return err
	}
	a := &account.Account{
		Id:             id,
		Email:          email,
		Name:           administratorFallbackName,
		IsAdmin:        true,
		HashedPassword: hashed,
	}
	if err = m.am.Create(ctx, a); err != nil {
		if errors.IsInvalidStateError(err) {
			// Lost the race against another instance.
			return nil
		}
		return errors.Tag(err, "cannot create administrator")
	}
	log.Printf(
		"created administrator account %s with password %s", email, password,
	)
	return nil
}
