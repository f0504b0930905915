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

// Package storageKey maps an account and a resource category onto a
// deterministic object storage prefix. Pure string assembly, no state.
package storageKey

import (
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

type Category string

const (
	Library      Category = "library"
	Uploads      Category = "upload"
	Profile      Category = "profile"
	Thumbs       Category = "thumbs"
	EncodedVideo Category = "encoded-video"
)

func Categories() []Category {
	return []Category{Library, Uploads, Profile, Thumbs, EncodedVideo}
}

// ForAccount returns the prefix holding every object of the given category
// for one account. The trailing slash keeps accounts with a shared id prefix
// from matching each other's objects.
func ForAccount(accountId sharedTypes.UUID, c Category) string {
	return string(c) + "/" + accountId.String() + "/"
}

func ProfileImage(accountId sharedTypes.UUID) string {
	return ForAccount(accountId, Profile) + "avatar"
}
