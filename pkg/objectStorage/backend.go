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

package objectStorage

import (
	"context"
	"fmt"
	"io"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/options/env"
)

type Options struct {
	Provider string `json:"provider"`
	Endpoint string `json:"endpoint"`
	Secure   bool   `json:"secure"`
	Key      string `json:"key"`
	Secret   string `json:"secret"`
	Bucket   string `json:"bucket"`
}

func (o *Options) FillFromEnv() {
	o.Provider = env.GetString("OBJECT_STORAGE_PROVIDER", "minio")
	o.Endpoint = env.GetString("OBJECT_STORAGE_ENDPOINT", "localhost:9000")
	o.Secure = env.GetBool("OBJECT_STORAGE_SECURE")
	o.Key = env.MustGetString("OBJECT_STORAGE_KEY")
	o.Secret = env.MustGetString("OBJECT_STORAGE_SECRET")
	o.Bucket = env.GetString("OBJECT_STORAGE_BUCKET", "pixelhive")
}

func (o *Options) Validate() error {
	if o.Endpoint == "" {
		return &errors.ValidationError{Msg: "missing endpoint"}
	}
	if o.Bucket == "" {
		return &errors.ValidationError{Msg: "missing bucket"}
	}
	return nil
}

type SendOptions struct {
	ContentSize int64
	ContentType string
}

type Backend interface {
	SendFromStream(
		ctx context.Context,
		key string,
		reader io.Reader,
		options SendOptions,
	) error

	GetReadStream(
		ctx context.Context,
		key string,
	) (int64, string, io.ReadCloser, error)

	GetDirectorySize(
		ctx context.Context,
		prefix string,
	) (int64, error)

	DeleteObject(
		ctx context.Context,
		key string,
	) error

	DeletePrefix(
		ctx context.Context,
		prefix string,
	) error
}

func FromOptions(options Options) (Backend, error) {
	switch options.Provider {
	case "minio":
		return initMinioBackend(options)
	}
	return nil, fmt.Errorf("unknown provider: %s", options.Provider)
}
