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
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
)

func initMinioBackend(o Options) (Backend, error) {
	mc, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.Key, o.Secret, ""),
		Secure: o.Secure,
	})
	if err != nil {
		return nil, err
	}
	return &minioBackend{
		mc:     mc,
		bucket: o.Bucket,
	}, nil
}

type minioBackend struct {
	mc     *minio.Client
	bucket string
}

func rewriteError(err error) error {
	if err == nil {
		return nil
	}
	minioError, isMinioError := err.(minio.ErrorResponse)
	if isMinioError && minioError.Code == "NoSuchKey" {
		return &errors.NotFoundError{}
	}
	return err
}

func (m *minioBackend) SendFromStream(ctx context.Context, key string, reader io.Reader, options SendOptions) error {
	_, err := m.mc.PutObject(ctx, m.bucket, key, reader, options.ContentSize, minio.PutObjectOptions{
		ContentType:    options.ContentType,
		SendContentMd5: true,
	})
	return rewriteError(err)
}

func (m *minioBackend) GetReadStream(ctx context.Context, key string) (int64, string, io.ReadCloser, error) {
	r, err := m.mc.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, "", nil, errors.Tag(rewriteError(err), "get")
	}
	s, err := r.Stat()
	if err != nil {
		_ = r.Close()
		return 0, "", nil, errors.Tag(rewriteError(err), "stat")
	}
	return s.Size, s.ContentType, r, nil
}

func (m *minioBackend) GetDirectorySize(ctx context.Context, prefix string) (int64, error) {
	c := m.mc.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	var sum int64
	for info := range c {
		if err := info.Err; err != nil {
			return 0, rewriteError(err)
		}
		sum += info.Size
	}
	return sum, nil
}

func (m *minioBackend) DeleteObject(ctx context.Context, key string) error {
	return rewriteError(
		m.mc.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}),
	)
}

// DeletePrefix removes every object below prefix. An already empty prefix
// yields an empty listing and is a success.
func (m *minioBackend) DeletePrefix(ctx context.Context, prefix string) error {
	objects := m.mc.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	objectErrors := m.mc.RemoveObjects(ctx, m.bucket, objects, minio.RemoveObjectsOptions{})

	for objectError := range objectErrors {
		err := rewriteError(objectError.Err)
		if errors.IsNotFoundError(err) {
			// Deleted by a concurrent execution.
			continue
		}
		return err
	}
	return nil
}
