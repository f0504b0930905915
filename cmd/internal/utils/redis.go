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

package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/options/redisOptions"
)

func MustConnectRedis(timeout time.Duration) redis.UniversalClient {
	ctx, done := context.WithTimeout(context.Background(), timeout)
	defer done()

	client := redis.NewUniversalClient(redisOptions.Parse())
	if err := client.Ping(ctx).Err(); err != nil {
		panic(errors.Tag(err, "cannot talk to redis"))
	}
	return client
}
