/*
Copyright 2026 CoreLedger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package redlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestLocker_Lock_Success(t *testing.T) {
	client := newTestClient(t)
	locker := NewLocker(client, "outbox-relay")

	err := locker.Lock(context.Background(), 5*time.Second)
	assert.NoError(t, err)
}

func TestLocker_Lock_AlreadyHeld(t *testing.T) {
	client := newTestClient(t)
	first := NewLocker(client, "outbox-relay")
	second := NewLocker(client, "outbox-relay")

	require.NoError(t, first.Lock(context.Background(), 5*time.Second))

	err := second.Lock(context.Background(), 5*time.Second)
	assert.EqualError(t, err, "lock for key outbox-relay is already held")
}

func TestLocker_Unlock_Success(t *testing.T) {
	client := newTestClient(t)
	locker := NewLocker(client, "outbox-relay")

	require.NoError(t, locker.Lock(context.Background(), 5*time.Second))
	assert.NoError(t, locker.Unlock(context.Background()))

	// Once released, another holder can acquire it.
	other := NewLocker(client, "outbox-relay")
	assert.NoError(t, other.Lock(context.Background(), 5*time.Second))
}

func TestLocker_Unlock_NotHolder(t *testing.T) {
	client := newTestClient(t)
	holder := NewLocker(client, "outbox-relay")
	impostor := NewLocker(client, "outbox-relay")

	require.NoError(t, holder.Lock(context.Background(), 5*time.Second))

	err := impostor.Unlock(context.Background())
	assert.EqualError(t, err, "unlock failed, either lock expired or you're not the lock holder for key outbox-relay")
}

func TestLocker_ExtendLock_Success(t *testing.T) {
	client := newTestClient(t)
	locker := NewLocker(client, "outbox-relay")

	require.NoError(t, locker.Lock(context.Background(), 5*time.Second))
	assert.NoError(t, locker.ExtendLock(context.Background(), 10*time.Second))
}

func TestLocker_ExtendLock_NotHolder(t *testing.T) {
	client := newTestClient(t)
	holder := NewLocker(client, "outbox-relay")
	impostor := NewLocker(client, "outbox-relay")

	require.NoError(t, holder.Lock(context.Background(), 5*time.Second))

	err := impostor.ExtendLock(context.Background(), 10*time.Second)
	assert.EqualError(t, err, "lock extension failed for key outbox-relay, either lock expired or you're not the holder")
}
