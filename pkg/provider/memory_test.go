package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-social/pkg/social"
)

const fixtureYAML = `
users:
  - {id: 1, handle: alice}
  - {id: 2, handle: "@bob"}
  - {id: 3, handle: carol}
posts:
  - {id: 10, author: 2, text: "original by bob", created_at: 2021-03-01T10:00:00Z}
  - {id: 11, author: 1, text: "RT original by bob", created_at: 2021-03-01T11:00:00Z}
  - {id: 12, author: 1, text: "hello @carol", created_at: 2021-03-02T09:00:00Z}
follows:
  - {follower: 1, user: 2}
  - {follower: 3, user: 1}
reshares:
  - {user: 1, post: 11, original: 10}
mentions:
  - {user: 1, mentioned: 3, post: 12}
favorites:
  - {user: 3, post: 12}
comments:
  - {user: 3, post: 10, text: "agreed", created_at: 2021-03-01T12:00:00Z}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))
	return path
}

func TestLoadDatasetAndActivity(t *testing.T) {
	ds, err := LoadDataset(writeFixture(t))
	require.NoError(t, err)
	require.Len(t, ds.Users, 3)

	m, err := FromDataset(ds)
	require.NoError(t, err)

	a, err := m.Activity(context.Background(), social.HandleKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	require.Len(t, a.Friends, 1)
	assert.Equal(t, "bob", a.Friends[0].Handle)
	require.Len(t, a.Followers, 1)
	assert.Equal(t, int64(3), a.Followers[0].ID)
	assert.Len(t, a.Timeline, 2)

	require.Len(t, a.Reshares, 1)
	assert.Equal(t, int64(10), a.Reshares[0].OriginalPost.ID)
	assert.Equal(t, int64(11), a.Reshares[0].ResharedPost.ID)
	assert.Equal(t, int64(2), a.Reshares[0].Subject().ID)

	require.Len(t, a.Mentions, 1)
	assert.Equal(t, int64(3), a.Mentions[0].Mentioned.ID)

	c, err := m.Activity(context.Background(), social.IDKey(3))
	require.NoError(t, err)
	require.Len(t, c.Favorites, 1)
	assert.Equal(t, int64(1), c.Favorites[0].Author.ID)
	require.Len(t, c.Comments, 1)
	assert.Equal(t, "agreed", c.Comments[0].Text)
	assert.Equal(t, time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC), c.Comments[0].CreatedAt)
}

func TestActivityUnknownAccount(t *testing.T) {
	m := NewMemory().AddUser(1, "alice")

	_, err := m.Activity(context.Background(), social.IDKey(99))
	assert.True(t, errors.Is(err, social.ErrUnknownAccount))

	_, err = m.Activity(context.Background(), social.HandleKey("nobody"))
	assert.True(t, errors.Is(err, social.ErrUnknownAccount))
}

func TestActivityCancelledContext(t *testing.T) {
	m := NewMemory().AddUser(1, "alice")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Activity(ctx, social.IDKey(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromDatasetRejectsDanglingReferences(t *testing.T) {
	_, err := FromDataset(&Dataset{
		Users:   []UserRecord{{ID: 1, Handle: "alice"}},
		Follows: []FollowRecord{{Follower: 1, User: 2}},
	})
	assert.ErrorIs(t, err, social.ErrUnknownAccount)

	_, err = FromDataset(&Dataset{
		Users:     []UserRecord{{ID: 1, Handle: "alice"}},
		Favorites: []FavoriteRecord{{User: 1, Post: 5}},
	})
	assert.Error(t, err)
}

func TestMemoryBuilderDataset(t *testing.T) {
	m := NewMemory().
		AddUser(1, "alice").
		AddUser(2, "bob").
		Follow(1, 2)

	ds := m.Dataset()
	assert.Len(t, ds.Users, 2)
	assert.Equal(t, []FollowRecord{{Follower: 1, User: 2}}, ds.Follows)
}
