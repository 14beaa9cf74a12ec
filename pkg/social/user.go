package social

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Namespace selects which identifier space seeds are expressed in.
type Namespace int

const (
	// NamespaceID identifies accounts by numeric platform ID
	NamespaceID Namespace = iota
	// NamespaceHandle identifies accounts by screen name
	NamespaceHandle
)

// String returns the string representation of a namespace
func (n Namespace) String() string {
	switch n {
	case NamespaceID:
		return "id"
	case NamespaceHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// ParseNamespace converts a config string to a Namespace.
// "screen_name" and "user_id" are accepted for compatibility with recon option names.
func ParseNamespace(s string) (Namespace, error) {
	switch strings.ToLower(s) {
	case "id", "user_id":
		return NamespaceID, nil
	case "handle", "screen_name":
		return NamespaceHandle, nil
	default:
		return 0, fmt.Errorf("unknown namespace %q", s)
	}
}

// Identifier is a key in one namespace. Exactly one of ID or Handle is meaningful.
type Identifier struct {
	Namespace Namespace
	ID        int64
	Handle    string
}

// IDKey returns an identifier in the ID namespace
func IDKey(id int64) Identifier {
	return Identifier{Namespace: NamespaceID, ID: id}
}

// HandleKey returns an identifier in the handle namespace
func HandleKey(handle string) Identifier {
	return Identifier{Namespace: NamespaceHandle, Handle: NormalizeHandle(handle)}
}

// ParseIdentifier interprets a raw seed string in the given namespace
func ParseIdentifier(ns Namespace, raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	switch ns {
	case NamespaceID:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Identifier{}, fmt.Errorf("seed %q is not a numeric id: %w", raw, err)
		}
		return IDKey(id), nil
	case NamespaceHandle:
		h := NormalizeHandle(raw)
		if h == "" {
			return Identifier{}, fmt.Errorf("seed %q is an empty handle", raw)
		}
		return HandleKey(h), nil
	default:
		return Identifier{}, fmt.Errorf("unknown namespace %d", ns)
	}
}

func (i Identifier) String() string {
	if i.Namespace == NamespaceHandle {
		return "@" + i.Handle
	}
	return strconv.FormatInt(i.ID, 10)
}

// NormalizeHandle strips surrounding space and a leading '@'
func NormalizeHandle(h string) string {
	h = strings.TrimSpace(h)
	return strings.TrimPrefix(h, "@")
}

// User is an account. Identity is the numeric ID; Handle is informational once the ID
// is known. Activity relations are cached after the first non-empty load.
type User struct {
	ID     int64
	Handle string

	mu        sync.Mutex
	friends   []*User
	followers []*User
	timeline  []*Post
	favorites []*Favorite
	reshares  []*Reshare
	mentions  []*Mention
	comments  []*Comment
	loaded    bool
}

// NewUser creates a user with a resolved ID
func NewUser(id int64, handle string) *User {
	return &User{ID: id, Handle: NormalizeHandle(handle)}
}

// Key returns the identity key used for equality and hashing
func (u *User) Key() int64 {
	return u.ID
}

// Equal reports whether two users are the same account
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID
}

// Identifier returns the user's key in the given namespace
func (u *User) Identifier(ns Namespace) Identifier {
	if ns == NamespaceHandle {
		return HandleKey(u.Handle)
	}
	return IDKey(u.ID)
}

// Name returns the handle, falling back to the numeric ID
func (u *User) Name() string {
	if u.Handle != "" {
		return u.Handle
	}
	return strconv.FormatInt(u.ID, 10)
}

func (u *User) String() string {
	return fmt.Sprintf("User(%d,%s)", u.ID, u.Handle)
}

// Loaded reports whether activity has been attached
func (u *User) Loaded() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loaded
}

// Friends returns the accounts this user follows
func (u *User) Friends() []*User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.friends
}

// Followers returns the accounts following this user
func (u *User) Followers() []*User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.followers
}

// Timeline returns posts authored by this user
func (u *User) Timeline() []*Post {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.timeline
}

// Favorites returns posts this user liked
func (u *User) Favorites() []*Favorite {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.favorites
}

// Reshares returns posts this user reshared
func (u *User) Reshares() []*Reshare {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.reshares
}

// Mentions returns mentions this user made
func (u *User) Mentions() []*Mention {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.mentions
}

// Comments returns comments this user made on other users' posts
func (u *User) Comments() []*Comment {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.comments
}

// Attach caches the given activity. Relations that already hold data are left as is,
// so attaching twice never duplicates entries.
func (u *User) Attach(a *Activity) {
	if a == nil {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Handle == "" {
		u.Handle = NormalizeHandle(a.Handle)
	}
	if len(u.friends) == 0 {
		u.friends = a.Friends
	}
	if len(u.followers) == 0 {
		u.followers = a.Followers
	}
	if len(u.timeline) == 0 {
		u.timeline = a.Timeline
	}
	if len(u.favorites) == 0 {
		u.favorites = a.Favorites
	}
	if len(u.reshares) == 0 {
		u.reshares = a.Reshares
	}
	if len(u.mentions) == 0 {
		u.mentions = a.Mentions
	}
	if len(u.comments) == 0 {
		u.comments = a.Comments
	}
	u.loaded = true
}

// Load fetches activity from the provider unless it is already cached
func (u *User) Load(ctx context.Context, provider ActivityProvider) error {
	if u.Loaded() {
		return nil
	}

	activity, err := provider.Activity(ctx, IDKey(u.ID))
	if err != nil {
		return fmt.Errorf("load activity for %s: %w", u, err)
	}
	u.Attach(activity)
	return nil
}
