package social

import (
	"context"
	"errors"
)

// ErrUnknownAccount is returned by providers that hold no data for an identifier
var ErrUnknownAccount = errors.New("unknown account")

// Activity is everything known about one account, already resolved by the data layer.
// Users referenced here (friends, authors, mentioned accounts) carry at least an ID.
type Activity struct {
	ID        int64
	Handle    string
	Friends   []*User
	Followers []*User
	Timeline  []*Post
	Favorites []*Favorite
	Reshares  []*Reshare
	Mentions  []*Mention
	Comments  []*Comment
}

// ActivityProvider supplies fully populated activity for an account.
// Implementations live outside the analysis core, one per platform or data store.
type ActivityProvider interface {
	Activity(ctx context.Context, id Identifier) (*Activity, error)
}

// ActivityProviderFunc adapts a function to ActivityProvider
type ActivityProviderFunc func(ctx context.Context, id Identifier) (*Activity, error)

// Activity implements ActivityProvider
func (f ActivityProviderFunc) Activity(ctx context.Context, id Identifier) (*Activity, error) {
	return f(ctx, id)
}

// Ref names a user either by identifier or by an already resolved *User.
// APIs accept a Ref and resolve it once at the boundary.
type Ref struct {
	user *User
	id   Identifier
}

// RefUser wraps a resolved user
func RefUser(u *User) Ref {
	return Ref{user: u}
}

// RefID references a user by numeric ID
func RefID(id int64) Ref {
	return Ref{id: IDKey(id)}
}

// RefHandle references a user by handle
func RefHandle(handle string) Ref {
	return Ref{id: HandleKey(handle)}
}

// RefIdentifier references a user by an arbitrary identifier
func RefIdentifier(id Identifier) Ref {
	return Ref{id: id}
}

// User returns the wrapped user, if the ref was built from one
func (r Ref) User() (*User, bool) {
	return r.user, r.user != nil
}

// Identifier returns the identifier the ref carries
func (r Ref) Identifier() Identifier {
	if r.user != nil {
		return IDKey(r.user.ID)
	}
	return r.id
}

func (r Ref) String() string {
	if r.user != nil {
		return r.user.String()
	}
	return r.id.String()
}
