package social

import (
	"fmt"
	"time"
)

// Post is a piece of content authored by a user
type Post struct {
	ID        int64
	Author    *User
	Text      string
	CreatedAt time.Time
}

func (p *Post) String() string {
	return fmt.Sprintf("Post(%d,%v,%s)", p.ID, p.Author, p.CreatedAt.Format(time.RFC3339))
}

// Interaction is an activity record that links an acting user to another account
// through a post. Reshare, Mention, Favorite and Comment implement it.
type Interaction interface {
	// Actor is the user who performed the interaction
	Actor() *User
	// Subject is the account on the receiving end
	Subject() *User
	// PostID identifies the content the interaction refers to
	PostID() int64
}

// Reshare is a post authored by another user that the resharer shared.
// ResharedPost is the resharer's own copy.
type Reshare struct {
	Resharer     *User
	ResharedPost *Post
	OriginalPost *Post
}

func (r *Reshare) Actor() *User { return r.Resharer }

func (r *Reshare) Subject() *User {
	if r.OriginalPost == nil {
		return nil
	}
	return r.OriginalPost.Author
}

func (r *Reshare) PostID() int64 {
	if r.OriginalPost == nil {
		return 0
	}
	return r.OriginalPost.ID
}

func (r *Reshare) String() string {
	return fmt.Sprintf("Reshare(%v => %v)", r.Resharer, r.OriginalPost)
}

// Mention is a post by Mentioner referencing Mentioned
type Mention struct {
	Mentioner *User
	Mentioned *User
	Post      *Post
}

func (m *Mention) Actor() *User   { return m.Mentioner }
func (m *Mention) Subject() *User { return m.Mentioned }

func (m *Mention) PostID() int64 {
	if m.Post == nil {
		return 0
	}
	return m.Post.ID
}

func (m *Mention) String() string {
	return fmt.Sprintf("Mention(%v => %v in %v)", m.Mentioner, m.Mentioned, m.Post)
}

// Favorite is a post by Author liked by User
type Favorite struct {
	User   *User
	Author *User
	Post   *Post
}

func (f *Favorite) Actor() *User   { return f.User }
func (f *Favorite) Subject() *User { return f.Author }

func (f *Favorite) PostID() int64 {
	if f.Post == nil {
		return 0
	}
	return f.Post.ID
}

func (f *Favorite) String() string {
	return fmt.Sprintf("%v liked %v", f.User, f.Post)
}

// Comment is text User attached to a post authored by someone else
type Comment struct {
	User      *User
	Post      *Post
	Text      string
	CreatedAt time.Time
}

func (c *Comment) Actor() *User { return c.User }

func (c *Comment) Subject() *User {
	if c.Post == nil {
		return nil
	}
	return c.Post.Author
}

func (c *Comment) PostID() int64 {
	if c.Post == nil {
		return 0
	}
	return c.Post.ID
}

func (c *Comment) String() string {
	return fmt.Sprintf("Comment(%v,%v,%s)", c.User, c.Post, c.CreatedAt.Format(time.RFC3339))
}
