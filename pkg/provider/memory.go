package provider

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-social/pkg/social"
)

// Dataset is a serialisable snapshot of platform activity, keyed by numeric IDs.
// It mirrors the recon tables: users, posts, followers, reshares, mentions,
// favorites and comments.
type Dataset struct {
	Users     []UserRecord     `yaml:"users" json:"users"`
	Posts     []PostRecord     `yaml:"posts" json:"posts"`
	Follows   []FollowRecord   `yaml:"follows" json:"follows"`
	Reshares  []ReshareRecord  `yaml:"reshares" json:"reshares"`
	Mentions  []MentionRecord  `yaml:"mentions" json:"mentions"`
	Favorites []FavoriteRecord `yaml:"favorites" json:"favorites"`
	Comments  []CommentRecord  `yaml:"comments" json:"comments"`
}

type UserRecord struct {
	ID     int64  `yaml:"id" json:"id"`
	Handle string `yaml:"handle" json:"handle"`
}

type PostRecord struct {
	ID        int64     `yaml:"id" json:"id"`
	Author    int64     `yaml:"author" json:"author"`
	Text      string    `yaml:"text" json:"text"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// FollowRecord states that Follower follows User
type FollowRecord struct {
	Follower int64 `yaml:"follower" json:"follower"`
	User     int64 `yaml:"user" json:"user"`
}

// ReshareRecord states that User shared Original as their own post Post
type ReshareRecord struct {
	User     int64 `yaml:"user" json:"user"`
	Post     int64 `yaml:"post" json:"post"`
	Original int64 `yaml:"original" json:"original"`
}

type MentionRecord struct {
	User      int64 `yaml:"user" json:"user"`
	Mentioned int64 `yaml:"mentioned" json:"mentioned"`
	Post      int64 `yaml:"post" json:"post"`
}

type FavoriteRecord struct {
	User int64 `yaml:"user" json:"user"`
	Post int64 `yaml:"post" json:"post"`
}

type CommentRecord struct {
	User      int64     `yaml:"user" json:"user"`
	Post      int64     `yaml:"post" json:"post"`
	Text      string    `yaml:"text" json:"text"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// LoadDataset reads a YAML (or JSON, which is valid YAML) dataset file
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Memory is an in-process ActivityProvider. It doubles as a builder for fixtures.
type Memory struct {
	mu       sync.RWMutex
	handles  map[int64]string
	byHandle map[string]int64
	posts    map[int64]PostRecord
	ds       Dataset
}

// NewMemory creates an empty provider
func NewMemory() *Memory {
	return &Memory{
		handles:  make(map[int64]string),
		byHandle: make(map[string]int64),
		posts:    make(map[int64]PostRecord),
	}
}

// FromDataset creates a provider from a dataset, checking that every reference
// points to a known user or post.
func FromDataset(ds *Dataset) (*Memory, error) {
	m := NewMemory()
	for _, u := range ds.Users {
		m.AddUser(u.ID, u.Handle)
	}
	for _, p := range ds.Posts {
		if err := m.requireUser(p.Author); err != nil {
			return nil, fmt.Errorf("post %d: %w", p.ID, err)
		}
		m.AddPost(p.ID, p.Author, p.Text, p.CreatedAt)
	}
	for _, f := range ds.Follows {
		if err := m.requireUsers(f.Follower, f.User); err != nil {
			return nil, fmt.Errorf("follow %d->%d: %w", f.Follower, f.User, err)
		}
		m.Follow(f.Follower, f.User)
	}
	for _, r := range ds.Reshares {
		if err := m.requirePosts(r.Post, r.Original); err != nil {
			return nil, fmt.Errorf("reshare by %d: %w", r.User, err)
		}
		m.Reshare(r.User, r.Post, r.Original)
	}
	for _, mn := range ds.Mentions {
		if err := m.requireUsers(mn.User, mn.Mentioned); err != nil {
			return nil, fmt.Errorf("mention by %d: %w", mn.User, err)
		}
		if err := m.requirePosts(mn.Post); err != nil {
			return nil, fmt.Errorf("mention by %d: %w", mn.User, err)
		}
		m.Mention(mn.User, mn.Mentioned, mn.Post)
	}
	for _, f := range ds.Favorites {
		if err := m.requirePosts(f.Post); err != nil {
			return nil, fmt.Errorf("favorite by %d: %w", f.User, err)
		}
		m.Favorite(f.User, f.Post)
	}
	for _, c := range ds.Comments {
		if err := m.requirePosts(c.Post); err != nil {
			return nil, fmt.Errorf("comment by %d: %w", c.User, err)
		}
		m.Comment(c.User, c.Post, c.Text, c.CreatedAt)
	}
	return m, nil
}

func (m *Memory) requireUser(id int64) error {
	if _, ok := m.handles[id]; !ok {
		return fmt.Errorf("%w: user %d", social.ErrUnknownAccount, id)
	}
	return nil
}

func (m *Memory) requireUsers(ids ...int64) error {
	for _, id := range ids {
		if err := m.requireUser(id); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) requirePosts(ids ...int64) error {
	for _, id := range ids {
		if _, ok := m.posts[id]; !ok {
			return fmt.Errorf("unknown post %d", id)
		}
	}
	return nil
}

// Dataset returns a copy of the accumulated dataset
func (m *Memory) Dataset() Dataset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ds
}

// AddUser registers an account
func (m *Memory) AddUser(id int64, handle string) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	handle = social.NormalizeHandle(handle)
	if _, ok := m.handles[id]; !ok {
		m.ds.Users = append(m.ds.Users, UserRecord{ID: id, Handle: handle})
	}
	m.handles[id] = handle
	if handle != "" {
		m.byHandle[handle] = id
	}
	return m
}

// AddPost registers a post
func (m *Memory) AddPost(id, author int64, text string, createdAt time.Time) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := PostRecord{ID: id, Author: author, Text: text, CreatedAt: createdAt}
	if _, ok := m.posts[id]; !ok {
		m.ds.Posts = append(m.ds.Posts, rec)
	}
	m.posts[id] = rec
	return m
}

// Follow records that follower follows user
func (m *Memory) Follow(follower, user int64) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Follows = append(m.ds.Follows, FollowRecord{Follower: follower, User: user})
	return m
}

// Reshare records that user shared original as their own post
func (m *Memory) Reshare(user, post, original int64) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Reshares = append(m.ds.Reshares, ReshareRecord{User: user, Post: post, Original: original})
	return m
}

// Mention records that user mentioned another account in post
func (m *Memory) Mention(user, mentioned, post int64) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Mentions = append(m.ds.Mentions, MentionRecord{User: user, Mentioned: mentioned, Post: post})
	return m
}

// Favorite records that user liked post
func (m *Memory) Favorite(user, post int64) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Favorites = append(m.ds.Favorites, FavoriteRecord{User: user, Post: post})
	return m
}

// Comment records that user commented text on post
func (m *Memory) Comment(user, post int64, text string, createdAt time.Time) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds.Comments = append(m.ds.Comments, CommentRecord{User: user, Post: post, Text: text, CreatedAt: createdAt})
	return m
}

// Activity implements social.ActivityProvider
func (m *Memory) Activity(ctx context.Context, id social.Identifier) (*social.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	uid, err := m.resolve(id)
	if err != nil {
		return nil, err
	}

	a := &social.Activity{ID: uid, Handle: m.handles[uid]}
	self := m.user(uid)

	for _, f := range m.ds.Follows {
		if f.Follower == uid {
			a.Friends = append(a.Friends, m.user(f.User))
		}
		if f.User == uid {
			a.Followers = append(a.Followers, m.user(f.Follower))
		}
	}
	for _, p := range m.ds.Posts {
		if p.Author == uid {
			a.Timeline = append(a.Timeline, m.post(p.ID))
		}
	}
	for _, r := range m.ds.Reshares {
		if r.User != uid {
			continue
		}
		a.Reshares = append(a.Reshares, &social.Reshare{
			Resharer:     self,
			ResharedPost: m.post(r.Post),
			OriginalPost: m.post(r.Original),
		})
	}
	for _, mn := range m.ds.Mentions {
		if mn.User != uid {
			continue
		}
		a.Mentions = append(a.Mentions, &social.Mention{
			Mentioner: self,
			Mentioned: m.user(mn.Mentioned),
			Post:      m.post(mn.Post),
		})
	}
	for _, f := range m.ds.Favorites {
		if f.User != uid {
			continue
		}
		post := m.post(f.Post)
		a.Favorites = append(a.Favorites, &social.Favorite{User: self, Author: post.Author, Post: post})
	}
	for _, c := range m.ds.Comments {
		if c.User != uid {
			continue
		}
		a.Comments = append(a.Comments, &social.Comment{
			User:      self,
			Post:      m.post(c.Post),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return a, nil
}

func (m *Memory) resolve(id social.Identifier) (int64, error) {
	switch id.Namespace {
	case social.NamespaceHandle:
		uid, ok := m.byHandle[id.Handle]
		if !ok {
			return 0, fmt.Errorf("%w: %s", social.ErrUnknownAccount, id)
		}
		return uid, nil
	default:
		if _, ok := m.handles[id.ID]; !ok {
			return 0, fmt.Errorf("%w: %s", social.ErrUnknownAccount, id)
		}
		return id.ID, nil
	}
}

func (m *Memory) user(id int64) *social.User {
	return social.NewUser(id, m.handles[id])
}

func (m *Memory) post(id int64) *social.Post {
	rec, ok := m.posts[id]
	if !ok {
		return &social.Post{ID: id}
	}
	return &social.Post{
		ID:        rec.ID,
		Author:    m.user(rec.Author),
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt,
	}
}
