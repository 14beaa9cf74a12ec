package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/social"
)

// Postgres reads account activity from the recon tables
type Postgres struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPostgres connects to databaseURL and verifies the connection
func NewPostgres(ctx context.Context, databaseURL string, logger logging.Logger) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Postgres{pool: pool, logger: logger.With(logging.Component("postgres"))}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	p.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	screen_name TEXT
);

CREATE TABLE IF NOT EXISTS posts (
	id BIGINT PRIMARY KEY,
	author_id BIGINT NOT NULL REFERENCES users(id),
	text TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS followers (
	user_id BIGINT REFERENCES users(id),
	follower_id BIGINT REFERENCES users(id),
	PRIMARY KEY (user_id, follower_id)
);

CREATE TABLE IF NOT EXISTS favorites (
	user_id BIGINT REFERENCES users(id),
	post_id BIGINT REFERENCES posts(id),
	PRIMARY KEY (user_id, post_id)
);

CREATE TABLE IF NOT EXISTS mentions (
	user_id BIGINT REFERENCES users(id),
	mentioned_id BIGINT REFERENCES users(id),
	post_id BIGINT REFERENCES posts(id),
	PRIMARY KEY (user_id, mentioned_id, post_id)
);

CREATE TABLE IF NOT EXISTS reshares (
	post_id BIGINT REFERENCES posts(id),
	user_id BIGINT REFERENCES users(id),
	reshared_id BIGINT REFERENCES posts(id),
	PRIMARY KEY (post_id, user_id)
);

CREATE TABLE IF NOT EXISTS comments (
	post_id BIGINT REFERENCES posts(id),
	user_id BIGINT REFERENCES users(id),
	text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (post_id, user_id, text)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_screen_name ON users(screen_name);
CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_followers_follower ON followers(follower_id);
`

// Migrate creates the recon tables if they don't exist
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Import writes a dataset in one batch. Existing rows are kept.
func (p *Postgres) Import(ctx context.Context, ds *Dataset) error {
	batch := &pgx.Batch{}
	for _, u := range ds.Users {
		batch.Queue(`INSERT INTO users (id, screen_name) VALUES ($1, NULLIF($2, '')) ON CONFLICT (id) DO UPDATE SET screen_name = EXCLUDED.screen_name`, u.ID, social.NormalizeHandle(u.Handle))
	}
	for _, post := range ds.Posts {
		batch.Queue(`INSERT INTO posts (id, author_id, text, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`, post.ID, post.Author, post.Text, post.CreatedAt)
	}
	for _, f := range ds.Follows {
		batch.Queue(`INSERT INTO followers (user_id, follower_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, f.User, f.Follower)
	}
	for _, f := range ds.Favorites {
		batch.Queue(`INSERT INTO favorites (user_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, f.User, f.Post)
	}
	for _, m := range ds.Mentions {
		batch.Queue(`INSERT INTO mentions (user_id, mentioned_id, post_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, m.User, m.Mentioned, m.Post)
	}
	for _, r := range ds.Reshares {
		batch.Queue(`INSERT INTO reshares (post_id, user_id, reshared_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, r.Original, r.User, r.Post)
	}
	for _, c := range ds.Comments {
		batch.Queue(`INSERT INTO comments (post_id, user_id, text, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`, c.Post, c.User, c.Text, c.CreatedAt)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	p.logger.Info("dataset imported", logging.Int("users", len(ds.Users)), logging.Int("posts", len(ds.Posts)))
	return nil
}

// Activity implements social.ActivityProvider
func (p *Postgres) Activity(ctx context.Context, id social.Identifier) (*social.Activity, error) {
	self, err := p.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	a := &social.Activity{ID: self.ID, Handle: self.Handle}

	if a.Friends, err = collect(ctx, p.pool, friendsQuery, self.ID, scanUser); err != nil {
		return nil, fmt.Errorf("failed to load friends of %d: %w", self.ID, err)
	}
	if a.Followers, err = collect(ctx, p.pool, followersQuery, self.ID, scanUser); err != nil {
		return nil, fmt.Errorf("failed to load followers of %d: %w", self.ID, err)
	}
	if a.Timeline, err = collect(ctx, p.pool, timelineQuery, self.ID, func(row pgx.CollectableRow) (*social.Post, error) {
		post := &social.Post{Author: self}
		return post, row.Scan(&post.ID, &post.Text, &post.CreatedAt)
	}); err != nil {
		return nil, fmt.Errorf("failed to load timeline of %d: %w", self.ID, err)
	}
	if a.Reshares, err = collect(ctx, p.pool, resharesQuery, self.ID, func(row pgx.CollectableRow) (*social.Reshare, error) {
		var author authorRow
		original, copied := &social.Post{}, &social.Post{Author: self}
		if err := row.Scan(&original.ID, &author.id, &author.handle, &original.Text, &original.CreatedAt,
			&copied.ID, &copied.Text, &copied.CreatedAt); err != nil {
			return nil, err
		}
		original.Author = author.user()
		return &social.Reshare{Resharer: self, ResharedPost: copied, OriginalPost: original}, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load reshares of %d: %w", self.ID, err)
	}
	if a.Mentions, err = collect(ctx, p.pool, mentionsQuery, self.ID, func(row pgx.CollectableRow) (*social.Mention, error) {
		var mentioned authorRow
		post := &social.Post{Author: self}
		if err := row.Scan(&mentioned.id, &mentioned.handle, &post.ID, &post.Text, &post.CreatedAt); err != nil {
			return nil, err
		}
		return &social.Mention{Mentioner: self, Mentioned: mentioned.user(), Post: post}, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load mentions of %d: %w", self.ID, err)
	}
	if a.Favorites, err = collect(ctx, p.pool, favoritesQuery, self.ID, func(row pgx.CollectableRow) (*social.Favorite, error) {
		var author authorRow
		post := &social.Post{}
		if err := row.Scan(&post.ID, &author.id, &author.handle, &post.Text, &post.CreatedAt); err != nil {
			return nil, err
		}
		post.Author = author.user()
		return &social.Favorite{User: self, Author: post.Author, Post: post}, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load favorites of %d: %w", self.ID, err)
	}
	if a.Comments, err = collect(ctx, p.pool, commentsQuery, self.ID, func(row pgx.CollectableRow) (*social.Comment, error) {
		var author authorRow
		c := &social.Comment{User: self, Post: &social.Post{}}
		if err := row.Scan(&c.Post.ID, &author.id, &author.handle, &c.Post.Text, &c.Post.CreatedAt, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Post.Author = author.user()
		return c, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load comments of %d: %w", self.ID, err)
	}

	p.logger.Debug("activity loaded",
		logging.UserID(self.ID),
		logging.Int("friends", len(a.Friends)),
		logging.Int("followers", len(a.Followers)),
		logging.Int("posts", len(a.Timeline)))
	return a, nil
}

func (p *Postgres) resolve(ctx context.Context, id social.Identifier) (*social.User, error) {
	var row pgx.Row
	if id.Namespace == social.NamespaceHandle {
		row = p.pool.QueryRow(ctx, `SELECT id, COALESCE(screen_name, '') FROM users WHERE screen_name = $1`, id.Handle)
	} else {
		row = p.pool.QueryRow(ctx, `SELECT id, COALESCE(screen_name, '') FROM users WHERE id = $1`, id.ID)
	}

	var u authorRow
	err := row.Scan(&u.id, &u.handle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", social.ErrUnknownAccount, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", id, err)
	}
	return u.user(), nil
}

const (
	friendsQuery = `
		SELECT u.id, COALESCE(u.screen_name, '')
		FROM users u INNER JOIN followers f ON u.id = f.user_id
		WHERE f.follower_id = $1
		ORDER BY u.id`

	followersQuery = `
		SELECT u.id, COALESCE(u.screen_name, '')
		FROM users u INNER JOIN followers f ON u.id = f.follower_id
		WHERE f.user_id = $1
		ORDER BY u.id`

	timelineQuery = `
		SELECT id, text, created_at FROM posts
		WHERE author_id = $1
		ORDER BY created_at, id`

	resharesQuery = `
		SELECT o.id, o.author_id, COALESCE(ou.screen_name, ''), o.text, o.created_at,
		       c.id, c.text, c.created_at
		FROM reshares r
		INNER JOIN posts o ON o.id = r.post_id
		INNER JOIN users ou ON ou.id = o.author_id
		INNER JOIN posts c ON c.id = r.reshared_id
		WHERE r.user_id = $1
		ORDER BY c.created_at, c.id`

	mentionsQuery = `
		SELECT u.id, COALESCE(u.screen_name, ''), p.id, p.text, p.created_at
		FROM mentions m
		INNER JOIN users u ON u.id = m.mentioned_id
		INNER JOIN posts p ON p.id = m.post_id
		WHERE m.user_id = $1
		ORDER BY p.created_at, p.id, u.id`

	favoritesQuery = `
		SELECT p.id, p.author_id, COALESCE(u.screen_name, ''), p.text, p.created_at
		FROM favorites f
		INNER JOIN posts p ON p.id = f.post_id
		INNER JOIN users u ON u.id = p.author_id
		WHERE f.user_id = $1
		ORDER BY p.created_at, p.id`

	commentsQuery = `
		SELECT p.id, p.author_id, COALESCE(u.screen_name, ''), p.text, p.created_at, c.text, c.created_at
		FROM comments c
		INNER JOIN posts p ON p.id = c.post_id
		INNER JOIN users u ON u.id = p.author_id
		WHERE c.user_id = $1
		ORDER BY c.created_at, p.id`
)

// collect runs a per-user query and maps every row with scan
func collect[T any](ctx context.Context, pool *pgxpool.Pool, query string, userID int64, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}

// authorRow holds the (id, screen_name) columns of a joined user
type authorRow struct {
	id     int64
	handle string
}

func (r authorRow) user() *social.User {
	return social.NewUser(r.id, r.handle)
}

func scanUser(row pgx.CollectableRow) (*social.User, error) {
	var r authorRow
	if err := row.Scan(&r.id, &r.handle); err != nil {
		return nil, err
	}
	return r.user(), nil
}
