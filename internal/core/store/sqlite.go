package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/mlukashov/usergraph/internal/core/errs"
	"github.com/mlukashov/usergraph/internal/core/model"
)

// SQLStore implements Store on top of database/sql with the SQLite driver.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

// New creates a SQLStore over an initialized database connection.
func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// wrapErr maps driver-level failures to domain sentinels.
func wrapErr(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %v", op, errs.ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// placeholders returns "?, ?, ..., ?" with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

//
// Users
//

const userColumns = "id, name, balance"

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Balance); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) queryUsers(ctx context.Context, query string, args ...any) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListUsers returns every user.
func (s *SQLStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.queryUsers(ctx, "SELECT "+userColumns+" FROM users")
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}

// GetUser returns the user with the given id, or nil when absent.
func (s *SQLStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	return u, nil
}

// GetUsersByIDs returns the users matching ids, in no particular order.
func (s *SQLStore) GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + userColumns + " FROM users WHERE id IN (" + placeholders(len(ids)) + ")"
	users, err := s.queryUsers(ctx, query, idArgs(ids)...)
	if err != nil {
		return nil, wrapErr("get users by ids", err)
	}
	return users, nil
}

// CreateUser inserts a user and returns the created record.
func (s *SQLStore) CreateUser(ctx context.Context, dto model.CreateUser) (*model.User, error) {
	u := &model.User{ID: uuid.NewString(), Name: dto.Name, Balance: dto.Balance}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, balance) VALUES (?, ?, ?)", u.ID, u.Name, u.Balance)
	if err != nil {
		return nil, wrapErr("create user", err)
	}
	return u, nil
}

// ChangeUser applies a partial update and returns the updated record.
func (s *SQLStore) ChangeUser(ctx context.Context, id string, dto model.ChangeUser) (*model.User, error) {
	var (
		sets []string
		args []any
	)
	if dto.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *dto.Name)
	}
	if dto.Balance != nil {
		sets, args = append(sets, "balance = ?"), append(args, *dto.Balance)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, wrapErr("change user", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return nil, wrapErr("change user", err)
		} else if affected == 0 {
			return nil, fmt.Errorf("change user %s: %w", id, errs.ErrNotFound)
		}
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("change user %s: %w", id, errs.ErrNotFound)
	}
	return u, nil
}

// DeleteUser removes the user with the given id.
func (s *SQLStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return wrapErr("delete user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete user", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete user %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

//
// Posts
//

const postColumns = "id, title, content, author_id"

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	var p model.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) queryPosts(ctx context.Context, query string, args ...any) ([]*model.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns every post.
func (s *SQLStore) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.queryPosts(ctx, "SELECT "+postColumns+" FROM posts")
	if err != nil {
		return nil, wrapErr("list posts", err)
	}
	return posts, nil
}

// GetPost returns the post with the given id, or nil when absent.
func (s *SQLStore) GetPost(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get post", err)
	}
	return p, nil
}

// ListPostsByAuthor returns the posts authored by one user.
func (s *SQLStore) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	posts, err := s.queryPosts(ctx, "SELECT "+postColumns+" FROM posts WHERE author_id = ?", authorID)
	if err != nil {
		return nil, wrapErr("list posts by author", err)
	}
	return posts, nil
}

// ListPostsByAuthors returns the posts of every listed author in one query,
// grouped by author id. Authors without posts are absent from the map.
func (s *SQLStore) ListPostsByAuthors(ctx context.Context, authorIDs []string) (map[string][]*model.Post, error) {
	if len(authorIDs) == 0 {
		return map[string][]*model.Post{}, nil
	}
	query := "SELECT " + postColumns + " FROM posts WHERE author_id IN (" + placeholders(len(authorIDs)) + ")"
	posts, err := s.queryPosts(ctx, query, idArgs(authorIDs)...)
	if err != nil {
		return nil, wrapErr("list posts by authors", err)
	}
	grouped := make(map[string][]*model.Post, len(authorIDs))
	for _, p := range posts {
		grouped[p.AuthorID] = append(grouped[p.AuthorID], p)
	}
	return grouped, nil
}

// CreatePost inserts a post and returns the created record. A dangling
// authorId surfaces as a constraint violation from the store.
func (s *SQLStore) CreatePost(ctx context.Context, dto model.CreatePost) (*model.Post, error) {
	p := &model.Post{ID: uuid.NewString(), Title: dto.Title, Content: dto.Content, AuthorID: dto.AuthorID}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (id, title, content, author_id) VALUES (?, ?, ?, ?)",
		p.ID, p.Title, p.Content, p.AuthorID)
	if err != nil {
		return nil, wrapErr("create post", err)
	}
	return p, nil
}

// ChangePost applies a partial update and returns the updated record.
func (s *SQLStore) ChangePost(ctx context.Context, id string, dto model.ChangePost) (*model.Post, error) {
	var (
		sets []string
		args []any
	)
	if dto.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *dto.Title)
	}
	if dto.Content != nil {
		sets, args = append(sets, "content = ?"), append(args, *dto.Content)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, "UPDATE posts SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, wrapErr("change post", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return nil, wrapErr("change post", err)
		} else if affected == 0 {
			return nil, fmt.Errorf("change post %s: %w", id, errs.ErrNotFound)
		}
	}

	p, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("change post %s: %w", id, errs.ErrNotFound)
	}
	return p, nil
}

// DeletePost removes the post with the given id.
func (s *SQLStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return wrapErr("delete post", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete post", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete post %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

//
// Profiles
//

const profileColumns = "id, is_male, year_of_birth, user_id, member_type_id"

func scanProfile(row interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(&p.ID, &p.IsMale, &p.YearOfBirth, &p.UserID, &p.MemberTypeID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLStore) queryProfiles(ctx context.Context, query string, args ...any) ([]*model.Profile, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// ListProfiles returns every profile.
func (s *SQLStore) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := s.queryProfiles(ctx, "SELECT "+profileColumns+" FROM profiles")
	if err != nil {
		return nil, wrapErr("list profiles", err)
	}
	return profiles, nil
}

// GetProfile returns the profile with the given id, or nil when absent.
func (s *SQLStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get profile", err)
	}
	return p, nil
}

// GetProfileByUser returns the profile owned by a user, or nil when the user
// has none.
func (s *SQLStore) GetProfileByUser(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE user_id = ?", userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get profile by user", err)
	}
	return p, nil
}

// GetProfilesByUsers returns the profiles of every listed user in one query,
// keyed by user id. Users without a profile are absent from the map.
func (s *SQLStore) GetProfilesByUsers(ctx context.Context, userIDs []string) (map[string]*model.Profile, error) {
	if len(userIDs) == 0 {
		return map[string]*model.Profile{}, nil
	}
	query := "SELECT " + profileColumns + " FROM profiles WHERE user_id IN (" + placeholders(len(userIDs)) + ")"
	profiles, err := s.queryProfiles(ctx, query, idArgs(userIDs)...)
	if err != nil {
		return nil, wrapErr("get profiles by users", err)
	}
	keyed := make(map[string]*model.Profile, len(profiles))
	for _, p := range profiles {
		keyed[p.UserID] = p
	}
	return keyed, nil
}

// CreateProfile inserts a profile and returns the created record. A dangling
// userId or memberTypeId, or a second profile for the same user, surfaces as
// a constraint violation from the store.
func (s *SQLStore) CreateProfile(ctx context.Context, dto model.CreateProfile) (*model.Profile, error) {
	p := &model.Profile{
		ID:           uuid.NewString(),
		IsMale:       dto.IsMale,
		YearOfBirth:  dto.YearOfBirth,
		UserID:       dto.UserID,
		MemberTypeID: dto.MemberTypeID,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, is_male, year_of_birth, user_id, member_type_id) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.IsMale, p.YearOfBirth, p.UserID, string(p.MemberTypeID))
	if err != nil {
		return nil, wrapErr("create profile", err)
	}
	return p, nil
}

// ChangeProfile applies a partial update and returns the updated record.
func (s *SQLStore) ChangeProfile(ctx context.Context, id string, dto model.ChangeProfile) (*model.Profile, error) {
	var (
		sets []string
		args []any
	)
	if dto.IsMale != nil {
		sets, args = append(sets, "is_male = ?"), append(args, *dto.IsMale)
	}
	if dto.YearOfBirth != nil {
		sets, args = append(sets, "year_of_birth = ?"), append(args, *dto.YearOfBirth)
	}
	if dto.MemberTypeID != nil {
		sets, args = append(sets, "member_type_id = ?"), append(args, string(*dto.MemberTypeID))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx, "UPDATE profiles SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, wrapErr("change profile", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return nil, wrapErr("change profile", err)
		} else if affected == 0 {
			return nil, fmt.Errorf("change profile %s: %w", id, errs.ErrNotFound)
		}
	}

	p, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("change profile %s: %w", id, errs.ErrNotFound)
	}
	return p, nil
}

// DeleteProfile removes the profile with the given id.
func (s *SQLStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return wrapErr("delete profile", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete profile", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete profile %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

//
// Member types
//

const memberTypeColumns = "id, discount, posts_limit_per_month"

func scanMemberType(row interface{ Scan(...any) error }) (*model.MemberType, error) {
	var mt model.MemberType
	if err := row.Scan(&mt.ID, &mt.Discount, &mt.PostsLimitPerMonth); err != nil {
		return nil, err
	}
	return &mt, nil
}

// ListMemberTypes returns the seeded closed set of member types.
func (s *SQLStore) ListMemberTypes(ctx context.Context) ([]*model.MemberType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+memberTypeColumns+" FROM member_types")
	if err != nil {
		return nil, wrapErr("list member types", err)
	}
	defer rows.Close()

	memberTypes := make([]*model.MemberType, 0)
	for rows.Next() {
		mt, err := scanMemberType(rows)
		if err != nil {
			return nil, wrapErr("list member types", err)
		}
		memberTypes = append(memberTypes, mt)
	}
	return memberTypes, rows.Err()
}

// GetMemberType returns the member type with the given id, or nil when absent.
func (s *SQLStore) GetMemberType(ctx context.Context, id model.MemberTypeID) (*model.MemberType, error) {
	mt, err := scanMemberType(s.db.QueryRowContext(ctx,
		"SELECT "+memberTypeColumns+" FROM member_types WHERE id = ?", string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get member type", err)
	}
	return mt, nil
}

// GetMemberTypesByIDs returns the member types matching ids in one query.
func (s *SQLStore) GetMemberTypesByIDs(ctx context.Context, ids []model.MemberTypeID) ([]*model.MemberType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = string(id)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberTypeColumns+" FROM member_types WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, wrapErr("get member types by ids", err)
	}
	defer rows.Close()

	memberTypes := make([]*model.MemberType, 0, len(ids))
	for rows.Next() {
		mt, err := scanMemberType(rows)
		if err != nil {
			return nil, wrapErr("get member types by ids", err)
		}
		memberTypes = append(memberTypes, mt)
	}
	return memberTypes, rows.Err()
}

//
// Subscriptions
//

// Subscribe inserts one subscription link. Dangling user ids surface as a
// constraint violation from the store.
func (s *SQLStore) Subscribe(ctx context.Context, userID, authorID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO subscriptions (subscriber_id, author_id) VALUES (?, ?)", userID, authorID)
	if err != nil {
		return wrapErr("subscribe", err)
	}
	return nil
}

// Unsubscribe removes every link matching the pair. Removing zero rows is a
// successful no-op.
func (s *SQLStore) Unsubscribe(ctx context.Context, userID, authorID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE subscriber_id = ? AND author_id = ?", userID, authorID)
	if err != nil {
		return wrapErr("unsubscribe", err)
	}
	return nil
}

// ListSubscribedTo returns the authors a user subscribes to.
func (s *SQLStore) ListSubscribedTo(ctx context.Context, subscriberID string) ([]*model.User, error) {
	users, err := s.queryUsers(ctx,
		"SELECT u.id, u.name, u.balance FROM users u JOIN subscriptions s ON u.id = s.author_id WHERE s.subscriber_id = ?",
		subscriberID)
	if err != nil {
		return nil, wrapErr("list subscribed to", err)
	}
	return users, nil
}

// ListSubscribers returns the users subscribed to an author.
func (s *SQLStore) ListSubscribers(ctx context.Context, authorID string) ([]*model.User, error) {
	users, err := s.queryUsers(ctx,
		"SELECT u.id, u.name, u.balance FROM users u JOIN subscriptions s ON u.id = s.subscriber_id WHERE s.author_id = ?",
		authorID)
	if err != nil {
		return nil, wrapErr("list subscribers", err)
	}
	return users, nil
}

func (s *SQLStore) querySubscriptionJoin(ctx context.Context, query string, keys []string) (map[string][]*model.User, error) {
	rows, err := s.db.QueryContext(ctx, query, idArgs(keys)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string][]*model.User, len(keys))
	for rows.Next() {
		var (
			key string
			u   model.User
		)
		if err := rows.Scan(&key, &u.ID, &u.Name, &u.Balance); err != nil {
			return nil, err
		}
		grouped[key] = append(grouped[key], &u)
	}
	return grouped, rows.Err()
}

// ListSubscribedToByUsers resolves the subscribed-to relation for every
// listed subscriber in one query, grouped by subscriber id.
func (s *SQLStore) ListSubscribedToByUsers(ctx context.Context, subscriberIDs []string) (map[string][]*model.User, error) {
	if len(subscriberIDs) == 0 {
		return map[string][]*model.User{}, nil
	}
	query := "SELECT s.subscriber_id, u.id, u.name, u.balance FROM users u " +
		"JOIN subscriptions s ON u.id = s.author_id " +
		"WHERE s.subscriber_id IN (" + placeholders(len(subscriberIDs)) + ")"
	grouped, err := s.querySubscriptionJoin(ctx, query, subscriberIDs)
	if err != nil {
		return nil, wrapErr("list subscribed to by users", err)
	}
	return grouped, nil
}

// ListSubscribersByUsers resolves the subscriber relation for every listed
// author in one query, grouped by author id.
func (s *SQLStore) ListSubscribersByUsers(ctx context.Context, authorIDs []string) (map[string][]*model.User, error) {
	if len(authorIDs) == 0 {
		return map[string][]*model.User{}, nil
	}
	query := "SELECT s.author_id, u.id, u.name, u.balance FROM users u " +
		"JOIN subscriptions s ON u.id = s.subscriber_id " +
		"WHERE s.author_id IN (" + placeholders(len(authorIDs)) + ")"
	grouped, err := s.querySubscriptionJoin(ctx, query, authorIDs)
	if err != nil {
		return nil, wrapErr("list subscribers by users", err)
	}
	return grouped, nil
}
