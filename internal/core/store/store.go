// Package store provides the data-access capability consumed by the GraphQL
// layer: typed fetch-one, fetch-many, insert, update and delete operations
// per entity, plus the batch variants the request-scoped loaders are built
// on. Implementations own all persistence concerns; callers never see SQL.
package store

import (
	"context"

	"github.com/mlukashov/usergraph/internal/core/model"
)

// Store is the narrow data-access handle threaded through every resolver.
//
// Fetch-one methods return (nil, nil) when the row is absent; update and
// delete of a missing id return errs.ErrNotFound; writes violating a
// referential or uniqueness constraint return errs.ErrConstraint. Every call
// is individually atomic and attempted exactly once.
type Store interface {
	// Users
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	CreateUser(ctx context.Context, dto model.CreateUser) (*model.User, error)
	ChangeUser(ctx context.Context, id string, dto model.ChangeUser) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Posts
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	ListPostsByAuthors(ctx context.Context, authorIDs []string) (map[string][]*model.Post, error)
	CreatePost(ctx context.Context, dto model.CreatePost) (*model.Post, error)
	ChangePost(ctx context.Context, id string, dto model.ChangePost) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error

	// Profiles
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByUser(ctx context.Context, userID string) (*model.Profile, error)
	GetProfilesByUsers(ctx context.Context, userIDs []string) (map[string]*model.Profile, error)
	CreateProfile(ctx context.Context, dto model.CreateProfile) (*model.Profile, error)
	ChangeProfile(ctx context.Context, id string, dto model.ChangeProfile) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	// Member types (read-only closed set)
	ListMemberTypes(ctx context.Context) ([]*model.MemberType, error)
	GetMemberType(ctx context.Context, id model.MemberTypeID) (*model.MemberType, error)
	GetMemberTypesByIDs(ctx context.Context, ids []model.MemberTypeID) ([]*model.MemberType, error)

	// Subscriptions (many-to-many self-join on users)
	Subscribe(ctx context.Context, userID, authorID string) error
	// Unsubscribe removes every link matching the pair; a missing link is a
	// no-op, not an error.
	Unsubscribe(ctx context.Context, userID, authorID string) error
	ListSubscribedTo(ctx context.Context, subscriberID string) ([]*model.User, error)
	ListSubscribers(ctx context.Context, authorID string) ([]*model.User, error)
	ListSubscribedToByUsers(ctx context.Context, subscriberIDs []string) (map[string][]*model.User, error)
	ListSubscribersByUsers(ctx context.Context, authorIDs []string) (map[string][]*model.User, error)
}
