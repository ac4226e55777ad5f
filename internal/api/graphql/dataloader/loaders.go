// Package dataloader wraps the store in request-scoped batching loaders so
// that the fan-out of relation resolvers (one fetch per parent row) collapses
// into one batched store query per entity kind. The wrapper implements
// store.Store, so resolvers stay ignorant of batching: they receive a handle
// from the request context and issue the same fetch-one/fetch-many calls they
// would against the raw store.
package dataloader

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/vikstrous/dataloadgen"

	"github.com/mlukashov/usergraph/internal/core/model"
	"github.com/mlukashov/usergraph/internal/core/store"
)

type ctxKey struct{}

// batchedStore decorates a base store with per-request loaders for the reads
// that relation resolvers fan out over. Writes and list-alls delegate to the
// base store untouched.
type batchedStore struct {
	store.Store

	users        *dataloadgen.Loader[string, *model.User]
	memberTypes  *dataloadgen.Loader[model.MemberTypeID, *model.MemberType]
	profiles     *dataloadgen.Loader[string, *model.Profile]
	posts        *dataloadgen.Loader[string, []*model.Post]
	subscribedTo *dataloadgen.Loader[string, []*model.User]
	subscribers  *dataloadgen.Loader[string, []*model.User]
}

var _ store.Store = (*batchedStore)(nil)

// Wrap decorates a store with fresh batching loaders. One wrapped store must
// serve exactly one request: the loaders cache resolved keys for their
// lifetime.
func Wrap(base store.Store) store.Store {
	return &batchedStore{
		Store: base,
		users: newKeyedLoader(base.GetUsersByIDs,
			func(u *model.User) string { return u.ID }),
		memberTypes: newKeyedLoader(base.GetMemberTypesByIDs,
			func(mt *model.MemberType) model.MemberTypeID { return mt.ID }),
		profiles: newKeyedLoader(
			func(ctx context.Context, userIDs []string) ([]*model.Profile, error) {
				keyed, err := base.GetProfilesByUsers(ctx, userIDs)
				if err != nil {
					return nil, err
				}
				profiles := make([]*model.Profile, 0, len(keyed))
				for _, p := range keyed {
					profiles = append(profiles, p)
				}
				return profiles, nil
			},
			func(p *model.Profile) string { return p.UserID }),
		posts:        newGroupedLoader(base.ListPostsByAuthors),
		subscribedTo: newGroupedLoader(base.ListSubscribedToByUsers),
		subscribers:  newGroupedLoader(base.ListSubscribersByUsers),
	}
}

// GetUser loads a user through the batching loader.
func (s *batchedStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.Load(ctx, id)
}

// GetMemberType loads a member type through the batching loader.
func (s *batchedStore) GetMemberType(ctx context.Context, id model.MemberTypeID) (*model.MemberType, error) {
	return s.memberTypes.Load(ctx, id)
}

// GetProfileByUser loads a user's profile through the batching loader.
func (s *batchedStore) GetProfileByUser(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.Load(ctx, userID)
}

// ListPostsByAuthor loads an author's posts through the batching loader.
func (s *batchedStore) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return s.posts.Load(ctx, authorID)
}

// ListSubscribedTo loads the authors a user follows through the batching loader.
func (s *batchedStore) ListSubscribedTo(ctx context.Context, subscriberID string) ([]*model.User, error) {
	return s.subscribedTo.Load(ctx, subscriberID)
}

// ListSubscribers loads an author's subscribers through the batching loader.
func (s *batchedStore) ListSubscribers(ctx context.Context, authorID string) ([]*model.User, error) {
	return s.subscribers.Load(ctx, authorID)
}

// NewContext returns a context carrying a request-scoped store handle.
func NewContext(ctx context.Context, s store.Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the request-scoped store handle, if any.
func FromContext(ctx context.Context) (store.Store, bool) {
	s, ok := ctx.Value(ctxKey{}).(store.Store)
	return s, ok
}

// Middleware injects a freshly wrapped store into each request's context.
func Middleware(base store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := NewContext(c.Request.Context(), Wrap(base))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
