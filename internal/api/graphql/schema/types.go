package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mlukashov/usergraph/internal/api/graphql/scalar"
	"github.com/mlukashov/usergraph/internal/core/model"
)

// buildTypes creates the entity object types. Scalar fields rely on the
// default resolver (struct fields via json tags); relation fields perform
// exactly one store read keyed by a value carried on the parent record, with
// no side effects and no retries.
func (b *builder) buildTypes() {
	b.memberType = graphql.NewObject(graphql.ObjectConfig{
		Name: "MemberType",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(scalar.MemberTypeID)},
			"discount":           &graphql.Field{Type: graphql.Float},
			"postsLimitPerMonth": &graphql.Field{Type: graphql.Int},
		},
	})

	b.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(scalar.UUID)},
			"title":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.Field{Type: graphql.String},
		},
	})

	b.profile = graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(scalar.UUID)},
			"isMale":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"yearOfBirth": &graphql.Field{Type: graphql.Int},
			"memberType": &graphql.Field{
				Type:    graphql.NewNonNull(b.memberType),
				Resolve: b.resolveProfileMemberType,
			},
		},
	})

	// User references itself through the subscription relations, so its
	// fields are built lazily via a thunk.
	b.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: (graphql.FieldsThunk)(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: graphql.NewNonNull(scalar.UUID)},
				"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"balance": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
				"profile": &graphql.Field{
					Type:    b.profile,
					Resolve: b.resolveUserProfile,
				},
				"posts": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.post))),
					Resolve: b.resolveUserPosts,
				},
				"userSubscribedTo": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(b.user)),
					Resolve: b.resolveUserSubscribedTo,
				},
				"subscribedToUser": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(b.user)),
					Resolve: b.resolveSubscribedToUser,
				},
			}
		}),
	})
}

// resolveProfileMemberType fetches the member type referenced by the parent
// profile.
func (b *builder) resolveProfileMemberType(p graphql.ResolveParams) (interface{}, error) {
	profile, ok := p.Source.(*model.Profile)
	if !ok {
		return nil, nil
	}
	s := b.storeFor(p.Context)
	return deferred(func() (interface{}, error) {
		mt, err := s.GetMemberType(p.Context, profile.MemberTypeID)
		if err != nil {
			return nil, err
		}
		if mt == nil {
			return nil, nil
		}
		return mt, nil
	})
}

// resolveUserProfile fetches the profile owned by the parent user. An absent
// profile resolves to null, never an error.
func (b *builder) resolveUserProfile(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*model.User)
	if !ok {
		return nil, nil
	}
	s := b.storeFor(p.Context)
	return deferred(func() (interface{}, error) {
		profile, err := s.GetProfileByUser(p.Context, user.ID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, nil
		}
		return profile, nil
	})
}

// resolveUserPosts fetches the posts authored by the parent user. A user
// with no posts resolves to an empty list, never null. The id guard covers
// partial parent objects.
func (b *builder) resolveUserPosts(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*model.User)
	if !ok || user.ID == "" {
		return []*model.Post{}, nil
	}
	s := b.storeFor(p.Context)
	return deferred(func() (interface{}, error) {
		return s.ListPostsByAuthor(p.Context, user.ID)
	})
}

// resolveUserSubscribedTo fetches the authors the parent user subscribes to.
func (b *builder) resolveUserSubscribedTo(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*model.User)
	if !ok {
		return []*model.User{}, nil
	}
	s := b.storeFor(p.Context)
	return deferred(func() (interface{}, error) {
		return s.ListSubscribedTo(p.Context, user.ID)
	})
}

// resolveSubscribedToUser fetches the users subscribed to the parent user.
func (b *builder) resolveSubscribedToUser(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*model.User)
	if !ok {
		return []*model.User{}, nil
	}
	s := b.storeFor(p.Context)
	return deferred(func() (interface{}, error) {
		return s.ListSubscribers(p.Context, user.ID)
	})
}
