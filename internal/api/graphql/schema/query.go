package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mlukashov/usergraph/internal/api/graphql/scalar"
	"github.com/mlukashov/usergraph/internal/core/model"
)

// queryType builds the read-only root: a fetch-all and a fetch-by-id field
// per entity. Fetch-by-id resolves to null when the id is absent; absence is
// not an error.
func (b *builder) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.user))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.storeFor(p.Context).ListUsers(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: b.user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					user, err := b.storeFor(p.Context).GetUser(p.Context, id)
					if err != nil {
						return nil, err
					}
					if user == nil {
						return nil, nil
					}
					return user, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.post))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.storeFor(p.Context).ListPosts(p.Context)
				},
			},
			"post": &graphql.Field{
				Type: b.post,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					post, err := b.storeFor(p.Context).GetPost(p.Context, id)
					if err != nil {
						return nil, err
					}
					if post == nil {
						return nil, nil
					}
					return post, nil
				},
			},
			"profiles": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.profile))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.storeFor(p.Context).ListProfiles(p.Context)
				},
			},
			"profile": &graphql.Field{
				Type: b.profile,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					profile, err := b.storeFor(p.Context).GetProfile(p.Context, id)
					if err != nil {
						return nil, err
					}
					if profile == nil {
						return nil, nil
					}
					return profile, nil
				},
			},
			"memberTypes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.memberType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.storeFor(p.Context).ListMemberTypes(p.Context)
				},
			},
			"memberType": &graphql.Field{
				Type: b.memberType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.MemberTypeID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					memberType, err := b.storeFor(p.Context).GetMemberType(p.Context, model.MemberTypeID(id))
					if err != nil {
						return nil, err
					}
					if memberType == nil {
						return nil, nil
					}
					return memberType, nil
				},
			},
		},
	})
}
