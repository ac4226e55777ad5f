package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mlukashov/usergraph/internal/api/graphql/scalar"
	"github.com/mlukashov/usergraph/internal/core/errs"
	"github.com/mlukashov/usergraph/internal/core/model"
)

// Delete and subscription confirmations returned to the client.
const (
	msgUserDeleted    = "User deleted successfully"
	msgPostDeleted    = "Post deleted successfully"
	msgProfileDeleted = "Profile deleted successfully"
	msgSubscribed     = "Subscribed successfully"
	msgUnsubscribed   = "Unsubscribed successfully"
)

func (b *builder) mutationType() *graphql.Object {
	createUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"balance": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
	changeUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangeUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"balance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})
	createPostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"authorId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(scalar.UUID)},
		},
	})
	changePostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	createProfileInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(scalar.UUID)},
			"isMale":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"yearOfBirth":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"memberTypeId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(scalar.MemberTypeID)},
		},
	})
	changeProfileInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangeProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"isMale":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"yearOfBirth":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"memberTypeId": &graphql.InputObjectFieldConfig{Type: scalar.MemberTypeID},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
	}
	pairArgs := graphql.FieldConfigArgument{
		"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
		"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
	}
	dtoArg := func(input *graphql.InputObject) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
	}
	changeArgs := func(input *graphql.InputObject) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(scalar.UUID)},
			"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(b.user),
				Args: dtoArg(createUserInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					dto, _ := p.Args["dto"].(map[string]interface{})
					name, _ := dto["name"].(string)
					balance, _ := dto["balance"].(float64)
					return b.storeFor(p.Context).CreateUser(p.Context, model.CreateUser{
						Name:    name,
						Balance: balance,
					})
				},
			},
			"changeUser": &graphql.Field{
				Type: b.user,
				Args: changeArgs(changeUserInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					dto, _ := p.Args["dto"].(map[string]interface{})
					return b.storeFor(p.Context).ChangeUser(p.Context, id, model.ChangeUser{
						Name:    stringArg(dto, "name"),
						Balance: floatArg(dto, "balance"),
					})
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.String,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if err := b.storeFor(p.Context).DeleteUser(p.Context, id); err != nil {
						return nil, err
					}
					return msgUserDeleted, nil
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(b.post),
				Args: dtoArg(createPostInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					dto, _ := p.Args["dto"].(map[string]interface{})
					title, _ := dto["title"].(string)
					authorID, _ := dto["authorId"].(string)
					return b.storeFor(p.Context).CreatePost(p.Context, model.CreatePost{
						Title:    title,
						Content:  stringArg(dto, "content"),
						AuthorID: authorID,
					})
				},
			},
			"changePost": &graphql.Field{
				Type: b.post,
				Args: changeArgs(changePostInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					dto, _ := p.Args["dto"].(map[string]interface{})
					return b.storeFor(p.Context).ChangePost(p.Context, id, model.ChangePost{
						Title:   stringArg(dto, "title"),
						Content: stringArg(dto, "content"),
					})
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.String,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if err := b.storeFor(p.Context).DeletePost(p.Context, id); err != nil {
						return nil, err
					}
					return msgPostDeleted, nil
				},
			},
			"createProfile": &graphql.Field{
				Type: graphql.NewNonNull(b.profile),
				Args: dtoArg(createProfileInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					dto, _ := p.Args["dto"].(map[string]interface{})
					userID, _ := dto["userId"].(string)
					isMale, _ := dto["isMale"].(bool)
					memberTypeID, _ := dto["memberTypeId"].(string)
					return b.storeFor(p.Context).CreateProfile(p.Context, model.CreateProfile{
						UserID:       userID,
						IsMale:       isMale,
						YearOfBirth:  intArg(dto, "yearOfBirth"),
						MemberTypeID: model.MemberTypeID(memberTypeID),
					})
				},
			},
			"changeProfile": &graphql.Field{
				Type: b.profile,
				Args: changeArgs(changeProfileInput),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					dto, _ := p.Args["dto"].(map[string]interface{})
					return b.storeFor(p.Context).ChangeProfile(p.Context, id, model.ChangeProfile{
						IsMale:       boolArg(dto, "isMale"),
						YearOfBirth:  intArg(dto, "yearOfBirth"),
						MemberTypeID: memberTypeIDArg(dto, "memberTypeId"),
					})
				},
			},
			"deleteProfile": &graphql.Field{
				Type: graphql.String,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					if err := b.storeFor(p.Context).DeleteProfile(p.Context, id); err != nil {
						return nil, err
					}
					return msgProfileDeleted, nil
				},
			},
			"subscribeTo": &graphql.Field{
				Type: graphql.String,
				Args: pairArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, _ := p.Args["userId"].(string)
					authorID, _ := p.Args["authorId"].(string)
					if userID == authorID {
						return nil, fmt.Errorf("%w: cannot subscribe to yourself", errs.ErrInvalidInput)
					}
					if err := b.storeFor(p.Context).Subscribe(p.Context, userID, authorID); err != nil {
						return nil, err
					}
					return msgSubscribed, nil
				},
			},
			"unsubscribeFrom": &graphql.Field{
				Type: graphql.String,
				Args: pairArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, _ := p.Args["userId"].(string)
					authorID, _ := p.Args["authorId"].(string)
					if err := b.storeFor(p.Context).Unsubscribe(p.Context, userID, authorID); err != nil {
						return nil, err
					}
					return msgUnsubscribed, nil
				},
			},
		},
	})
}
