package schema_test

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashov/usergraph/internal/api/graphql/schema"
	"github.com/mlukashov/usergraph/internal/core/store"
)

func TestNew_Composes(t *testing.T) {
	composed, err := schema.New((*store.SQLStore)(nil))
	require.NoError(t, err)

	query := composed.QueryType()
	require.NotNil(t, query)
	for _, field := range []string{"users", "user", "posts", "post", "profiles", "profile", "memberTypes", "memberType"} {
		assert.Contains(t, query.Fields(), field)
	}

	mutation := composed.MutationType()
	require.NotNil(t, mutation)
	for _, field := range []string{
		"createUser", "changeUser", "deleteUser",
		"createPost", "changePost", "deletePost",
		"createProfile", "changeProfile", "deleteProfile",
		"subscribeTo", "unsubscribeFrom",
	} {
		assert.Contains(t, mutation.Fields(), field)
	}
}

func TestNew_UserTypeIsSelfReferential(t *testing.T) {
	composed, err := schema.New((*store.SQLStore)(nil))
	require.NoError(t, err)

	userType, ok := composed.TypeMap()["User"].(*graphql.Object)
	require.True(t, ok)

	fields := userType.Fields()
	require.Contains(t, fields, "userSubscribedTo")
	require.Contains(t, fields, "subscribedToUser")

	// Both subscription relations resolve back to User.
	followed := fields["userSubscribedTo"].Type
	assert.Contains(t, followed.String(), "[User]")
}

func TestNew_CustomScalars(t *testing.T) {
	composed, err := schema.New((*store.SQLStore)(nil))
	require.NoError(t, err)

	assert.NotNil(t, composed.TypeMap()["UUID"])
	assert.NotNil(t, composed.TypeMap()["MemberTypeId"])
}
