// Package model defines the domain records exchanged between the store and
// the GraphQL layer.
package model

// MemberTypeID is the closed set of membership tier identifiers. Values
// outside the set are rejected at the schema boundary, not deep inside
// business logic.
type MemberTypeID string

const (
	// MemberTypeBasic is the default membership tier.
	MemberTypeBasic MemberTypeID = "basic"
	// MemberTypeBusiness is the paid membership tier.
	MemberTypeBusiness MemberTypeID = "business"
)

// MemberTypeIDs lists every valid membership tier identifier.
var MemberTypeIDs = []MemberTypeID{MemberTypeBasic, MemberTypeBusiness}

// Valid reports whether the identifier belongs to the closed set.
func (id MemberTypeID) Valid() bool {
	for _, known := range MemberTypeIDs {
		if id == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (id MemberTypeID) String() string { return string(id) }

// User is an account holder. A user owns at most one profile, any number of
// posts, and participates in the subscription self-join in both directions.
type User struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Post is authored by exactly one user.
type Post struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	AuthorID string  `json:"authorId"`
}

// Profile is the 1:1 extension of a user and references a membership tier.
type Profile struct {
	ID           string       `json:"id"`
	IsMale       bool         `json:"isMale"`
	YearOfBirth  *int         `json:"yearOfBirth"`
	UserID       string       `json:"userId"`
	MemberTypeID MemberTypeID `json:"memberTypeId"`
}

// MemberType is a row of the seeded closed membership tier set.
type MemberType struct {
	ID                 MemberTypeID `json:"id"`
	Discount           float64      `json:"discount"`
	PostsLimitPerMonth int          `json:"postsLimitPerMonth"`
}

// CreateUser carries the creatable fields of a user.
type CreateUser struct {
	Name    string
	Balance float64
}

// ChangeUser carries a partial user update; nil fields are left untouched.
type ChangeUser struct {
	Name    *string
	Balance *float64
}

// CreatePost carries the creatable fields of a post. AuthorID is passed
// through uninterpreted; referential validity is the store's concern.
type CreatePost struct {
	Title    string
	Content  *string
	AuthorID string
}

// ChangePost carries a partial post update; nil fields are left untouched.
type ChangePost struct {
	Title   *string
	Content *string
}

// CreateProfile carries the creatable fields of a profile. UserID and
// MemberTypeID are passed through uninterpreted.
type CreateProfile struct {
	IsMale       bool
	YearOfBirth  *int
	UserID       string
	MemberTypeID MemberTypeID
}

// ChangeProfile carries a partial profile update; nil fields are left
// untouched.
type ChangeProfile struct {
	IsMale       *bool
	YearOfBirth  *int
	MemberTypeID *MemberTypeID
}
