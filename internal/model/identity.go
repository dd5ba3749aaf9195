package model

// Identity is the caller identity resolved from a verified bearer token.
// It is passed explicitly into operations that need to know who is calling;
// role membership is not carried in the token and is resolved from the user
// record when an authorization check needs it.
type Identity struct {
	UserID UserID
	Name   string
	Email  string
}
