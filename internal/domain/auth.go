package domain

// TokenKind differentiates access and refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Role Role
}
