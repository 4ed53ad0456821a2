package userservice

import "github.com/sushihentaime/bloglist/internal/common"

// Authenticate verifies a bearer credential.
func (s *UserService) Authenticate(token string) (*Claims, error) {
	return s.signer.Verify(token)
}

// Authorize decides whether the bearer of token may modify a record owned by owner.
//
// Records without an owner predate ownership and are open to everyone, so the credential is not
// inspected for them and the returned claims are nil.
func (s *UserService) Authorize(token string, owner *int) (*Claims, error) {
	if owner == nil {
		return nil, nil
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	if claims.UserID != *owner {
		return nil, common.ErrForbidden
	}

	return claims, nil
}
