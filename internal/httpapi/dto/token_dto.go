package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing a new bearer token.
// ExpiresInSeconds of 0 means the token never expires.
type IssueTokenRequest struct {
	Name             string                 `json:"name"`
	Role             authDomain.Role        `json:"role"`
	Scopes           []authDomain.Permission `json:"scopes,omitempty"`
	ExpiresInSeconds int                     `json:"expires_in_seconds,omitempty"`
}

// Validate checks that the issue token request is well-formed.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Role, validation.Required, validation.By(validateRole)),
		validation.Field(&r.ExpiresInSeconds, validation.Min(0)),
	)
}

func validateRole(value interface{}) error {
	role, ok := value.(authDomain.Role)
	if !ok {
		return validation.NewError("validation_role_type", "must be a role")
	}
	if !authDomain.IsValidRole(role) {
		return validation.NewError("validation_role_invalid", "must be one of: admin, write, read")
	}
	return nil
}

// IssueTokenResponse is returned once, at issuance, and carries the only
// copy of the token's cleartext value the caller will ever see.
type IssueTokenResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MapIssueTokenToResponse converts a token use case output to its API representation.
func MapIssueTokenToResponse(output *authDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		ID:        output.Token.ID.String(),
		Name:      output.Token.Name,
		Role:      string(output.Token.Role),
		Token:     output.PlainToken,
		ExpiresAt: output.Token.ExpiresAt,
	}
}

// TokenResponse is the non-sensitive API representation of an issued token,
// used for listing: never the cleartext or hash.
type TokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListTokensResponse lists every token issued within a workspace; token
// listing is not paginated.
type ListTokensResponse struct {
	Data []TokenResponse `json:"data"`
}

// MapTokensToListResponse converts domain tokens to their API representation.
func MapTokensToListResponse(tokens []*authDomain.Token) ListTokensResponse {
	data := make([]TokenResponse, 0, len(tokens))
	for _, token := range tokens {
		data = append(data, TokenResponse{
			ID:         token.ID.String(),
			Name:       token.Name,
			Role:       string(token.Role),
			IsActive:   token.IsActive,
			ExpiresAt:  token.ExpiresAt,
			LastUsedAt: token.LastUsedAt,
			CreatedAt:  token.CreatedAt,
		})
	}
	return ListTokensResponse{Data: data}
}
