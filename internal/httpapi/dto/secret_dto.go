package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/vaultkeep/internal/crypto/domain"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
)

// PutSecretRequest contains the parameters for creating or updating a
// secret. The key is taken from the URL path, not the body. Value is
// base64-encoded so both string and binary secrets share one wire shape.
type PutSecretRequest struct {
	Type        secretsDomain.Type `json:"type"`
	Value       string             `json:"value"`
	Description string             `json:"description,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
}

// Validate checks that the put secret request is well-formed.
func (r *PutSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required, validation.In(secretsDomain.TypeString, secretsDomain.TypeBinary)),
		validation.Field(&r.Value, validation.Required, customValidation.Base64),
		validation.Field(&r.Description, validation.Length(0, 1024)),
	)
}

// PutSecretResponse reports the identity and version number a Put produced.
type PutSecretResponse struct {
	SecretID   string `json:"secret_id"`
	NewVersion uint   `json:"new_version"`
}

// MapPutOutputToResponse converts a Put output to its API representation.
func MapPutOutputToResponse(output *secretsDomain.PutOutput) PutSecretResponse {
	return PutSecretResponse{
		SecretID:   output.SecretID.String(),
		NewVersion: output.NewVersion,
	}
}

// GetSecretResponse carries a decrypted secret's metadata and plaintext.
// Plaintext is base64-encoded on the wire and zeroed server-side immediately
// after marshaling.
type GetSecretResponse struct {
	SecretID    string   `json:"secret_id"`
	Key         string   `json:"key"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Version     uint     `json:"version"`
	Value       string   `json:"value"`
}

// MapDecryptedSecretToResponse converts a decrypted secret to its API
// representation. Callers must zero decrypted.Plaintext after calling this.
func MapDecryptedSecretToResponse(decrypted *secretsDomain.DecryptedSecret, value string) GetSecretResponse {
	return GetSecretResponse{
		SecretID:    decrypted.SecretID.String(),
		Key:         decrypted.Key,
		Type:        string(decrypted.Type),
		Description: decrypted.Description,
		Tags:        decrypted.Tags,
		Version:     decrypted.Version,
		Value:       value,
	}
}

// ListItemResponse is the non-sensitive API representation of a secret:
// metadata only, never a value.
type ListItemResponse struct {
	Key            string    `json:"key"`
	Type           string    `json:"type"`
	Description    string    `json:"description,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CurrentVersion uint      `json:"current_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListSecretsResponse is a paginated list of secret metadata.
type ListSecretsResponse struct {
	Data  []ListItemResponse `json:"data"`
	Total int                `json:"total"`
}

// MapListItemsToResponse converts domain list items to their API representation.
func MapListItemsToResponse(items []*secretsDomain.ListItem, total int) ListSecretsResponse {
	data := make([]ListItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, ListItemResponse{
			Key:            item.Key,
			Type:           string(item.Type),
			Description:    item.Description,
			Tags:           item.Tags,
			CurrentVersion: item.CurrentVersion,
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      item.UpdatedAt,
		})
	}
	return ListSecretsResponse{Data: data, Total: total}
}

// VersionSummaryResponse is the non-sensitive API representation of a
// secret's version history entry.
type VersionSummaryResponse struct {
	Version   uint      `json:"version"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ListVersionsResponse is a paginated list of version summaries.
type ListVersionsResponse struct {
	Data []VersionSummaryResponse `json:"data"`
}

// MapVersionsToResponse converts domain version summaries to their API representation.
func MapVersionsToResponse(versions []*secretsDomain.VersionSummary) ListVersionsResponse {
	data := make([]VersionSummaryResponse, 0, len(versions))
	for _, v := range versions {
		data = append(data, VersionSummaryResponse{
			Version:   v.Version,
			CreatedBy: v.CreatedBy,
			CreatedAt: v.CreatedAt,
		})
	}
	return ListVersionsResponse{Data: data}
}

// RotateKeyringRequest contains the parameters for rotating a workspace's keyring.
type RotateKeyringRequest struct {
	Algorithm domain.Algorithm `json:"algorithm"`
}

// Validate checks that the rotate keyring request is well-formed.
func (r *RotateKeyringRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Algorithm, validation.Required, validation.In(domain.AESGCM, domain.ChaCha20)),
	)
}
