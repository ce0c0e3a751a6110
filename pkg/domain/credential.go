package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

type CredentialType string

var (
	CredentialTypeDefault CredentialType = "default"
)

type Credential struct {
	ID              string
	Name            string
	Type            CredentialType
	IntegrationType IntegrationType

	DecryptedPayload map[string]any
}

// CredentialManager resolves a credential id to its decrypted payload.
type CredentialManager interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error)
	GetFullCredential(ctx context.Context, credentialID string) (Credential, error)
}

// CredentialGetter retrieves and unmarshals a credential payload into the
// integration's typed credential struct.
type CredentialGetter[T any] interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) (T, error)
}

type TypedCredentialGetter[T any] struct {
	manager CredentialManager
}

func NewTypedCredentialGetter[T any](manager CredentialManager) *TypedCredentialGetter[T] {
	return &TypedCredentialGetter[T]{
		manager: manager,
	}
}

func (e *TypedCredentialGetter[T]) GetDecryptedCredential(ctx context.Context, credentialID string) (T, error) {
	var zero T

	decryptedBytes, err := e.manager.GetDecryptedCredential(ctx, credentialID)
	if err != nil {
		return zero, fmt.Errorf("failed to get decrypted credential: %w", err)
	}

	var result T
	if err := json.Unmarshal(decryptedBytes, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return result, nil
}

// StaticCredentialManager serves credentials held in memory. It backs the CLI
// and tests, where no platform credential store exists.
type StaticCredentialManager struct {
	payloadsByID map[string]map[string]any
}

func NewStaticCredentialManager() *StaticCredentialManager {
	return &StaticCredentialManager{
		payloadsByID: make(map[string]map[string]any),
	}
}

func (m *StaticCredentialManager) SetCredential(credentialID string, payload map[string]any) {
	m.payloadsByID[credentialID] = payload
}

func (m *StaticCredentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	payload, ok := m.payloadsByID[credentialID]
	if !ok {
		return nil, fmt.Errorf("credential %s not found", credentialID)
	}

	return json.Marshal(payload)
}

func (m *StaticCredentialManager) GetFullCredential(ctx context.Context, credentialID string) (Credential, error) {
	payload, ok := m.payloadsByID[credentialID]
	if !ok {
		return Credential{}, fmt.Errorf("credential %s not found", credentialID)
	}

	return Credential{
		ID:               credentialID,
		Type:             CredentialTypeDefault,
		DecryptedPayload: payload,
	}, nil
}
