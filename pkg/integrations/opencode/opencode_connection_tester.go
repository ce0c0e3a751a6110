package opencodeintegration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
)

type OpenCodeConnectionTester struct{}

func NewOpenCodeConnectionTester(deps domain.IntegrationDeps) domain.IntegrationConnectionTester {
	return &OpenCodeConnectionTester{}
}

// TestConnection verifies the credential by listing sessions.
func (t *OpenCodeConnectionTester) TestConnection(ctx context.Context, params domain.TestConnectionParams) (bool, error) {
	payload, err := json.Marshal(params.Credential.DecryptedPayload)
	if err != nil {
		return false, fmt.Errorf("failed to marshal credential payload: %w", err)
	}

	var credential OpenCodeCredential
	if err := json.Unmarshal(payload, &credential); err != nil {
		return false, fmt.Errorf("failed to unmarshal OpenCode credential: %w", err)
	}

	if credential.BaseURL == "" {
		return false, fmt.Errorf("base_url is required")
	}

	client := opencode.NewClient(
		opencode.WithBaseURL(strings.TrimRight(credential.BaseURL, "/")),
		opencode.WithBasicAuth(credential.Username, credential.Password),
	)

	if _, err := client.ListSessions(ctx); err != nil {
		return false, fmt.Errorf("failed to connect to OpenCode server: %w", err)
	}

	return true, nil
}
