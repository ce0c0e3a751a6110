package opencodeintegration

import (
	"fmt"
	"strings"

	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
)

// ModelSelectorSeparator joins a provider id and a model id into the flat
// string stored as the UI parameter value. Ids containing the separator are
// not supported.
const ModelSelectorSeparator = "::"

// EncodeModelSelector builds the composite "providerID::modelID" value.
func EncodeModelSelector(providerID, modelID string) string {
	return providerID + ModelSelectorSeparator + modelID
}

// DecodeModelSelector splits a composite selector back into a model
// reference. An empty selector decodes to nil, meaning the server picks its
// default model.
func DecodeModelSelector(selector string) (*opencode.ModelRef, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, nil
	}

	providerID, modelID, found := strings.Cut(selector, ModelSelectorSeparator)
	if !found || providerID == "" || modelID == "" {
		return nil, fmt.Errorf("invalid model selector %q, expected providerID%smodelID", selector, ModelSelectorSeparator)
	}

	return &opencode.ModelRef{
		ProviderID: providerID,
		ModelID:    modelID,
	}, nil
}
