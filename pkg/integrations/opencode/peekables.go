package opencodeintegration

import (
	"context"
	"fmt"

	"github.com/flowbaker/flowbaker-opencode/pkg/domain"

	"github.com/rs/zerolog/log"
)

// Peek results are presentation data: the UI must always have something to
// show, so remote or filesystem failures collapse into a single sentinel row
// instead of an error or an empty list.

const (
	defaultPeekLimit = 50
	maxPeekLimit     = 200
)

// clampPeekResults caps server-backed lists at the requested page size.
// Sessions and providers are unbounded on the server side; the UI only ever
// shows one page.
func clampPeekResults(params domain.PeekParams, results []domain.PeekResultItem) ([]domain.PeekResultItem, domain.PaginationMetadata) {
	limit := params.GetLimitWithMax(defaultPeekLimit, maxPeekLimit)
	if len(results) <= limit {
		return results, domain.PaginationMetadata{}
	}

	return results[:limit], domain.PaginationMetadata{HasMore: true}
}

func sentinelPeekResult(content string) domain.PeekResult {
	return domain.PeekResult{
		Result: []domain.PeekResultItem{
			{Key: "none", Value: "", Content: content},
		},
	}
}

func nonEmptyPeekResult(results []domain.PeekResultItem, emptyContent string) domain.PeekResult {
	if len(results) == 0 {
		return sentinelPeekResult(emptyContent)
	}

	return domain.PeekResult{Result: results}
}

func (i *OpenCodeIntegration) PeekSessions(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	sessions, err := i.client.ListSessions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list sessions for peek, returning sentinel entry")
		return sentinelPeekResult("Unable to load sessions"), nil
	}

	results := make([]domain.PeekResultItem, 0, len(sessions))

	for _, session := range sessions {
		content := session.Title
		if content == "" {
			content = session.ID
		}

		results = append(results, domain.PeekResultItem{
			Key:     session.ID,
			Value:   session.ID,
			Content: content,
		})
	}

	results, pagination := clampPeekResults(params, results)

	result := nonEmptyPeekResult(results, "No sessions available")
	result.Pagination = pagination

	return result, nil
}

func (i *OpenCodeIntegration) PeekModels(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	providers, err := i.client.ListProviders(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list providers for peek, returning sentinel entry")
		return sentinelPeekResult("Unable to load models"), nil
	}

	results := []domain.PeekResultItem{}

	for _, provider := range providers {
		for _, model := range provider.Models {
			selector := EncodeModelSelector(provider.ID, model.ID)

			content := model.Name
			if content == "" {
				content = model.ID
			}

			results = append(results, domain.PeekResultItem{
				Key:     selector,
				Value:   selector,
				Content: fmt.Sprintf("%s / %s", provider.Name, content),
			})
		}
	}

	results, pagination := clampPeekResults(params, results)

	result := nonEmptyPeekResult(results, "No models available")
	result.Pagination = pagination

	return result, nil
}

func (i *OpenCodeIntegration) PeekAgents(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	agents, err := i.client.ListAgents(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list agents for peek, returning sentinel entry")
		return sentinelPeekResult("Unable to load agents"), nil
	}

	results := make([]domain.PeekResultItem, 0, len(agents))

	for _, agent := range agents {
		content := agent.Name
		if agent.Mode != "" {
			content = fmt.Sprintf("%s (%s)", agent.Name, agent.Mode)
		}

		results = append(results, domain.PeekResultItem{
			Key:     agent.Name,
			Value:   agent.Name,
			Content: content,
		})
	}

	return nonEmptyPeekResult(results, "No agents available"), nil
}

func (i *OpenCodeIntegration) PeekCommands(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	commands, err := i.client.ListCommands(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list commands for peek, returning sentinel entry")
		return sentinelPeekResult("Unable to load commands"), nil
	}

	results := make([]domain.PeekResultItem, 0, len(commands))

	for _, command := range commands {
		content := command.Name
		if command.Description != "" {
			content = fmt.Sprintf("%s - %s", command.Name, command.Description)
		}

		results = append(results, domain.PeekResultItem{
			Key:     command.Name,
			Value:   command.Name,
			Content: content,
		})
	}

	return nonEmptyPeekResult(results, "No commands available"), nil
}

func (i *OpenCodeIntegration) PeekSkills(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	skills, err := scanSkills(i.skillDirectories)
	if err != nil {
		log.Warn().Err(err).Msg("failed to scan skill directories for peek, returning sentinel entry")
		return sentinelPeekResult("Unable to load skills"), nil
	}

	results := make([]domain.PeekResultItem, 0, len(skills))

	for _, skill := range skills {
		content := skill.Name
		if skill.Description != "" {
			content = fmt.Sprintf("%s - %s", skill.Name, skill.Description)
		}

		results = append(results, domain.PeekResultItem{
			Key:     skill.Name,
			Value:   skill.Name,
			Content: content,
		})
	}

	return nonEmptyPeekResult(results, "No skills available"), nil
}
