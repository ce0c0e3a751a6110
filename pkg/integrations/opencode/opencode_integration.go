package opencodeintegration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowbaker/flowbaker-opencode/pkg/clients/opencode"
	"github.com/flowbaker/flowbaker-opencode/pkg/domain"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

const (
	OpenCodeActionType_ListSessions  domain.IntegrationActionType = "opencode_list_sessions"
	OpenCodeActionType_GetSession    domain.IntegrationActionType = "opencode_get_session"
	OpenCodeActionType_CreateSession domain.IntegrationActionType = "opencode_create_session"
	OpenCodeActionType_DeleteSession domain.IntegrationActionType = "opencode_delete_session"
	OpenCodeActionType_AbortSession  domain.IntegrationActionType = "opencode_abort_session"

	OpenCodeActionType_SendMessage      domain.IntegrationActionType = "opencode_send_message"
	OpenCodeActionType_SendMessageAsync domain.IntegrationActionType = "opencode_send_message_async"
	OpenCodeActionType_RunCommand       domain.IntegrationActionType = "opencode_run_command"
	OpenCodeActionType_RunShell         domain.IntegrationActionType = "opencode_run_shell"
	OpenCodeActionType_RunSkill         domain.IntegrationActionType = "opencode_run_skill"
	OpenCodeActionType_ListMessages     domain.IntegrationActionType = "opencode_list_messages"
	OpenCodeActionType_GetMessage       domain.IntegrationActionType = "opencode_get_message"

	OpenCodeActionType_ListProviders domain.IntegrationActionType = "opencode_list_providers"
	OpenCodeActionType_ListAgents    domain.IntegrationActionType = "opencode_list_agents"
	OpenCodeActionType_ListCommands  domain.IntegrationActionType = "opencode_list_commands"

	OpenCodePeekable_Sessions domain.IntegrationPeekableType = "opencode_sessions"
	OpenCodePeekable_Models   domain.IntegrationPeekableType = "opencode_models"
	OpenCodePeekable_Agents   domain.IntegrationPeekableType = "opencode_agents"
	OpenCodePeekable_Commands domain.IntegrationPeekableType = "opencode_commands"
	OpenCodePeekable_Skills   domain.IntegrationPeekableType = "opencode_skills"
)

type OpenCodeCredential struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type OpenCodeIntegrationCreator struct {
	binder           domain.IntegrationParameterBinder
	credentialGetter domain.CredentialGetter[OpenCodeCredential]
	skillDirectories []string
}

func NewOpenCodeIntegrationCreator(deps domain.IntegrationDeps) domain.IntegrationCreator {
	return &OpenCodeIntegrationCreator{
		binder:           deps.ParameterBinder,
		credentialGetter: domain.NewTypedCredentialGetter[OpenCodeCredential](deps.CredentialManager),
		skillDirectories: deps.SkillDirectories,
	}
}

func (c *OpenCodeIntegrationCreator) CreateIntegration(ctx context.Context, p domain.CreateIntegrationParams) (domain.IntegrationExecutor, error) {
	return NewOpenCodeIntegration(ctx, OpenCodeIntegrationDependencies{
		CredentialID:     p.CredentialID,
		ParameterBinder:  c.binder,
		CredentialGetter: c.credentialGetter,
		SkillDirectories: c.skillDirectories,
	})
}

type OpenCodeIntegration struct {
	client opencode.ClientInterface
	binder domain.IntegrationParameterBinder

	skillDirectories []string

	actionManager *domain.IntegrationActionManager
	peekFuncs     map[domain.IntegrationPeekableType]domain.PeekFunc
}

type OpenCodeIntegrationDependencies struct {
	CredentialID     string
	ParameterBinder  domain.IntegrationParameterBinder
	CredentialGetter domain.CredentialGetter[OpenCodeCredential]
	SkillDirectories []string
}

func NewOpenCodeIntegration(ctx context.Context, deps OpenCodeIntegrationDependencies) (*OpenCodeIntegration, error) {
	credential, err := deps.CredentialGetter.GetDecryptedCredential(ctx, deps.CredentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decrypted OpenCode credential: %w", err)
	}

	if credential.BaseURL == "" {
		return nil, fmt.Errorf("base_url is required for OpenCode integration")
	}

	client := opencode.NewClient(
		opencode.WithBaseURL(strings.TrimRight(credential.BaseURL, "/")),
		opencode.WithBasicAuth(credential.Username, credential.Password),
		opencode.WithLogger(log.Logger),
	)

	return NewOpenCodeIntegrationWithClient(client, deps), nil
}

// NewOpenCodeIntegrationWithClient wires an integration around an existing
// client. Used by the creator and by the AI-SDK adapters that already hold
// one.
func NewOpenCodeIntegrationWithClient(client opencode.ClientInterface, deps OpenCodeIntegrationDependencies) *OpenCodeIntegration {
	integration := &OpenCodeIntegration{
		client:           client,
		binder:           deps.ParameterBinder,
		skillDirectories: deps.SkillDirectories,
	}

	actionManager := domain.NewIntegrationActionManager().
		AddPerItemMulti(OpenCodeActionType_ListSessions, integration.ListSessions).
		AddPerItem(OpenCodeActionType_GetSession, integration.GetSession).
		AddPerItem(OpenCodeActionType_CreateSession, integration.CreateSession).
		AddPerItem(OpenCodeActionType_DeleteSession, integration.DeleteSession).
		AddPerItem(OpenCodeActionType_AbortSession, integration.AbortSession).
		AddPerItem(OpenCodeActionType_SendMessage, integration.SendMessage).
		AddPerItem(OpenCodeActionType_SendMessageAsync, integration.SendMessageAsync).
		AddPerItem(OpenCodeActionType_RunCommand, integration.RunCommand).
		AddPerItem(OpenCodeActionType_RunShell, integration.RunShell).
		AddPerItem(OpenCodeActionType_RunSkill, integration.RunSkill).
		AddPerItemMulti(OpenCodeActionType_ListMessages, integration.ListMessages).
		AddPerItem(OpenCodeActionType_GetMessage, integration.GetMessage).
		AddPerItemMulti(OpenCodeActionType_ListProviders, integration.ListProviders).
		AddPerItemMulti(OpenCodeActionType_ListAgents, integration.ListAgents).
		AddPerItemMulti(OpenCodeActionType_ListCommands, integration.ListCommands)

	peekFuncs := map[domain.IntegrationPeekableType]domain.PeekFunc{
		OpenCodePeekable_Sessions: integration.PeekSessions,
		OpenCodePeekable_Models:   integration.PeekModels,
		OpenCodePeekable_Agents:   integration.PeekAgents,
		OpenCodePeekable_Commands: integration.PeekCommands,
		OpenCodePeekable_Skills:   integration.PeekSkills,
	}

	integration.actionManager = actionManager
	integration.peekFuncs = peekFuncs

	return integration
}

func (i *OpenCodeIntegration) Execute(ctx context.Context, params domain.IntegrationInput) (domain.IntegrationOutput, error) {
	return i.actionManager.Run(ctx, params.ActionType, params)
}

func (i *OpenCodeIntegration) Peek(ctx context.Context, params domain.PeekParams) (domain.PeekResult, error) {
	peekFunc, ok := i.peekFuncs[params.PeekableType]
	if !ok {
		return domain.PeekResult{}, fmt.Errorf("peek function %s not found for OpenCode integration", params.PeekableType)
	}

	return peekFunc(ctx, params)
}

// sessionScopeParams is shared by every message-sending action.
type sessionScopeParams struct {
	SessionMode    string `json:"session_mode"`
	SessionID      string `json:"session_id"`
	TemporaryTitle string `json:"temporary_session_title"`
}

func (p sessionScopeParams) scope() opencode.SessionScope {
	mode := opencode.SessionMode(p.SessionMode)
	if mode == "" {
		mode = opencode.SessionModeExisting
	}

	return opencode.SessionScope{
		Mode:      mode,
		SessionID: p.SessionID,
		Title:     p.TemporaryTitle,
	}
}

// responseParams selects the output record shape of chat-shaped actions.
type responseParams struct {
	SimpleResponse bool `json:"simple_response"`
	TrimResponse   bool `json:"trim_response"`
}

type ListSessionsParams struct{}

func (i *OpenCodeIntegration) ListSessions(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	sessions, err := i.client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(sessions))

	for _, session := range sessions {
		sessionItem, err := toItem(session)
		if err != nil {
			return nil, err
		}

		items = append(items, sessionItem)
	}

	return items, nil
}

type GetSessionParams struct {
	SessionID string `json:"session_id"`
}

func (i *OpenCodeIntegration) GetSession(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := GetSessionParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	session, err := i.client.GetSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	return toItem(session)
}

type CreateSessionParams struct {
	Title string `json:"title"`
}

func (i *OpenCodeIntegration) CreateSession(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := CreateSessionParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	session, err := i.client.CreateSession(ctx, &opencode.CreateSessionRequest{Title: p.Title})
	if err != nil {
		return nil, err
	}

	return toItem(session)
}

type DeleteSessionParams struct {
	SessionID string `json:"session_id"`
}

func (i *OpenCodeIntegration) DeleteSession(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := DeleteSessionParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	if err := i.client.DeleteSession(ctx, p.SessionID); err != nil {
		return nil, err
	}

	return map[string]any{
		"deleted":    true,
		"session_id": p.SessionID,
	}, nil
}

type AbortSessionParams struct {
	SessionID string `json:"session_id"`
}

func (i *OpenCodeIntegration) AbortSession(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := AbortSessionParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	record, err := i.client.AbortSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	return record, nil
}

type SendMessageParams struct {
	sessionScopeParams
	responseParams

	Prompt       string `json:"prompt"`
	Model        string `json:"model"`
	Agent        string `json:"agent"`
	SystemPrompt string `json:"system_prompt"`
	NoReply      bool   `json:"no_reply"`
}

func (i *OpenCodeIntegration) SendMessage(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := SendMessageParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	model, err := DecodeModelSelector(p.Model)
	if err != nil {
		return nil, err
	}

	input := &opencode.ChatInput{
		Parts:   opencode.TextParts(p.Prompt),
		Model:   model,
		Agent:   p.Agent,
		System:  p.SystemPrompt,
		NoReply: p.NoReply,
	}

	var response *opencode.ChatResponse

	err = i.client.WithSession(ctx, p.scope(), func(ctx context.Context, sessionID string) error {
		var sendErr error
		response, sendErr = i.client.SendMessage(ctx, sessionID, input)
		return sendErr
	})
	if err != nil {
		return nil, err
	}

	text := opencode.TextOf(response.Parts, p.TrimResponse)

	if p.SimpleResponse {
		return map[string]any{"response": text}, nil
	}

	return chatResponseItem(text, response, map[string]any{
		"prompt": p.Prompt,
		"agent":  p.Agent,
		"model":  p.Model,
	}), nil
}

type SendMessageAsyncParams struct {
	sessionScopeParams

	Prompt       string `json:"prompt"`
	Model        string `json:"model"`
	Agent        string `json:"agent"`
	SystemPrompt string `json:"system_prompt"`
}

func (i *OpenCodeIntegration) SendMessageAsync(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := SendMessageAsyncParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	model, err := DecodeModelSelector(p.Model)
	if err != nil {
		return nil, err
	}

	// Assign the message id client-side so the caller can look the message
	// up later; the server never returns a body for async sends.
	messageID := "msg_" + xid.New().String()

	input := &opencode.ChatInput{
		Parts:     opencode.TextParts(p.Prompt),
		Model:     model,
		Agent:     p.Agent,
		System:    p.SystemPrompt,
		MessageID: messageID,
	}

	var usedSessionID string

	err = i.client.WithSession(ctx, p.scope(), func(ctx context.Context, sessionID string) error {
		usedSessionID = sessionID
		return i.client.SendMessageAsync(ctx, sessionID, input)
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"sent":       true,
		"session_id": usedSessionID,
		"message_id": messageID,
	}, nil
}

type RunCommandParams struct {
	sessionScopeParams
	responseParams

	Command   string `json:"command"`
	Arguments string `json:"command_arguments"`
	Agent     string `json:"agent"`
	Model     string `json:"model"`
}

func (i *OpenCodeIntegration) RunCommand(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := RunCommandParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	if p.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	model, err := DecodeModelSelector(p.Model)
	if err != nil {
		return nil, err
	}

	input := &opencode.CommandInput{
		Command:   strings.TrimPrefix(p.Command, "/"),
		Arguments: parseCommandArguments(p.Arguments),
		Agent:     p.Agent,
		Model:     model,
	}

	var response *opencode.ChatResponse

	err = i.client.WithSession(ctx, p.scope(), func(ctx context.Context, sessionID string) error {
		var runErr error
		response, runErr = i.client.RunCommand(ctx, sessionID, input)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	text := opencode.TextOf(response.Parts, p.TrimResponse)

	if p.SimpleResponse {
		return map[string]any{"response": text}, nil
	}

	return chatResponseItem(text, response, map[string]any{
		"command": p.Command,
	}), nil
}

type RunShellParams struct {
	sessionScopeParams
	responseParams

	Command string `json:"command"`
	Agent   string `json:"agent"`
	Model   string `json:"model"`
}

func (i *OpenCodeIntegration) RunShell(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := RunShellParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	if p.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	model, err := DecodeModelSelector(p.Model)
	if err != nil {
		return nil, err
	}

	agent := p.Agent
	if agent == "" {
		agent = "build"
	}

	input := &opencode.ShellInput{
		Command: p.Command,
		Agent:   agent,
		Model:   model,
	}

	var response *opencode.ChatResponse

	err = i.client.WithSession(ctx, p.scope(), func(ctx context.Context, sessionID string) error {
		var runErr error
		response, runErr = i.client.RunShell(ctx, sessionID, input)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	// Shell replies carry their result in tool parts, not text parts.
	output := opencode.ToolOutputOf(response.Parts)
	if output == "" {
		output = opencode.TextOf(response.Parts, p.TrimResponse)
	} else if p.TrimResponse {
		output = strings.TrimSpace(output)
	}

	if p.SimpleResponse {
		return map[string]any{"response": output}, nil
	}

	return chatResponseItem(output, response, map[string]any{
		"command": p.Command,
	}), nil
}

type RunSkillParams struct {
	sessionScopeParams
	responseParams

	Skill string `json:"skill"`
	Input string `json:"input"`
	Model string `json:"model"`
	Agent string `json:"agent"`
}

func (i *OpenCodeIntegration) RunSkill(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := RunSkillParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	if p.Skill == "" {
		return nil, fmt.Errorf("skill is required")
	}

	skill, err := loadSkill(i.skillDirectories, p.Skill)
	if err != nil {
		return nil, err
	}

	model, err := DecodeModelSelector(p.Model)
	if err != nil {
		return nil, err
	}

	prompt := skill.Instructions
	if p.Input != "" {
		prompt = prompt + "\n\n" + p.Input
	}

	input := &opencode.ChatInput{
		Parts: opencode.TextParts(prompt),
		Model: model,
		Agent: p.Agent,
	}

	var response *opencode.ChatResponse

	err = i.client.WithSession(ctx, p.scope(), func(ctx context.Context, sessionID string) error {
		var sendErr error
		response, sendErr = i.client.SendMessage(ctx, sessionID, input)
		return sendErr
	})
	if err != nil {
		return nil, err
	}

	output := opencode.ToolOutputOf(response.Parts)
	if output == "" {
		output = opencode.TextOf(response.Parts, p.TrimResponse)
	} else if p.TrimResponse {
		output = strings.TrimSpace(output)
	}

	if p.SimpleResponse {
		return map[string]any{"response": output}, nil
	}

	return chatResponseItem(output, response, map[string]any{
		"skill": p.Skill,
	}), nil
}

type ListMessagesParams struct {
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit"`
}

func (i *OpenCodeIntegration) ListMessages(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	p := ListMessagesParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	messages, err := i.client.ListMessages(ctx, p.SessionID, p.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(messages))

	for _, message := range messages {
		messageItem, err := toItem(message)
		if err != nil {
			return nil, err
		}

		items = append(items, messageItem)
	}

	return items, nil
}

type GetMessageParams struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
}

func (i *OpenCodeIntegration) GetMessage(ctx context.Context, params domain.IntegrationInput, item domain.Item) (domain.Item, error) {
	p := GetMessageParams{}

	if err := i.binder.BindToStruct(ctx, item, &p, params.IntegrationParams.Settings); err != nil {
		return nil, err
	}

	if p.MessageID == "" {
		return nil, fmt.Errorf("message id is required")
	}

	message, err := i.client.GetMessage(ctx, p.SessionID, p.MessageID)
	if err != nil {
		return nil, err
	}

	return toItem(message)
}

func (i *OpenCodeIntegration) ListProviders(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	providers, err := i.client.ListProviders(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(providers))

	for _, provider := range providers {
		models := make([]map[string]any, 0, len(provider.Models))

		for _, model := range provider.Models {
			models = append(models, map[string]any{
				"id":       model.ID,
				"name":     model.Name,
				"selector": EncodeModelSelector(provider.ID, model.ID),
			})
		}

		items = append(items, map[string]any{
			"id":     provider.ID,
			"name":   provider.Name,
			"models": models,
		})
	}

	return items, nil
}

func (i *OpenCodeIntegration) ListAgents(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	agents, err := i.client.ListAgents(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(agents))

	for _, agent := range agents {
		agentItem, err := toItem(agent)
		if err != nil {
			return nil, err
		}

		items = append(items, agentItem)
	}

	return items, nil
}

func (i *OpenCodeIntegration) ListCommands(ctx context.Context, params domain.IntegrationInput, item domain.Item) ([]domain.Item, error) {
	commands, err := i.client.ListCommands(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(commands))

	for _, command := range commands {
		commandItem, err := toItem(command)
		if err != nil {
			return nil, err
		}

		items = append(items, commandItem)
	}

	return items, nil
}

// parseCommandArguments treats the raw value as a JSON object when possible
// and otherwise wraps it, so plain text never fails the action.
func parseCommandArguments(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return parsed
	}

	return map[string]any{"input": raw}
}

func chatResponseItem(text string, response *opencode.ChatResponse, echo map[string]any) domain.Item {
	item := map[string]any{
		"response":    text,
		"session_id":  response.Info.SessionID,
		"message_id":  response.Info.ID,
		"provider_id": response.Info.ProviderID,
		"model_id":    response.Info.ModelID,
		"cost":        response.Info.Cost,
	}

	if response.Info.Tokens != nil {
		item["tokens"] = map[string]any{
			"input":     response.Info.Tokens.Input,
			"output":    response.Info.Tokens.Output,
			"reasoning": response.Info.Tokens.Reasoning,
		}
	}

	for key, value := range echo {
		if value == "" || value == nil {
			continue
		}

		item[key] = value
	}

	return item
}

func toItem(v any) (domain.Item, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var item map[string]any
	if err := json.Unmarshal(encoded, &item); err != nil {
		return nil, err
	}

	return item, nil
}
