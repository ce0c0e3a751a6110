package opencodeintegration

import (
	"github.com/flowbaker/flowbaker-opencode/pkg/domain"
)

var (
	OpenCodeSchema = domain.Integration{
		ID:          domain.IntegrationType_OpenCode,
		Name:        "OpenCode",
		Description: "Drive an OpenCode AI coding assistant server: run prompts, commands, shell tasks and skills inside sessions.",
		CredentialProperties: []domain.NodeProperty{
			{
				Key:         "base_url",
				Name:        "Server URL",
				Description: "Base URL of the OpenCode server",
				Placeholder: "http://localhost:4096",
				Required:    true,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "username",
				Name:        "Username",
				Description: "Basic auth username configured on the server",
				Required:    false,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "password",
				Name:        "Password",
				Description: "Basic auth password configured on the server",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
		},
		CanTestConnection: true,
		Actions: []domain.IntegrationAction{
			{
				ID:                "list_sessions",
				Name:              "List Sessions",
				Description:       "List all sessions on the server",
				ActionType:        OpenCodeActionType_ListSessions,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
			},
			{
				ID:                "get_session",
				Name:              "Get Session",
				Description:       "Fetch a single session by id",
				ActionType:        OpenCodeActionType_GetSession,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					sessionIDProperty(true),
				},
			},
			{
				ID:                "create_session",
				Name:              "Create Session",
				Description:       "Create a new session",
				ActionType:        OpenCodeActionType_CreateSession,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					{
						Key:         "title",
						Name:        "Title",
						Description: "Title of the new session",
						Required:    false,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:                "delete_session",
				Name:              "Delete Session",
				Description:       "Delete a session and its messages",
				ActionType:        OpenCodeActionType_DeleteSession,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					sessionIDProperty(true),
				},
			},
			{
				ID:                "abort_session",
				Name:              "Abort Session",
				Description:       "Abort the in-flight run of a session",
				ActionType:        OpenCodeActionType_AbortSession,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					sessionIDProperty(true),
				},
			},
			{
				ID:                "send_message",
				Name:              "Send Message",
				Description:       "Send a prompt to the assistant and wait for its reply",
				ActionType:        OpenCodeActionType_SendMessage,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow, domain.UsageContextTool},
				Properties: chatActionProperties(
					domain.NodeProperty{
						Key:         "prompt",
						Name:        "Prompt",
						Description: "The prompt to send to the assistant",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					modelProperty(),
					agentProperty(),
					systemPromptProperty(),
					domain.NodeProperty{
						Key:         "no_reply",
						Name:        "No Reply",
						Description: "Record the message without triggering an assistant reply",
						Required:    false,
						Advanced:    true,
						Type:        domain.NodePropertyType_Boolean,
					},
				),
			},
			{
				ID:                "send_message_async",
				Name:              "Send Message (Async)",
				Description:       "Queue a prompt without waiting for the reply",
				ActionType:        OpenCodeActionType_SendMessageAsync,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: appendProperties(
					[]domain.NodeProperty{
						{
							Key:         "prompt",
							Name:        "Prompt",
							Description: "The prompt to send to the assistant",
							Required:    true,
							Type:        domain.NodePropertyType_Text,
						},
						modelProperty(),
						agentProperty(),
						systemPromptProperty(),
					},
					sessionScopeProperties(),
				),
			},
			{
				ID:                "run_command",
				Name:              "Run Command",
				Description:       "Run a server-side slash command",
				ActionType:        OpenCodeActionType_RunCommand,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: chatActionProperties(
					domain.NodeProperty{
						Key:          "command",
						Name:         "Command",
						Description:  "The command to run, with or without the leading slash",
						Required:     true,
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: OpenCodePeekable_Commands,
					},
					domain.NodeProperty{
						Key:         "command_arguments",
						Name:        "Arguments",
						Description: "Command arguments, as plain text or a JSON object",
						Required:    false,
						Type:        domain.NodePropertyType_Text,
					},
					agentProperty(),
					modelProperty(),
				),
			},
			{
				ID:                "run_shell",
				Name:              "Run Shell Command",
				Description:       "Run a shell command through the assistant's shell tool",
				ActionType:        OpenCodeActionType_RunShell,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: chatActionProperties(
					domain.NodeProperty{
						Key:         "command",
						Name:        "Command",
						Description: "The shell command to run",
						Required:    true,
						Type:        domain.NodePropertyType_Text,
					},
					agentProperty(),
					modelProperty(),
				),
			},
			{
				ID:                "run_skill",
				Name:              "Run Skill",
				Description:       "Run a locally defined skill as a prompt",
				ActionType:        OpenCodeActionType_RunSkill,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: chatActionProperties(
					domain.NodeProperty{
						Key:          "skill",
						Name:         "Skill",
						Description:  "Name of the skill to run",
						Required:     true,
						Type:         domain.NodePropertyType_String,
						Peekable:     true,
						PeekableType: OpenCodePeekable_Skills,
					},
					domain.NodeProperty{
						Key:         "input",
						Name:        "Input",
						Description: "Input text appended to the skill instructions",
						Required:    false,
						Type:        domain.NodePropertyType_Text,
					},
					modelProperty(),
					agentProperty(),
				),
			},
			{
				ID:                "list_messages",
				Name:              "List Messages",
				Description:       "List the messages of a session",
				ActionType:        OpenCodeActionType_ListMessages,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					sessionIDProperty(true),
					{
						Key:         "limit",
						Name:        "Limit",
						Description: "Maximum number of messages to return",
						Required:    false,
						Type:        domain.NodePropertyType_Integer,
					},
				},
			},
			{
				ID:                "get_message",
				Name:              "Get Message",
				Description:       "Fetch a single message with its parts",
				ActionType:        OpenCodeActionType_GetMessage,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
				Properties: []domain.NodeProperty{
					sessionIDProperty(true),
					{
						Key:         "message_id",
						Name:        "Message ID",
						Description: "The id of the message to fetch",
						Required:    true,
						Type:        domain.NodePropertyType_String,
					},
				},
			},
			{
				ID:                "list_providers",
				Name:              "List Providers",
				Description:       "List the configured model providers and their models",
				ActionType:        OpenCodeActionType_ListProviders,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
			},
			{
				ID:                "list_agents",
				Name:              "List Agents",
				Description:       "List the agent profiles configured on the server",
				ActionType:        OpenCodeActionType_ListAgents,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
			},
			{
				ID:                "list_commands",
				Name:              "List Commands",
				Description:       "List the slash commands configured on the server",
				ActionType:        OpenCodeActionType_ListCommands,
				SupportedContexts: []domain.ActionUsageContext{domain.UsageContextWorkflow},
			},
		},
	}
)

func sessionIDProperty(required bool) domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "session_id",
		Name:         "Session",
		Description:  "The session to operate on",
		Required:     required,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenCodePeekable_Sessions,
	}
}

func modelProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "model",
		Name:         "Model",
		Description:  "Provider and model to use. Leave empty for the server default.",
		Required:     false,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenCodePeekable_Models,
	}
}

func agentProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:          "agent",
		Name:         "Agent",
		Description:  "Agent profile to use. Leave empty for the server default.",
		Required:     false,
		Type:         domain.NodePropertyType_String,
		Peekable:     true,
		PeekableType: OpenCodePeekable_Agents,
	}
}

func systemPromptProperty() domain.NodeProperty {
	return domain.NodeProperty{
		Key:         "system_prompt",
		Name:        "System Prompt",
		Description: "Optional system prompt overriding the agent default",
		Required:    false,
		Advanced:    true,
		Type:        domain.NodePropertyType_Text,
	}
}

// sessionScopeProperties are shared by every action that talks to the
// assistant inside a session.
func sessionScopeProperties() []domain.NodeProperty {
	return []domain.NodeProperty{
		{
			Key:         "session_mode",
			Name:        "Session",
			Description: "Run in an existing session or in a temporary one deleted afterwards",
			Required:    true,
			Type:        domain.NodePropertyType_String,
			Options: []domain.NodePropertyOption{
				{
					Label:       "Existing Session",
					Value:       "existing",
					Description: "Use a session that already exists on the server",
				},
				{
					Label:       "Temporary Session",
					Value:       "temporary",
					Description: "Create a session for this run and delete it when done",
				},
			},
		},
		{
			Key:          "session_id",
			Name:         "Session ID",
			Description:  "The existing session to use",
			Required:     false,
			Type:         domain.NodePropertyType_String,
			Peekable:     true,
			PeekableType: OpenCodePeekable_Sessions,
			ShowIf: &domain.ShowIf{
				PropertyKey: "session_mode",
				Values:      []any{"existing"},
			},
		},
		{
			Key:         "temporary_session_title",
			Name:        "Temporary Session Title",
			Description: "Title given to the temporary session",
			Required:    false,
			Advanced:    true,
			Type:        domain.NodePropertyType_String,
			ShowIf: &domain.ShowIf{
				PropertyKey: "session_mode",
				Values:      []any{"temporary"},
			},
		},
	}
}

func responseShapeProperties() []domain.NodeProperty {
	return []domain.NodeProperty{
		{
			Key:         "simple_response",
			Name:        "Simple Response",
			Description: "Return only the reply text instead of the full message record",
			Required:    false,
			Type:        domain.NodePropertyType_Boolean,
		},
		{
			Key:         "trim_response",
			Name:        "Trim Response",
			Description: "Trim surrounding whitespace from the reply text",
			Required:    false,
			Advanced:    true,
			Type:        domain.NodePropertyType_Boolean,
		},
	}
}

func chatActionProperties(props ...domain.NodeProperty) []domain.NodeProperty {
	return appendProperties(props, sessionScopeProperties(), responseShapeProperties())
}

func appendProperties(props []domain.NodeProperty, groups ...[]domain.NodeProperty) []domain.NodeProperty {
	out := append([]domain.NodeProperty{}, props...)
	for _, group := range groups {
		out = append(out, group...)
	}

	return out
}
