package opencode

// Session represents a conversation session owned by the OpenCode server.
// This client never caches sessions; every reference is a fresh lookup or a
// passed-through id.
type Session struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Version   string       `json:"version,omitempty"`
	Directory string       `json:"directory,omitempty"`
	Time      *SessionTime `json:"time,omitempty"`
}

type SessionTime struct {
	Created int64 `json:"created,omitempty"`
	Updated int64 `json:"updated,omitempty"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

// ModelRef selects a provider/model pair for a request.
type ModelRef struct {
	ProviderID string `json:"providerID"`
	ModelID    string `json:"modelID"`
}

// TextPartInput is the only part type this client sends.
type TextPartInput struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func TextParts(text string) []TextPartInput {
	return []TextPartInput{{Type: "text", Text: text}}
}

// ChatInput is the request body for POST /session/:id/message and
// POST /session/:id/prompt_async.
type ChatInput struct {
	Parts     []TextPartInput `json:"parts"`
	Model     *ModelRef       `json:"model,omitempty"`
	Agent     string          `json:"agent,omitempty"`
	MessageID string          `json:"messageID,omitempty"`
	System    string          `json:"system,omitempty"`
	NoReply   bool            `json:"noReply,omitempty"`
	Tools     map[string]bool `json:"tools,omitempty"`
}

// CommandInput is the request body for POST /session/:id/command.
type CommandInput struct {
	Command   string    `json:"command"`
	Arguments any       `json:"arguments,omitempty"`
	MessageID string    `json:"messageID,omitempty"`
	Agent     string    `json:"agent,omitempty"`
	Model     *ModelRef `json:"model,omitempty"`
}

// ShellInput is the request body for POST /session/:id/shell.
type ShellInput struct {
	Command string    `json:"command"`
	Agent   string    `json:"agent"`
	Model   *ModelRef `json:"model,omitempty"`
}

// TokenUsage mirrors the server's token accounting on assistant messages.
type TokenUsage struct {
	Input     float64    `json:"input"`
	Output    float64    `json:"output"`
	Reasoning float64    `json:"reasoning"`
	Cache     CacheUsage `json:"cache"`
}

type CacheUsage struct {
	Read  float64 `json:"read"`
	Write float64 `json:"write"`
}

// MessageInfo carries the metadata of a message.
type MessageInfo struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"sessionID"`
	Role       string      `json:"role"`
	ProviderID string      `json:"providerID,omitempty"`
	ModelID    string      `json:"modelID,omitempty"`
	Tokens     *TokenUsage `json:"tokens,omitempty"`
	Cost       float64     `json:"cost,omitempty"`
}

// Part is a discriminated fragment of a message: text content, a tool
// invocation, or a tool result; Type selects which fields are meaningful.
type Part struct {
	ID        string     `json:"id,omitempty"`
	MessageID string     `json:"messageID,omitempty"`
	SessionID string     `json:"sessionID,omitempty"`
	Type      string     `json:"type"`
	Text      string     `json:"text,omitempty"`
	Tool      string     `json:"tool,omitempty"`
	CallID    string     `json:"callID,omitempty"`
	State     *PartState `json:"state,omitempty"`
}

// PartState holds tool-execution state for "tool"-typed parts.
type PartState struct {
	Status   string         `json:"status,omitempty"`
	Input    map[string]any `json:"input,omitempty"`
	Output   string         `json:"output,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ChatResponse is the reply to a synchronous message, command, or shell call.
type ChatResponse struct {
	Info  MessageInfo `json:"info"`
	Parts []Part      `json:"parts"`
}

// Message is a stored message fetched from the server.
type Message struct {
	Info  MessageInfo `json:"info"`
	Parts []Part      `json:"parts"`
}

// Model is a selectable model of a provider.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is a named upstream model source.
type Provider struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Models map[string]Model `json:"models"`
}

type providersResponse struct {
	Providers []Provider        `json:"providers"`
	Default   map[string]string `json:"default,omitempty"`
}

// Agent is a configured agent profile on the server.
type Agent struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Mode        string `json:"mode,omitempty"`
}

// Command is a user-defined command on the server.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Template    string `json:"template,omitempty"`
}
