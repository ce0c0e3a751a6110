package domain

type NodePropertyType string

const (
	NodePropertyType_String  NodePropertyType = "string"
	NodePropertyType_Text    NodePropertyType = "text"
	NodePropertyType_Integer NodePropertyType = "integer"
	NodePropertyType_Number  NodePropertyType = "number"
	NodePropertyType_Boolean NodePropertyType = "boolean"
	NodePropertyType_Map     NodePropertyType = "map"
)

type NodeProperty struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Required    bool             `json:"required"`
	Hidden      bool             `json:"hidden"`
	Advanced    bool             `json:"advanced"` // For advanced options that should be hidden by default
	Type        NodePropertyType `json:"type"`
	IsSecret    bool             `json:"is_secret,omitempty"`

	// UI Display
	Placeholder string `json:"placeholder,omitempty"`
	Help        string `json:"help,omitempty"`

	// Options based on type
	Options []NodePropertyOption `json:"options,omitempty"`

	// Dynamic behavior
	DependsOn *DependsOn `json:"depends_on,omitempty"`
	HideIf    *HideIf    `json:"hide_if,omitempty"`
	ShowIf    *ShowIf    `json:"show_if,omitempty"`

	// Dynamic data loading
	Peekable     bool                    `json:"peekable"`
	PeekableType IntegrationPeekableType `json:"peekable_type,omitempty"`

	ExpressionChoice bool `json:"expression_choice"`
}

type NodePropertyOption struct {
	Label       string `json:"label"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}

type DependsOn struct {
	PropertyKey string `json:"property_key"`
	Value       any    `json:"value"`
}

type HideIf struct {
	PropertyKey string `json:"property_key"`
	Values      []any  `json:"values"`
}

type ShowIf struct {
	PropertyKey string `json:"property_key"`
	Values      []any  `json:"values"`
}
