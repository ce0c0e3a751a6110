package opencode

import "strings"

// TextOf joins the text of all "text"-typed parts with newlines, preserving
// part order. The result is trimmed iff trim is set.
func TextOf(parts []Part, trim bool) string {
	texts := make([]string, 0, len(parts))

	for _, part := range parts {
		if part.Type != "text" {
			continue
		}

		texts = append(texts, part.Text)
	}

	joined := strings.Join(texts, "\n")

	if trim {
		return strings.TrimSpace(joined)
	}

	return joined
}

// ToolOutputOf joins the execution output of all "tool"-typed parts. Each
// part contributes state.output, falling back to state.metadata.output when
// state.output is absent or empty.
func ToolOutputOf(parts []Part) string {
	outputs := make([]string, 0, len(parts))

	for _, part := range parts {
		if part.Type != "tool" || part.State == nil {
			continue
		}

		output := part.State.Output

		if output == "" {
			if metaOutput, ok := part.State.Metadata["output"].(string); ok {
				output = metaOutput
			}
		}

		if output == "" {
			continue
		}

		outputs = append(outputs, output)
	}

	return strings.Join(outputs, "\n")
}
