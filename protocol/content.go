package protocol

import (
	"encoding/json"
	"strings"

	"github.com/viant/mcp-protocol/schema"
)

const (
	// ContentTypeText is the only content type carrying displayable text
	ContentTypeText = "text"
	// NoDescription replaces a missing tool description
	NoDescription = "No description"
)

// ContentItem represents a tools/call content element, raw JSON is preserved so that
// non text items pass through unchanged
type ContentItem struct {
	Type string
	Text string
	raw  json.RawMessage
}

// NewTextContent creates a text content item
func NewTextContent(text string) ContentItem {
	return ContentItem{Type: ContentTypeText, Text: text}
}

// IsText returns true for text items
func (c ContentItem) IsText() bool {
	return c.Type == ContentTypeText
}

// Raw returns the item as received
func (c ContentItem) Raw() json.RawMessage {
	if len(c.raw) > 0 {
		return c.raw
	}
	data, _ := c.MarshalJSON()
	return data
}

// MarshalJSON returns the original encoding when available
func (c ContentItem) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	}{c.Type, c.Text})
}

func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	c.Type = head.Type
	c.Text = ""
	if head.Type == ContentTypeText {
		c.Text = head.Text
	}
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// CallToolResult represents tools/call result
type CallToolResult struct {
	Content           []ContentItem   `json:"content"`
	IsError           bool            `json:"isError,omitempty"`
	StructuredContent json.RawMessage `json:"structuredContent,omitempty"`
}

// Texts returns text of every text item in order
func (r *CallToolResult) Texts() []string {
	var ret []string
	for _, item := range r.Content {
		if item.IsText() {
			ret = append(ret, item.Text)
		}
	}
	return ret
}

// Text returns text items joined with new line
func (r *CallToolResult) Text() string {
	return strings.Join(r.Texts(), "\n")
}

// ToolDescription returns tool description or NoDescription
func ToolDescription(tool *schema.Tool) string {
	if tool == nil || tool.Description == nil || *tool.Description == "" {
		return NoDescription
	}
	return *tool.Description
}
