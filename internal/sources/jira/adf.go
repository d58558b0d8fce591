package jira

import (
	"bytes"
	"encoding/json"
	"strings"
)

// description decodes the Jira description field, which is a plain string
// in API v2 and an Atlassian Document Format tree in API v3.
type description struct {
	Text string
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *description) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Text = ""
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &d.Text)
	}

	var doc adfNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	var b strings.Builder
	doc.render(&b)
	d.Text = strings.TrimSpace(collapseBlankLines(b.String()))
	return nil
}

// adfNode is a node of an Atlassian Document Format tree.
type adfNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text"`
	Attrs   map[string]any `json:"attrs"`
	Content []adfNode      `json:"content"`
}

func (n adfNode) render(b *strings.Builder) {
	switch n.Type {
	case "text":
		b.WriteString(n.Text)
		return
	case "hardBreak":
		b.WriteString("\n")
		return
	case "mention", "emoji", "status":
		b.WriteString(attr(n.Attrs, "text", "shortName"))
		return
	case "inlineCard", "blockCard":
		b.WriteString(attr(n.Attrs, "url"))
		return
	case "rule":
		b.WriteString("\n---\n")
		return
	case "listItem":
		var item strings.Builder
		for _, child := range n.Content {
			child.render(&item)
		}
		b.WriteString("- ")
		b.WriteString(strings.TrimSpace(item.String()))
		b.WriteString("\n")
		return
	case "codeBlock":
		b.WriteString("```\n")
	}

	for _, child := range n.Content {
		child.render(b)
	}

	switch n.Type {
	case "paragraph", "heading", "blockquote", "table", "panel":
		b.WriteString("\n\n")
	case "bulletList", "orderedList", "tableRow":
		b.WriteString("\n")
	case "tableCell", "tableHeader":
		b.WriteString(" | ")
	case "codeBlock":
		b.WriteString("\n```\n\n")
	}
}

func attr(attrs map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := attrs[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// collapseBlankLines squeezes runs of blank lines down to one.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " ")
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
