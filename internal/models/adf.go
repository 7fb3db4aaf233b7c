package models

// ADFNode is one node of an Atlassian Document Format tree.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// ADFDocument is the top-level ADF wrapper Jira Cloud expects for
// description and comment bodies.
type ADFDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []ADFNode `json:"content"`
}

// ADFFromText wraps plain text in the fixed ADF shape: a version-1 document
// holding a single paragraph with one text node.
func ADFFromText(text string) *ADFDocument {
	return &ADFDocument{
		Version: 1,
		Type:    "doc",
		Content: []ADFNode{
			{
				Type: "paragraph",
				Content: []ADFNode{
					{Type: "text", Text: text},
				},
			},
		},
	}
}
