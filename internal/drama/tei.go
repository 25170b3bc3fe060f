package drama

import (
	"encoding/xml"
	"strings"
)

const teiNamespace = "http://www.tei-c.org/ns/1.0"

type TEIStructure struct {
	Acts            int `json:"acts"`
	Scenes          int `json:"scenes"`
	Speeches        int `json:"speeches"`
	StageDirections int `json:"stage_directions"`
}

type TEITextSample struct {
	FirstSpeech         string `json:"first_speech"`
	FirstStageDirection string `json:"first_stage_direction"`
}

type TEISummary struct {
	Title      string        `json:"title"`
	Authors    []string      `json:"authors"`
	Structure  TEIStructure  `json:"structure"`
	TextSample TEITextSample `json:"text_sample"`
}

// xmlNode is a generic element tree for TEI documents. Upstream TEI is large
// and mostly irrelevant here; we only need element names, the type attribute
// on div, and flattened text.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// flatten concatenates the character data of a node and all descendants, in
// document order.
func (n *xmlNode) flatten(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for i := range n.Children {
		n.Children[i].flatten(sb)
	}
}

func (n *xmlNode) flatText() string {
	var sb strings.Builder
	n.flatten(&sb)
	return strings.TrimSpace(sb.String())
}

// summarizeTEI extracts title, authors and structural counts from a TEI
// document. A parse failure yields a zeroed summary rather than an error;
// the caller still reports the plain-text side of the analysis.
func summarizeTEI(data string) TEISummary {
	unknown := TEISummary{Title: "Unknown", Authors: []string{"Unknown"}}

	var root xmlNode
	if err := xml.Unmarshal([]byte(data), &root); err != nil {
		return unknown
	}

	summary := unknown
	var firstSpeech, firstStage *xmlNode

	if titleStmt := findFirst(&root, func(n *xmlNode) bool {
		return n.XMLName.Local == "titleStmt" && n.XMLName.Space == teiNamespace
	}); titleStmt != nil {
		if title := findFirst(titleStmt, func(n *xmlNode) bool {
			return n.XMLName.Local == "title" && n.XMLName.Space == teiNamespace
		}); title != nil && title.flatText() != "" {
			summary.Title = title.flatText()
		}
		authors := []string{}
		walk(titleStmt, func(n *xmlNode) {
			if n.XMLName.Local == "author" && n.flatText() != "" {
				authors = append(authors, n.flatText())
			}
		})
		if len(authors) > 0 {
			summary.Authors = authors
		}
	}
	if summary.Title == "Unknown" {
		// Fallback: any title element, namespaced or not.
		if title := findFirst(&root, func(n *xmlNode) bool { return n.XMLName.Local == "title" }); title != nil && title.flatText() != "" {
			summary.Title = title.flatText()
		}
	}
	if len(summary.Authors) == 1 && summary.Authors[0] == "Unknown" {
		authors := []string{}
		walk(&root, func(n *xmlNode) {
			if n.XMLName.Local == "author" && n.flatText() != "" {
				authors = append(authors, n.flatText())
			}
		})
		if len(authors) > 0 {
			summary.Authors = authors
		}
	}

	walk(&root, func(n *xmlNode) {
		switch n.XMLName.Local {
		case "div":
			switch n.attr("type") {
			case "act":
				summary.Structure.Acts++
			case "scene":
				summary.Structure.Scenes++
			}
		case "sp":
			summary.Structure.Speeches++
			if firstSpeech == nil {
				firstSpeech = n
			}
		case "stage":
			summary.Structure.StageDirections++
			if firstStage == nil {
				firstStage = n
			}
		}
	})

	if firstSpeech != nil {
		summary.TextSample.FirstSpeech = firstSpeech.flatText()
	}
	if firstStage != nil {
		summary.TextSample.FirstStageDirection = firstStage.flatText()
	}
	return summary
}

func findFirst(n *xmlNode, match func(*xmlNode) bool) *xmlNode {
	if match(n) {
		return n
	}
	for i := range n.Children {
		if found := findFirst(&n.Children[i], match); found != nil {
			return found
		}
	}
	return nil
}

func walk(n *xmlNode, visit func(*xmlNode)) {
	visit(n)
	for i := range n.Children {
		walk(&n.Children[i], visit)
	}
}
