package server

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/at-ishikawa/rechnik/internal/dictionary"
)

const (
	labelExample     = "Пример:"
	messageNoResults = "Няма намерени резултати."
	messageNoEntries = "Няма думи за показване."
)

func element(a atom.Atom, class string, children ...*html.Node) *html.Node {
	node := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		node.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, child := range children {
		node.AppendChild(child)
	}
	return node
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// entryNodes renders the word, then the optional pronunciation, the meaning
// and the optional explanation and example.
func entryNodes(entry dictionary.Entry) []*html.Node {
	nodes := []*html.Node{element(atom.Strong, "", text(entry.Word))}
	if entry.Pronunciation != "" {
		nodes = append(nodes, element(atom.P, "pronunciation", text("["+entry.Pronunciation+"]")))
	}
	nodes = append(nodes, element(atom.P, "meaning", text(entry.Meaning)))
	if entry.Explanation != "" {
		nodes = append(nodes, element(atom.P, "explanation", element(atom.Em, "", text(entry.Explanation))))
	}
	if entry.Example != "" {
		nodes = append(nodes, element(atom.P, "example",
			element(atom.Strong, "", text(labelExample)),
			text(` "`+entry.Example+`"`),
		))
	}
	return nodes
}

func randomFragment(entry dictionary.Entry, ok bool) []*html.Node {
	if !ok {
		return []*html.Node{element(atom.P, "", text(messageNoEntries))}
	}
	return entryNodes(entry)
}

func itemsFragment(entries []dictionary.Entry) []*html.Node {
	nodes := make([]*html.Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, element(atom.Div, "result-item", entryNodes(entry)...))
	}
	return nodes
}

// resultsFragment wraps each match in a result-item block, or shows the
// no-results message.
func resultsFragment(entries []dictionary.Entry) []*html.Node {
	if len(entries) == 0 {
		return []*html.Node{element(atom.P, "no-results", text(messageNoResults))}
	}
	return itemsFragment(entries)
}

// wordsFragment never shows the no-results message; an empty list has its own.
func wordsFragment(entries []dictionary.Entry) []*html.Node {
	if len(entries) == 0 {
		return []*html.Node{element(atom.P, "", text(messageNoEntries))}
	}
	return itemsFragment(entries)
}

func renderFragment(w io.Writer, nodes []*html.Node) error {
	for _, node := range nodes {
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("html.Render > %w", err)
		}
	}
	return nil
}
