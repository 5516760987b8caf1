package wetten

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeAttr returns the value of the named attribute on n, or "".
func nodeAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether n carries the given CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, candidate := range strings.Fields(nodeAttr(n, "class")) {
		if candidate == class {
			return true
		}
	}
	return false
}

// nodeText returns the concatenated text content of n and its descendants,
// whitespace-trimmed.
func nodeText(n *html.Node) string {
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(current *html.Node) {
		if current.Type == html.TextNode {
			builder.WriteString(current.Data)
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(strings.Join(strings.Fields(builder.String()), " "))
}

// findFirst returns the first element in document order matching the
// predicate, or nil.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var result *html.Node
	var walk func(*html.Node)
	walk = func(current *html.Node) {
		if result != nil {
			return
		}
		if current.Type == html.ElementNode && match(current) {
			result = current
			return
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return result
}

// findAll returns all elements in document order matching the predicate.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(current *html.Node) {
		if current.Type == html.ElementNode && match(current) {
			results = append(results, current)
			// Matching containers are not re-entered: nested containers of
			// the same class would double-count their text.
			return
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return results
}

// byTag matches elements with the given tag name.
func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag
	}
}

// byClass matches elements carrying the given CSS class, any tag.
func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return hasClass(n, class)
	}
}

// byTagClass matches elements with both the given tag and class.
func byTagClass(tag string, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag && hasClass(n, class)
	}
}

// firstText returns the text of the first element matching any of the given
// predicates, tried in order. Empty string when nothing matches.
func firstText(root *html.Node, predicates ...func(*html.Node) bool) string {
	for _, predicate := range predicates {
		if node := findFirst(root, predicate); node != nil {
			if text := nodeText(node); text != "" {
				return text
			}
		}
	}
	return ""
}

// childText returns the text of the first descendant of n with the given
// class, or "" when the sub-element is absent.
func childText(n *html.Node, class string) string {
	if node := findFirst(n, byClass(class)); node != nil {
		return nodeText(node)
	}
	return ""
}
