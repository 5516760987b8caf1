package wetten

import (
	"strings"

	"golang.org/x/net/html"
)

// parseSearchResults extracts candidate laws from a search results page.
// Result containers are parsed defensively: any container missing a title
// element or an identifier-bearing link is skipped. Source order is
// preserved and extraction stops at maxResults.
func parseSearchResults(markup string, baseURL string, maxResults int) []SearchResult {
	results := []SearchResult{}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return results
	}

	containers := findAll(root, func(n *html.Node) bool {
		if n.Data != "div" && n.Data != "article" {
			return false
		}
		class := strings.ToLower(nodeAttr(n, "class"))
		return strings.Contains(class, "result") || strings.Contains(class, "wet")
	})

	for _, container := range containers {
		if len(results) >= maxResults {
			break
		}

		titleNode := findFirst(container, func(n *html.Node) bool {
			return n.Data == "h2" || n.Data == "h3" || n.Data == "a"
		})
		if titleNode == nil {
			continue
		}
		title := nodeText(titleNode)
		if title == "" {
			continue
		}

		link := findFirst(container, func(n *html.Node) bool {
			return n.Data == "a" && ExtractBWBID(nodeAttr(n, "href")) != ""
		})
		if link == nil {
			continue
		}

		href := nodeAttr(link, "href")
		resultURL := href
		if strings.HasPrefix(href, "/") {
			resultURL = baseURL + href
		}

		results = append(results, SearchResult{
			Title: title,
			BWBID: ExtractBWBID(href),
			URL:   resultURL,
		})
	}

	return results
}
