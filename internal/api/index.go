package api

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"

	"golang.org/x/net/html"
)

var (
	monthHref  = regexp.MustCompile(`^(\d{4}-\d{2})/$`)
	formatHref = regexp.MustCompile(`^([a-z0-9]+)-\d+\.json$`)
)

// hrefs returns every anchor href in an HTML directory listing.
func hrefs(body []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

// parseMonths extracts YYYY-MM directories, deduplicated, newest first.
func parseMonths(body []byte) ([]string, error) {
	links, err := hrefs(body)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var months []string
	for _, l := range links {
		m := monthHref.FindStringSubmatch(l)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		months = append(months, m[1])
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// parseFormats extracts format codes from a chaos/ listing, sorted.
func parseFormats(body []byte) ([]string, error) {
	links, err := hrefs(body)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var formats []string
	for _, l := range links {
		m := formatHref.FindStringSubmatch(l)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		formats = append(formats, m[1])
	}
	sort.Strings(formats)
	return formats, nil
}
