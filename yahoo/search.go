package yahoo

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// SearchResult is one instrument match from the symbol search endpoint.
type SearchResult struct {
	Symbol   string
	Name     string
	Exchange string
	Type     string
}

// Search looks a free-text query up against the symbol search endpoint and
// returns the matching instruments. The payload is deeply nested and mostly
// noise, so fields are picked out by path instead of mirroring the whole
// schema in types.
func (c *Client) Search(query string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0", c.base, url.QueryEscape(query))

	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}

	jval, err := jsonpath.Get("$.quotes[*]", jobj)
	if err != nil {
		// no quotes array at all means zero matches, not a failure
		return nil, nil
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("yahoo search %q: unexpected quotes payload", query)
	}

	str := func(quote any, path string) string {
		v, err := jsonpath.Get(path, quote)
		if err != nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	results := make([]SearchResult, 0, len(jlist))
	for _, quote := range jlist {
		r := SearchResult{
			Symbol:   str(quote, "$.symbol"),
			Name:     str(quote, "$.shortname"),
			Exchange: str(quote, "$.exchange"),
			Type:     str(quote, "$.quoteType"),
		}
		if r.Name == "" {
			r.Name = str(quote, "$.longname")
		}
		if r.Symbol == "" {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}
