package domain

import (
	"fmt"
	"net/url"
	"sort"
)

// Payload is the nested request body handed to a provider transport.
// Keys are present only when backed by a caller-supplied parameter,
// a populated group, or unconditional pagination.
type Payload map[string]any

// Query renders the payload as URL query parameters for read calls.
// List values repeat the key once per element; nested objects are skipped
// because query-string providers in scope take only flat parameters.
func (p Payload) Query() url.Values {
	values := url.Values{}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := p[k].(type) {
		case nil:
			continue
		case []string:
			for _, item := range v {
				values.Add(k, item)
			}
		case []any:
			for _, item := range v {
				values.Add(k, fmt.Sprint(item))
			}
		case map[string]any, Payload:
			continue
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}
	return values
}
