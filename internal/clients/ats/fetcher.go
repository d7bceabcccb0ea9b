package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrAllSourcesFailed means the direct request and every proxy in the chain
// failed to produce parseable JSON.
var ErrAllSourcesFailed = errors.New("direct fetch and all proxies failed")

// proxy is one public CORS proxy. The target URL is appended query-escaped;
// unwrap undoes whatever envelope the proxy puts around the payload.
type proxy struct {
	base   string
	unwrap func(body []byte) ([]byte, error)
}

var defaultProxies = []proxy{
	{base: "https://api.allorigins.win/get?url=", unwrap: unwrapAllOrigins},
	{base: "https://corsproxy.io/?", unwrap: unwrapPassthrough},
	{base: "https://api.codetabs.com/v1/proxy?quest=", unwrap: unwrapPassthrough},
	{base: "https://thingproxy.freeboard.io/fetch/", unwrap: unwrapPassthrough},
}

var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":     "application/json, text/plain, */*",
}

// fetchJSON retrieves a JSON document with a direct attempt first, then the
// ordered proxy chain. A non-OK status, transport error, or an HTML error
// page in place of JSON all fall through to the next hop.
func (c *Client) fetchJSON(ctx context.Context, url string) ([]byte, error) {

	body, status, err := c.get(ctx, url, browserHeaders)
	if err == nil && status == http.StatusOK && isJSON(body) {
		return body, nil
	}
	if err != nil {
		log.Debugf("direct fetch of %v failed: %v", url, err)
	}

	for _, p := range c.proxies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		body, status, err = c.get(ctx, p.base+encodeTarget(url), browserHeaders)
		if err != nil || status != http.StatusOK {
			continue
		}

		payload, err := p.unwrap(body)
		if err != nil {
			continue
		}
		if isJSON(payload) {
			return payload, nil
		}
	}

	return nil, ErrAllSourcesFailed
}

func isJSON(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] != '<' && json.Valid(trimmed)
}

func unwrapPassthrough(body []byte) ([]byte, error) {
	return body, nil
}

// unwrapAllOrigins unpacks the {"contents": ...} envelope; contents is
// usually a JSON-encoded string holding the real payload, which then needs a
// second decode.
func unwrapAllOrigins(body []byte) ([]byte, error) {

	var wrapper struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Contents) == 0 {
		return nil, errors.New("empty proxy contents")
	}

	var inner string
	if err := json.Unmarshal(wrapper.Contents, &inner); err == nil {
		return []byte(inner), nil
	}
	return wrapper.Contents, nil
}
