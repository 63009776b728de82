package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wanderlab/voyago/utils/json"
)

// StatusError is returned for non-2xx responses so callers can classify the
// failure by status code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// JSON issues an HTTP request and unmarshals the JSON response body into
// resp. Query parameters are appended to the URL; headKvs are header
// key/value pairs.
func JSON(ctx context.Context, client *http.Client, method, rawURL string, query url.Values, body string, resp any, headKvs ...string) error {
	if len(headKvs)%2 != 0 {
		return errors.New("header be pair")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(body))
	if err != nil {
		return err
	}
	for i := 0; i < len(headKvs); i += 2 {
		req.Header.Set(headKvs[i], headKvs[i+1])
	}

	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode, Body: truncate(string(data), 256)}
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(data, resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
