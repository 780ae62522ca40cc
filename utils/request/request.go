package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antgroup/ragqa/utils/json"
)

// StatusError is returned when the server answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Request 发送请求并将 JSON 响应解析到 resp，headKvs 为成对的请求头
func Request(ctx context.Context, client *http.Client, method, url string, param string, resp interface{}, headKvs ...string) error {
	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(param))
	if err != nil {
		return err
	}
	if len(headKvs)%2 != 0 {
		return errors.New("header be pair")
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

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(body, resp)
}

// PostJSON marshals param and posts it with a JSON content type.
func PostJSON(ctx context.Context, client *http.Client, url string, param, resp interface{}, headKvs ...string) error {
	body, err := json.Marshal(param)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}
	headers := append([]string{"Content-Type", "application/json"}, headKvs...)
	return Request(ctx, client, http.MethodPost, url, string(body), resp, headers...)
}
