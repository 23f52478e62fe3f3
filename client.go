package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

const maxLoggedBodyLength = 256

// Client pushes messages to the team inbox of every flow it holds a token for.
// A Client holds no per-send state and may be used by several goroutines.
type Client struct {
	tokens     []string
	options    *Options
	restClient *resty.Client
}

// New creates a client for the given flow tokens. A nil slice is rejected
// with [ErrInvalidArgument]; an empty one is valid and makes [Client.Send] a
// no-op. The tokens are copied.
func New(tokens []string, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("%w: tokens must not be nil", ErrInvalidArgument)
	}

	options := newClientOptions()

	for _, o := range opts {
		o(options)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	restClient := resty.New().
		SetBaseURL(options.baseURL).
		SetTimeout(options.timeout).
		SetRetryCount(options.retryCount).
		SetRetryWaitTime(options.retryWaitTime).
		SetRetryMaxWaitTime(options.retryMaxWaitTime).
		AddRetryCondition(options.retryPolicy).
		SetLogger(options.requestLogger).
		SetHeaders(options.requestHeaders)

	if options.transport != nil {
		restClient.SetTransport(options.transport)
	}

	return &Client{
		tokens:     append(make([]string, 0, len(tokens)), tokens...),
		options:    options,
		restClient: restClient,
	}, nil
}

// Tokens returns a copy of the configured flow tokens, in send order.
func (c *Client) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// Send pushes msg to every configured flow, one request at a time in token
// order. The message is encoded once and the same body is sent to each flow.
//
// Non-2xx responses are logged and otherwise ignored. The first transport
// error stops the loop and is returned; later tokens are not attempted.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	if c == nil {
		return errors.New("push client is nil")
	}

	if err := msg.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	for _, token := range c.tokens {
		if err := c.post(ctx, token, body); err != nil {
			return err
		}
	}

	return nil
}

// SendFields builds a [Message] from f and sends it with [Client.Send].
func (c *Client) SendFields(ctx context.Context, f Fields) error {
	return c.Send(ctx, f.Message())
}

func (c *Client) post(ctx context.Context, token string, body []byte) error {
	target := c.options.baseURL + "/" + url.PathEscape(token)

	resp, err := c.restClient.R().
		SetContext(ctx).
		SetPathParam("token", token).
		SetBody(body).
		Post("/{token}")
	if err != nil {
		return fmt.Errorf("POST %s: %w", target, err)
	}

	if !resp.IsSuccess() {
		c.options.requestLogger.Warnf("POST %s returned %d: %s", target, resp.StatusCode(), responseBody(resp))
		return nil
	}

	c.options.requestLogger.Debugf("POST %s returned %d", target, resp.StatusCode())

	return nil
}

func responseBody(resp *resty.Response) string {
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return "(empty body)"
	}

	if len(body) > maxLoggedBodyLength {
		return body[:maxLoggedBodyLength] + "..."
	}

	return body
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	if c == nil || c.restClient == nil {
		return
	}

	c.restClient.GetClient().CloseIdleConnections()
}
