// Package push provides a client for the Flowdock team inbox push API.
//
// The client wraps [github.com/go-resty/resty/v2] and sends one HTTP POST
// per configured flow API token. Each token is appended to the team inbox
// endpoint as the last path segment.
//
// # Basic Usage
//
//	c, err := push.New([]string{"flow-token-1", "flow-token-2"},
//	    push.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	msg := push.NewMessage("CI", "ci@example.com", "Build #42 passed", "<b>All green</b>")
//	msg.Tags = push.String("ci,build")
//
//	if err := c.Send(ctx, msg); err != nil {
//	    log.Fatal(err)
//	}
//
// The same push can be made without building a [Message] first by passing a
// [Fields] value to [Client.SendFields].
//
// # Delivery Semantics
//
// Requests are sent one at a time, in token order. A response with a non-2xx
// status is not an error: it is reported to the [RequestLogger] and the next
// token is tried. A transport failure (DNS, connection, TLS, timeout) stops
// the loop and is returned to the caller; tokens after the failing one are
// not attempted. A client with no tokens sends nothing and returns nil.
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained; the final
// configuration is validated by [New].
//
// # Retry Behaviour
//
// Retries are disabled by default, so each token gets exactly one attempt.
// [WithRetryCount] enables them, in which case [DefaultRetryPolicy] decides
// which failures are retried unless [WithRetryPolicy] supplies another one.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger], or wrap a
// [log/slog.Logger] with [NewSlogLogger]. The default [NoopLogger] discards
// all log output.
//
// To record failed deliveries to a file, wrap the transport with a
// [StatusLogger] and install it with [WithTransport]. It writes one
// tab-separated line per non-2xx response: URL, status code, Date header.
package push
