package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	push "github.com/peteraglen/flowdock-push-go-client"
	"github.com/peteraglen/flowdock-push-go-client/internal/config"
)

// optionalFlags maps flag names to the optional message field they set.
var optionalFlags = []struct {
	flag  string
	usage string
	set   func(*push.Fields, *string)
}{
	{"from-name", "Sender display name", func(f *push.Fields, v *string) { f.FromName = v }},
	{"reply-to", "Reply-to address", func(f *push.Fields, v *string) { f.ReplyTo = v }},
	{"project", "Project name", func(f *push.Fields, v *string) { f.Project = v }},
	{"tags", "Comma-separated tags", func(f *push.Fields, v *string) { f.Tags = v }},
	{"links", "Comma-separated links", func(f *push.Fields, v *string) { f.Links = v }},
}

// SendCmd returns the send command
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Push a message to the team inbox of one or more flows",
		Long: `Push a message to the team inbox of every configured flow.

One request is sent per flow token, in order. Tokens come from the config
file and from --token flags. A flow that answers with an error status is
skipped; a network failure stops the command.

Examples:
  flowdock-push send --token $FLOW_TOKEN --source CI --from-address ci@example.com \
      --subject "Build #42 passed" --content "<b>All green</b>" --tags ci,build
  echo "deploy finished" | flowdock-push send --config flowdock.yaml \
      --source deploy --from-address ops@example.com --subject Deploy --content -`,
		Args: cobra.NoArgs,
		RunE: runSend,
	}

	cmd.Flags().String("config", "", "Path to YAML configuration file")
	cmd.Flags().StringArray("token", nil, "Flow API token (repeatable)")
	cmd.Flags().String("base-url", "", "Override the team inbox endpoint")
	cmd.Flags().Duration("timeout", 0, "Per-request timeout (0 disables)")
	cmd.Flags().String("status-log", "", "Append failed deliveries to this file")
	cmd.Flags().String("request-id", "", "X-Request-ID header value (random when empty)")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	cmd.Flags().String("source", "", "Name of the integration sending the message")
	cmd.Flags().String("from-address", "", "Sender email address")
	cmd.Flags().String("subject", "", "Message subject")
	cmd.Flags().String("content", "", "Message body, may contain HTML ('-' reads stdin)")

	for _, f := range optionalFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}

	for _, name := range []string{"source", "from-address", "subject", "content"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	flagTokens, _ := cmd.Flags().GetStringArray("token")
	tokens := append(append([]string{}, cfg.Tokens...), flagTokens...)
	if len(tokens) == 0 {
		return errors.New("no flow tokens configured: use --token or tokens in the config file")
	}

	fields, err := messageFields(cmd)
	if err != nil {
		return err
	}

	requestID, _ := cmd.Flags().GetString("request-id")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	opts := []push.Option{
		push.WithTimeout(cfg.Timeout),
		push.WithRequestLogger(push.NewSlogLogger(logger)),
		push.WithRequestHeader("X-Request-ID", requestID),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, push.WithBaseURL(cfg.BaseURL))
	}

	if cfg.StatusLog != "" {
		f, err := os.OpenFile(cfg.StatusLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open status log: %w", err)
		}

		statusLog := push.NewStatusLogger(f, nil)
		defer func() {
			if err := statusLog.Close(); err != nil {
				logger.Warn("Failed to close status log", "error", err)
			}
		}()

		opts = append(opts, push.WithTransport(statusLog))
	}

	client, err := push.New(tokens, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Debug("Pushing message", "flows", len(tokens), "request_id", requestID)

	if err := client.SendFields(cmd.Context(), fields); err != nil {
		return fmt.Errorf("failed to push message: %w", err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "sent to %d flow(s)\n", len(tokens))

	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()

	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}

	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}

	if flags.Changed("status-log") {
		cfg.StatusLog, _ = flags.GetString("status-log")
	}

	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// messageFields collects the message from flags. Optional fields are set only
// when their flag was given, so an explicit empty value is still sent.
func messageFields(cmd *cobra.Command) (push.Fields, error) {
	flags := cmd.Flags()

	var fields push.Fields
	fields.Source, _ = flags.GetString("source")
	fields.FromAddress, _ = flags.GetString("from-address")
	fields.Subject, _ = flags.GetString("subject")
	fields.Content, _ = flags.GetString("content")

	if fields.Content == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fields, fmt.Errorf("failed to read content from stdin: %w", err)
		}
		fields.Content = strings.TrimRight(string(data), "\n")
	}

	for _, f := range optionalFlags {
		if !flags.Changed(f.flag) {
			continue
		}

		v, _ := flags.GetString(f.flag)
		f.set(&fields, push.String(v))
	}

	return fields, nil
}
