package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"baby-tracker-go/internal/chat"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var (
	chatServer  string
	chatToken   string
	chatChildID string
	chatModel   string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the assistant of a running server",
	Long: `Sends a message to POST /api/chat and prints the streamed answer. Without a
message argument it reads one message per line from stdin and keeps the
conversation history between turns. Ctrl-C cancels the current answer.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatServer, "server", envOr("BABY_TRACKER_URL", "http://localhost:8080"),
		"Server base URL")
	chatCmd.Flags().StringVar(&chatToken, "token", os.Getenv("BABY_TRACKER_TOKEN"),
		"Bearer token for the server")
	chatCmd.Flags().StringVar(&chatChildID, "child", "",
		"Child id the conversation is about")
	chatCmd.Flags().StringVar(&chatModel, "model", "",
		"Model override (must be allowed by the server)")
	_ = chatCmd.MarkFlagRequired("child")
}

func runChat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if len(args) > 0 {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		transcript, err := sendChat(ctx, chat.Request{
			ChildID: chatChildID,
			Message: strings.Join(args, " "),
			Model:   chatModel,
		}, out, errOut)
		if err != nil {
			return err
		}
		if transcript.Err != "" {
			return errors.New(transcript.Err)
		}
		return nil
	}

	var history []chat.HistoryMessage
	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(errOut, "> ")
	for scanner.Scan() {
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			fmt.Fprint(errOut, "> ")
			continue
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		transcript, err := sendChat(ctx, chat.Request{
			ChildID:             chatChildID,
			Message:             message,
			Model:               chatModel,
			ConversationHistory: history,
		}, out, errOut)
		stop()

		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(errOut, "\n(cancelled)")
		case err != nil:
			return err
		case transcript.Err != "":
			fmt.Fprintf(errOut, "error: %s\n", transcript.Err)
		default:
			history = append(history,
				chat.HistoryMessage{Role: chat.RoleUser, Content: message},
				chat.HistoryMessage{Role: chat.RoleAssistant, Content: transcript.Text()},
			)
		}
		fmt.Fprint(errOut, "\n> ")
	}
	return scanner.Err()
}

// sendChat streams one exchange, printing text to out and tool activity to
// errOut. An error event from the server is left in transcript.Err.
func sendChat(ctx context.Context, req chat.Request, out, errOut io.Writer) (*chat.Transcript, error) {
	body, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(chatServer, "/")+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if chatToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+chatToken)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("chat: %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	transcript := &chat.Transcript{}
	err = chat.ReadStream(ctx, resp.Body, func(event chat.Event) error {
		transcript.Apply(event)
		switch event.Type {
		case chat.EventTextDelta:
			fmt.Fprint(out, event.Text)
		case chat.EventToolExecuting:
			fmt.Fprintf(errOut, "\n[%s]\n", event.Name)
		case chat.EventToolError:
			fmt.Fprintf(errOut, "[%s failed: %s]\n", event.Name, event.Error)
		}
		return nil
	})
	fmt.Fprintln(out)
	return transcript, err
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
