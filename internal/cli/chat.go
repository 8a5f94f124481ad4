package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/transport/ws"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat over WebSocket",
	Long: `Open a WebSocket to the assistant and chat interactively.

Replies sent to the same session from other tabs are shown too.
Commands inside the chat:
  /track <order-id>   track an order
  /quit               exit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

// wsURL turns the HTTP base URL into the socket endpoint.
func wsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// ChatClient is a WebSocket session with the assistant.
type ChatClient struct {
	conn      *websocket.Conn
	sessionID string
	done      chan struct{}
}

// DialChat connects and completes the hello handshake for sessionID.
func DialChat(addr, sessionID string) (*ChatClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	c := &ChatClient{conn: conn, done: make(chan struct{})}
	if err := c.hello(sessionID); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// SessionID returns the session bound by the server.
func (c *ChatClient) SessionID() string {
	return c.sessionID
}

// Close closes the client connection.
func (c *ChatClient) Close() error {
	close(c.done)
	return c.conn.Close()
}

func (c *ChatClient) hello(sessionID string) error {
	msg := ws.HelloMessage{BaseMessage: ws.BaseMessage{
		Type:      ws.TypeHello,
		Ts:        time.Now().UnixMilli(),
		SessionID: sessionID,
	}}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read hello_ack: %w", err)
	}
	var base ws.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("unmarshal hello_ack: %w", err)
	}
	if base.Type == ws.TypeError {
		var errMsg ws.ErrorMessage
		json.Unmarshal(data, &errMsg)
		return fmt.Errorf("hello failed: %s - %s", errMsg.Code, errMsg.Message)
	}
	if base.Type != ws.TypeHelloAck {
		return fmt.Errorf("expected hello_ack, got: %s", base.Type)
	}
	c.sessionID = base.SessionID
	return nil
}

// Send sends one chat turn.
func (c *ChatClient) Send(message string) error {
	return c.conn.WriteJSON(ws.ChatMessage{
		BaseMessage: ws.BaseMessage{
			Type:      ws.TypeChat,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
			RequestID: fmt.Sprintf("req_%d", time.Now().UnixNano()),
		},
		Message: message,
	})
}

// Track asks for an order's status.
func (c *ChatClient) Track(orderID string) error {
	return c.conn.WriteJSON(ws.TrackOrderMessage{
		BaseMessage: ws.BaseMessage{
			Type:      ws.TypeTrackOrder,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
			RequestID: fmt.Sprintf("req_%d", time.Now().UnixNano()),
		},
		OrderID: orderID,
	})
}

// ReadMessages prints server messages to w until the connection closes.
func (c *ChatClient) ReadMessages(w io.Writer) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					errorColor.Fprintf(w, "\nconnection lost: %v\n", err)
				}
			}
			return
		}
		printServerMessage(w, data)
	}
}

func printServerMessage(w io.Writer, data []byte) {
	var base ws.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		errorColor.Fprintf(w, "\nunreadable message: %v\n", err)
		return
	}

	fmt.Fprintln(w)
	switch base.Type {
	case ws.TypeReply:
		var msg ws.ReplyMessage
		json.Unmarshal(data, &msg)
		printReply(w, msg.Response, msg.Sources)
	case ws.TypeOrderStatus:
		var msg ws.OrderStatusMessage
		json.Unmarshal(data, &msg)
		fmt.Fprintf(w, "Order %s: ", msg.OrderID)
		botColor.Fprintln(w, msg.TrackingInfo.Status)
		fmt.Fprintln(w, msg.TrackingInfo.Details)
	case ws.TypeError:
		var msg ws.ErrorMessage
		json.Unmarshal(data, &msg)
		errorColor.Fprintf(w, "[%s] %s\n", msg.Code, msg.Message)
	default:
		hintColor.Fprintf(w, "[%s] %s\n", base.Type, string(data))
	}
	fmt.Fprint(w, "> ")
}

func runChat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	addr, err := wsURL(serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	fmt.Fprintf(out, "Connecting to %s...\n", addr)
	client, err := DialChat(addr, sessionID)
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Fprintf(out, "Session established: %s\n", client.SessionID())
	hintColor.Fprintln(out, "Type a message and press Enter. /track <order-id> to track an order, /quit to exit.")
	fmt.Fprintln(out)

	go client.ReadMessages(out)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Fprint(out, "> ")
	for {
		select {
		case <-interrupt:
			fmt.Fprintln(out, "\nInterrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			input := strings.TrimSpace(line)
			switch {
			case input == "":
				fmt.Fprint(out, "> ")
				continue
			case input == "/quit":
				fmt.Fprintln(out, "Bye!")
				return nil
			case strings.HasPrefix(input, "/track "):
				err = client.Track(strings.TrimSpace(strings.TrimPrefix(input, "/track ")))
			default:
				err = client.Send(input)
			}
			if err != nil {
				errorColor.Fprintf(out, "send error: %v\n", err)
			}
		}
	}
}
