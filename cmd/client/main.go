package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"lingualink/domain/chat"
	"lingualink/ws"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL string `envconfig:"LINGUALINK_SERVER" default:"http://localhost:8080"`
	Email     string `envconfig:"LINGUALINK_EMAIL" required:"true"`
	Password  string `envconfig:"LINGUALINK_PASSWORD" required:"true"`
	RoomID    string `envconfig:"LINGUALINK_ROOM"`
	Colours   bool   `envconfig:"LINGUALINK_COLOURS" default:"true"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if !config.Colours {
		color.Disable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := login(config)
	if err != nil {
		return exitRuntime, err
	}

	// Without a room the client only lists what is available.
	if config.RoomID == "" {
		if err := printRooms(config, token); err != nil {
			return exitRuntime, err
		}
		fmt.Println("\nSet LINGUALINK_ROOM to one of the ids above to join.")
		return exitOK, nil
	}

	return chatLoop(ctx, config, token)
}

func login(config Config) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": config.Email, "password": config.Password})
	resp, err := http.Post(config.ServerURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login refused with status %d", resp.StatusCode)
	}
	var decoded struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("malformed login response: %w", err)
	}
	return decoded.Token, nil
}

func printRooms(config Config, token string) error {
	req, _ := http.NewRequest(http.MethodGet, config.ServerURL+"/chat/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("listing rooms failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Rooms []chat.RoomPreview `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("malformed rooms response: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room ID", "Members", "Last message"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, preview := range decoded.Rooms {
		names := make([]string, 0, len(preview.Room.Members))
		for _, m := range preview.Room.Members {
			names = append(names, m.Username)
		}
		last := ""
		if preview.LastMessage != nil {
			last = preview.LastMessage.DisplayText()
		}
		table.Append([]string{preview.Room.ID.String(), strings.Join(names, ", "), last})
	}
	table.Render()
	return nil
}

func chatLoop(ctx context.Context, config Config, token string) (int, error) {
	wsURL := strings.Replace(config.ServerURL, "http", "ws", 1) + "/chat?token=" + token
	socket, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", wsURL, err)
	}
	defer socket.Close()

	if err := socket.WriteJSON(ws.InboundFrame{Type: ws.TypeJoinRoom, RoomID: config.RoomID}); err != nil {
		return exitRuntime, fmt.Errorf("joining room failed: %w", err)
	}

	// Reader goroutine prints server frames, the main loop forwards stdin.
	go func() {
		for {
			var frame struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := socket.ReadJSON(&frame); err != nil {
				if ctx.Err() == nil {
					color.Red.Println("connection lost:", err)
				}
				return
			}
			printFrame(frame.Type, frame.Payload)
		}
	}()

	fmt.Println("Type your message and press enter (Ctrl+C to quit).")
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			deadline := time.Now().Add(time.Second)
			_ = socket.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			err := socket.WriteJSON(ws.InboundFrame{Type: ws.TypeSendMessage, RoomID: config.RoomID, Text: line})
			if err != nil {
				return exitRuntime, fmt.Errorf("sending failed: %w", err)
			}
		}
	}
}

func printFrame(frameType string, payload json.RawMessage) {
	switch frameType {
	case ws.TypeConnected:
		color.Green.Println("connected")
	case ws.TypeJoinedRoom:
		color.Green.Println("joined room")
	case ws.TypeMessageSent:
		var p ws.MessageSentPayload
		if json.Unmarshal(payload, &p) == nil {
			color.Gray.Printf("[%s] you: %s\n", p.Message.CreatedAt.Format(time.TimeOnly), p.Message.Text)
		}
	case ws.TypeNewMessage:
		var p ws.NewMessagePayload
		if json.Unmarshal(payload, &p) == nil {
			line := fmt.Sprintf("[%s] %s", p.Message.CreatedAt.Format(time.TimeOnly), p.Message.DisplayText())
			if p.TranslationSuccess {
				color.Cyan.Println(line)
			} else {
				color.Yellow.Println(line + " (untranslated)")
			}
		}
	case ws.TypeUserTyping:
		var p ws.PresencePayload
		if json.Unmarshal(payload, &p) == nil {
			color.Gray.Printf("%s is typing...\n", p.Username)
		}
	case ws.TypeUserLeft:
		var p ws.PresencePayload
		if json.Unmarshal(payload, &p) == nil {
			color.Yellow.Printf("%s left\n", p.Username)
		}
	case ws.TypeError:
		var p ws.ErrorPayload
		if json.Unmarshal(payload, &p) == nil {
			color.Red.Printf("error [%s]: %s\n", p.Code, p.Message)
		}
	}
}
