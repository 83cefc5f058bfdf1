package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"fertilitycare/internal/logger"
	"fertilitycare/pkg/api"
	"fertilitycare/pkg/chatclient"
)

// Terminal chat client. Reads lines from stdin and runs them through the
// send pipeline; slash commands switch language and conversation.
func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	username := os.Getenv("CHAT_USERNAME")
	password := os.Getenv("CHAT_PASSWORD")
	if username == "" || password == "" {
		logger.Log.Fatal("CHAT_USERNAME and CHAT_PASSWORD must be set")
	}

	ctx := context.Background()

	client := chatclient.NewClient(serverURL)
	if err := client.Login(ctx, username, password); err != nil {
		logger.Log.WithError(err).Fatal("Login failed")
	}

	prefs := chatclient.LoadPreferences()

	session := chatclient.NewSession(client, client, prefs)

	fmt.Printf("FertilityCare chat (%s). Commands: /lang <en|hi|gu>, /new, /list, /open <id>, /quit\n", prefs.Language())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, client, session, prefs, line); quit {
				break
			}
			continue
		}

		if err := session.Send(ctx, line); err != nil {
			logger.Log.WithError(err).Error("Send failed")
			continue
		}
		printLastReply(session)
	}
	if err := scanner.Err(); err != nil {
		logger.Log.WithError(err).Fatal("Input error")
	}
}

func runCommand(ctx context.Context, client *chatclient.Client, session *chatclient.Session, prefs *chatclient.Preferences, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit":
		return true
	case "/lang":
		if len(fields) < 2 {
			fmt.Printf("language: %s\n", prefs.Language())
			return false
		}
		lang := api.Language(fields[1])
		if !lang.Valid() {
			fmt.Printf("unsupported language %q\n", fields[1])
			return false
		}
		if err := prefs.SetLanguage(lang); err != nil {
			logger.Log.WithError(err).Warn("Failed to persist language")
		}
	case "/new":
		if err := session.Select(ctx, nil); err != nil {
			logger.Log.WithError(err).Error("Failed to reset session")
		}
	case "/list":
		conversations, err := client.ListConversations(ctx)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to list conversations")
			return false
		}
		for _, conv := range conversations {
			fmt.Printf("%s  %s\n", conv.ID, conv.Title)
		}
	case "/open":
		if len(fields) < 2 {
			fmt.Println("usage: /open <id>")
			return false
		}
		openConversation(ctx, client, session, fields[1])
	default:
		fmt.Printf("unknown command %s\n", fields[0])
	}
	return false
}

func openConversation(ctx context.Context, client *chatclient.Client, session *chatclient.Session, id string) {
	conversations, err := client.ListConversations(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list conversations")
		return
	}
	for i := range conversations {
		if conversations[i].ID == id {
			if err := session.Select(ctx, &conversations[i]); err != nil {
				logger.Log.WithError(err).Error("Failed to open conversation")
				return
			}
			for _, msg := range session.Messages() {
				fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
			}
			return
		}
	}
	fmt.Printf("no conversation with id %s\n", id)
}

func printLastReply(session *chatclient.Session) {
	messages := session.Messages()
	if n := len(messages); n > 0 && messages[n-1].Role == api.RoleAssistant {
		fmt.Printf("\n%s\n\n", messages[n-1].Content)
	}
	if suggestions := session.Suggestions(); len(suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}
