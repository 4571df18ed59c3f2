package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"expert-consult/internal/domain"
	"expert-consult/internal/usecase/consult"
)

const chunkSize = 2048

const validationText = "質問内容を入力してください。例: /it リストを逆順にするには？"

type Bot struct {
	api     *tgbotapi.BotAPI
	consult *consult.Service
	log     *zap.Logger
}

func NewBot(token string, svc *consult.Service, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newBot(api, svc, log), nil
}

func newBot(api *tgbotapi.BotAPI, svc *consult.Service, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		api:     api,
		consult: svc,
		log:     log,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.log.Info("telegram bot started", zap.String("username", b.api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	cmd := parseCommand(msg.Text)
	switch cmd.kind {
	case commandHelp:
		b.sendText(msg.Chat.ID, msg.MessageID, helpText())
		return
	case commandUnknown:
		b.sendText(msg.Chat.ID, msg.MessageID, "専門家を選んで質問してください。\n\n"+helpText())
		return
	}

	if err := consult.Validate(cmd.question); err != nil {
		b.sendText(msg.Chat.ID, msg.MessageID, validationText)
		return
	}

	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		b.log.Warn("send chat action", zap.Error(err))
	}

	reply := b.consult.Answer(ctx, cmd.persona, cmd.question)
	b.sendText(msg.Chat.ID, msg.MessageID, fmt.Sprintf("%sからの回答：\n\n%s", cmd.persona.Label(), reply))
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	chunks := splitText(text, chunkSize)
	for idx, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			b.log.Warn("send reply", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

type commandKind int

const (
	commandUnknown commandKind = iota
	commandHelp
	commandConsult
)

type command struct {
	kind     commandKind
	persona  domain.Persona
	question string
}

// parseCommand reads "/<persona> <question>". A "@botname" suffix on the
// command is ignored, as Telegram appends it in group chats.
func parseCommand(text string) command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return command{kind: commandUnknown}
	}

	name, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		name, rest = text[:i], text[i:]
	}
	name, _, _ = strings.Cut(strings.TrimPrefix(name, "/"), "@")

	switch strings.ToLower(name) {
	case "start", "help":
		return command{kind: commandHelp}
	}

	persona, ok := domain.PersonaByCommand(name)
	if !ok {
		return command{kind: commandUnknown}
	}
	return command{kind: commandConsult, persona: persona, question: strings.TrimSpace(rest)}
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("🤖 AI専門家相談\n\n")
	for _, p := range domain.Personas() {
		fmt.Fprintf(&sb, "/%s - %s: %s\n", p.Command(), p.Label(), domain.Description(p))
	}
	sb.WriteString("\n例: /it リストを逆順にするには？")
	return sb.String()
}

func splitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
