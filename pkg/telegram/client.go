package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
	SendMessageTo(chatID int64, text string) error
}

// Client is a Telegram bot client used both for pushing alerts to the
// configured channel and for receiving command updates.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a new Telegram client.
func NewClient(botToken string, chatID int64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a Markdown message to the configured alert chat.
func (c *Client) SendMessage(text string) error {
	return c.SendMessageTo(c.chatID, text)
}

// SendMessageTo sends a Markdown message to the given chat.
func (c *Client) SendMessageTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// Updates returns the long-polling update channel for command handling.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.bot.GetUpdatesChan(u)
}

// Stop shuts down the update polling loop.
func (c *Client) Stop() {
	c.bot.StopReceivingUpdates()
}
