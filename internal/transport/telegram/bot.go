package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/medagent/internal/config"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/pkg/conv"
	"github.com/sandevgo/medagent/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Analyzer is the subset of the orchestrator the bot needs.
type Analyzer interface {
	Run(ctx context.Context, reportText string) (*core.SessionResult, error)
}

// Bot is an owner-only Telegram transport: a text message is treated as the
// symptoms of a patient report, the full pipeline runs, and the final
// synthesis is sent back.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	pipeline Analyzer
	ownerID  int64
}

func NewBot(ctx context.Context, cfg *config.TelegramConfig, pipeline Analyzer) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		pipeline: pipeline,
		ownerID:  cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleReport)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleReport(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	symptoms := strings.TrimSpace(c.Text())
	if symptoms == "" {
		return c.Send("Send the patient's symptoms as a text message.")
	}

	// The pipeline takes minutes of wall-clock time; keep the chat alive.
	_ = c.Notify(tele.Typing)

	reportText := fmt.Sprintf("Patient: %s. Symptoms: %s", c.Sender().FirstName, symptoms)
	result, err := b.pipeline.Run(ctx, reportText)
	if err != nil {
		logger.Error().Err(err).Msg("pipeline run failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	htmlContent := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(result.Final())))
	if htmlContent == "" {
		htmlContent = "The analysis produced no final synthesis."
	}
	if err := c.Send(htmlContent, tele.ModeHTML); err != nil {
		logger.Error().Err(err).Msg("failed to send telegram message")
		return err
	}
	return c.Send("Session " + result.SessionID + " saved.")
}
