// Package notify delivers new-brief notifications to the site owner.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/pricing"
)

// Notifier delivers a submission summary to the owner's channel.
type Notifier interface {
	NotifySubmission(ctx context.Context, submission *brief.Submission) error
}

// TelegramNotifier sends brief summaries to a fixed Telegram chat.
type TelegramNotifier struct {
	bot       *telebot.Bot
	chatID    int64
	formatter *pricing.Formatter
	log       *slog.Logger
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a send-only Telegram bot for owner
// notifications.
func NewTelegramNotifier(token string, chatID int64, formatter *pricing.Formatter, log *slog.Logger) (*TelegramNotifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &TelegramNotifier{
		bot:       bot,
		chatID:    chatID,
		formatter: formatter,
		log:       log,
	}, nil
}

// NotifySubmission formats the submission together with its estimate and
// sends it to the owner chat.
func (n *TelegramNotifier) NotifySubmission(ctx context.Context, submission *brief.Submission) error {
	text := n.renderSummary(submission)

	if _, err := n.bot.Send(&telebot.Chat{ID: n.chatID}, text); err != nil {
		n.log.Error("failed to send telegram notification",
			slog.String("submission_id", submission.ID),
			slog.Any("error", err))
		return err
	}

	return nil
}

func (n *TelegramNotifier) renderSummary(submission *brief.Submission) string {
	a := submission.Answers
	estimate := pricing.Calculate(a)

	var b strings.Builder
	fmt.Fprintf(&b, "New brief %s\n\n", submission.ID)
	fmt.Fprintf(&b, "Project: %s\n", a.ProjectType)
	fmt.Fprintf(&b, "Goal: %s, budget: %s, timeline: %s\n", a.MainGoal, a.BudgetClarity, a.Timeline)
	fmt.Fprintf(&b, "Estimate: %s (%s)\n\n", n.formatter.FormatPriceRange(estimate.PriceRange), n.formatter.FormatWeeks(estimate.TimeEstimate))
	fmt.Fprintf(&b, "From: %s <%s>", a.Name, a.Email)
	if a.Company != "" {
		fmt.Fprintf(&b, ", %s", a.Company)
	}
	fmt.Fprintf(&b, "\nPreferred contact: %s", a.PreferredContact)
	if a.Phone != "" {
		fmt.Fprintf(&b, " (%s)", a.Phone)
	}
	fmt.Fprintf(&b, "\n\n%s", a.Description)
	fmt.Fprintf(&b, "\n\nReceived %s", submission.CreatedAt.Format(time.RFC3339))

	return b.String()
}
