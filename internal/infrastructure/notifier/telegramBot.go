package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"otc_desk/internal/domain/entity"
)

// TelegramBot шлёт операционные события деска в опс-чат: новые заявки и
// резкие движения рынка.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (b *TelegramBot) SendOrderDraft(ctx context.Context, draft entity.OrderDraft) error {
	text := fmt.Sprintf(
		"📝 <b>New order draft</b>\n\n"+
			"<b>ID:</b> %s\n"+
			"<b>Amount:</b> %s USDT\n"+
			"<b>Network:</b> %s\n"+
			"<b>Locked price:</b> %s\n"+
			"<b>Total:</b> %s\n"+
			"<b>Locked at:</b> %s",
		draft.ID,
		draft.Amount.String(),
		draft.Network.String(),
		draft.LockedPrice.StringFixed(4),
		draft.Total.String(),
		draft.LockedAt.Format("15:04:05"),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendPriceAlert — резкое суточное движение базовой цены; деск может
// захотеть пересмотреть наценки.
func (b *TelegramBot) SendPriceAlert(ctx context.Context, quote entity.Quote) error {
	text := fmt.Sprintf(
		"⚠️ <b>Price move</b>\n\n"+
			"<b>Source:</b> %s\n"+
			"<b>Base price:</b> %s\n"+
			"<b>24h change:</b> %s%%",
		quote.Source.String(),
		quote.BasePrice.StringFixed(4),
		quote.DailyChangePercent.String(),
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
