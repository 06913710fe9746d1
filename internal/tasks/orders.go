package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/contextx"
	"otc_desk/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	TypeOrderSubmit = "order:submit"

	QueueOrders = "orders"

	orderSubmitMaxRetry = 5
)

// Enqueuer кладёт собранную заявку в очередь: HTTP-путь не ждёт ни БД, ни
// телеграма.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueOrderSubmit(ctx context.Context, draft entity.OrderDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(
		TypeOrderSubmit,
		payload,
		asynq.Queue(QueueOrders),
		asynq.MaxRetry(orderSubmitMaxRetry),
	)

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.Enqueue: %w", err)
	}

	return nil
}

type OrderRepository interface {
	Create(ctx context.Context, draft *entity.OrderDraft) error
}

type Notifier interface {
	SendOrderDraft(ctx context.Context, draft entity.OrderDraft) error
}

// OrderHandler сохраняет заявку и уведомляет опс-чат. Сохранение
// авторитетно — его ошибка возвращается и задача ретраится; уведомление
// best-effort.
type OrderHandler struct {
	orders   OrderRepository
	notifier Notifier
}

func NewOrderHandler(orders OrderRepository, notifier Notifier) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		notifier: notifier,
	}
}

func (h *OrderHandler) HandleOrderSubmit(ctx context.Context, task *asynq.Task) error {
	var draft entity.OrderDraft
	if err := json.Unmarshal(task.Payload(), &draft); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := h.orders.Create(ctx, &draft); err != nil {
		return fmt.Errorf("orders.Create: %w", err)
	}

	if h.notifier != nil {
		if err := h.notifier.SendOrderDraft(ctx, draft); err != nil {
			logger(ctx).Error("failed to notify ops chat", "order_id", draft.ID, logx.Error(err))
		}
	}

	logger(ctx).Info("order draft persisted", "order_id", draft.ID, "total", draft.Total.String())

	return nil
}
