package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ulmind-com/spice-heaven/pkg/event"
)

const orderCollection = "orders"

// orderDocument is the audit record of one checkout. The event ID is the
// document _id so a redelivered event overwrites its own record instead of
// duplicating it.
type orderDocument struct {
	ID            string         `bson:"_id"`
	SessionID     string         `bson:"session_id"`
	CustomerName  string         `bson:"customer_name"`
	CustomerPhone string         `bson:"customer_phone"`
	ItemCount     int            `bson:"item_count"`
	Total         float64        `bson:"total"`
	Lines         []orderLineDoc `bson:"lines"`
	PlacedAt      time.Time      `bson:"placed_at"`
	RecordedAt    time.Time      `bson:"recorded_at"`
}

type orderLineDoc struct {
	Name     string  `bson:"name"`
	Portion  string  `bson:"portion"`
	Quantity int     `bson:"quantity"`
	Subtotal float64 `bson:"subtotal"`
}

// OrderRepo persists placed-order events as an audit trail.
type OrderRepo struct {
	base   *BaseRepo
	logger apt.Logger
}

func NewOrderRepo(base *BaseRepo, logger apt.Logger) *OrderRepo {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderRepo{
		base:   base,
		logger: logger,
	}
}

func (r *OrderRepo) collection() *mongo.Collection {
	return r.base.GetDatabase().Collection(orderCollection)
}

func (r *OrderRepo) Save(ctx context.Context, evt event.OrderPlacedEvent) error {
	lines := make([]orderLineDoc, 0, len(evt.Lines))
	for _, line := range evt.Lines {
		lines = append(lines, orderLineDoc{
			Name:     line.Name,
			Portion:  line.Portion,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal,
		})
	}

	doc := orderDocument{
		ID:            evt.EventID,
		SessionID:     evt.SessionID,
		CustomerName:  evt.CustomerName,
		CustomerPhone: evt.CustomerPhone,
		ItemCount:     evt.ItemCount,
		Total:         evt.Total,
		Lines:         lines,
		PlacedAt:      evt.OccurredAt,
		RecordedAt:    time.Now().UTC(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("cannot write order record: %w", err)
	}
	return nil
}
