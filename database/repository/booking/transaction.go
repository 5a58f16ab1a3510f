package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withTransaction runs txnFn inside a single Mongo transaction, aborting on
// any error so nothing is partially visible.
func (repo *MongoBookingRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// lockKeys derives the lock document ids a create must write: one per
// provider date and one per catalog addon line.
func lockKeys(booking *models.Booking, dates []models.BookingDate, addons []models.BookingAddon) []string {
	keys := make([]string, 0, len(dates)+len(addons))
	for _, d := range dates {
		keys = append(keys, "date:"+booking.ProviderID+":"+d.Date)
	}
	for _, a := range addons {
		if a.AddonID != "" {
			keys = append(keys, "addon:"+a.AddonID)
		}
	}
	return keys
}

// isWriteRace reports whether the transaction aborted because another
// transaction wrote the same document first. Both the duplicate-key insert of
// a fresh lock document and the write conflict on an existing one land here.
func isWriteRace(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") || cmdErr.Name == "WriteConflict"
	}
	return false
}

// CreateBookingGraph persists the booking, its dates, its addon lines and the
// reserve events as one atomic unit. The guard re-runs the availability and
// stock checks inside the transaction, and before the guard runs the
// transaction bumps a lock document per provider date and per addon line.
// Snapshot reads alone cannot detect a concurrent sibling whose writes are all
// fresh inserts, so the lock bump forces the two transactions onto the same
// documents and Mongo aborts one of them; the survivor's guard then sees the
// committed rows.
func (repo *MongoBookingRepo) CreateBookingGraph(
	ctx context.Context,
	booking *models.Booking,
	dates []models.BookingDate,
	addons []models.BookingAddon,
	events []models.StockEvent,
	guard func(ctx context.Context) error,
) error {
	txnFn := func(sc mongo.SessionContext) error {
		for _, key := range lockKeys(booking, dates, addons) {
			_, err := repo.lockColl.UpdateOne(sc,
				bson.M{"_id": key},
				bson.M{"$inc": bson.M{"seq": 1}},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return fmt.Errorf("bump reservation lock %s failed: %w", key, err)
			}
		}

		if guard != nil {
			if err := guard(sc); err != nil {
				return err
			}
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if _, err := repo.dateColl.InsertMany(sc, toAny(dates)); err != nil {
			return fmt.Errorf("insert booking dates failed: %w", err)
		}
		if len(addons) > 0 {
			if _, err := repo.addonLineColl.InsertMany(sc, toAny(addons)); err != nil {
				return fmt.Errorf("insert booking addons failed: %w", err)
			}
		}
		if len(events) > 0 {
			if _, err := repo.eventColl.InsertMany(sc, toAny(events)); err != nil {
				return fmt.Errorf("insert stock events failed: %w", err)
			}
		}
		return nil
	}

	if err := repo.withTransaction(ctx, txnFn); err != nil {
		if isWriteRace(err) {
			return &WriteConflictError{BookingID: booking.ID}
		}
		return err
	}
	return nil
}

// ConfirmTransactionally converts the booking's soft holds into hard stock
// decrements. Every line uses a conditional update filtered on
// stock_quantity >= quantity with a checked match count; a shortfall on any
// line aborts the whole confirmation and the booking stays pending.
func (repo *MongoBookingRepo) ConfirmTransactionally(ctx context.Context, bookingID, note string, lines []StockLine) error {
	txnFn := func(sc mongo.SessionContext) error {
		for _, line := range lines {
			filter := bson.M{
				"id":             line.AddonID,
				"stock_quantity": bson.M{"$gte": line.Quantity},
			}
			update := bson.M{"$inc": bson.M{"stock_quantity": -line.Quantity}}
			opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

			var updated models.Addon
			err := repo.addonColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&updated)
			if err == mongo.ErrNoDocuments {
				return &InsufficientStockError{AddonID: line.AddonID, AddonName: line.AddonName}
			}
			if err != nil {
				return fmt.Errorf("decrement stock for addon %s failed: %w", line.AddonID, err)
			}

			event := models.StockEvent{
				ID:             uuid.New().String(),
				AddonID:        line.AddonID,
				BookingID:      bookingID,
				Type:           models.StockEventConfirm,
				Quantity:       line.Quantity,
				StockDelta:     -line.Quantity,
				ResultingStock: updated.StockQuantity,
				CreatedAt:      time.Now().UTC(),
			}
			if _, err := repo.eventColl.InsertOne(sc, event); err != nil {
				return fmt.Errorf("append confirm event failed: %w", err)
			}
		}

		// The status filter protects against a concurrent transition having
		// already moved the booking out of pending.
		res, err := repo.bookingColl.UpdateOne(sc,
			bson.M{"id": bookingID, "status": models.StatusPending},
			bson.M{
				"$set":  bson.M{"status": models.StatusConfirmed},
				"$push": bson.M{"provider_notes": note},
			},
		)
		if err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return &StatusConflictError{BookingID: bookingID}
		}
		return nil
	}

	return repo.withTransaction(ctx, txnFn)
}

// CancelTransactionally flips the booking to cancelled, records the refund
// and reason, and appends release events. When restock is true the listed
// quantities are returned to stock.
func (repo *MongoBookingRepo) CancelTransactionally(ctx context.Context, bookingID, reason, note string, refundAmount float64, lines []StockLine, restock bool) error {
	txnFn := func(sc mongo.SessionContext) error {
		res, err := repo.bookingColl.UpdateOne(sc,
			bson.M{"id": bookingID, "status": bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusConfirmed}}},
			bson.M{
				"$set": bson.M{
					"status":              models.StatusCancelled,
					"cancellation_reason": reason,
					"refund_amount":       refundAmount,
				},
				"$push": bson.M{"provider_notes": note},
			},
		)
		if err != nil {
			return fmt.Errorf("update booking status failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return &StatusConflictError{BookingID: bookingID}
		}

		for _, line := range lines {
			event := models.StockEvent{
				ID:        uuid.New().String(),
				AddonID:   line.AddonID,
				BookingID: bookingID,
				Type:      models.StockEventRelease,
				Quantity:  line.Quantity,
				Reason:    reason,
				CreatedAt: time.Now().UTC(),
			}

			if restock {
				update := bson.M{"$inc": bson.M{"stock_quantity": line.Quantity}}
				opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

				var updated models.Addon
				err := repo.addonColl.FindOneAndUpdate(sc, bson.M{"id": line.AddonID}, update, opts).Decode(&updated)
				if err != nil {
					return fmt.Errorf("restock addon %s failed: %w", line.AddonID, err)
				}
				event.StockDelta = line.Quantity
				event.ResultingStock = updated.StockQuantity
			}

			if _, err := repo.eventColl.InsertOne(sc, event); err != nil {
				return fmt.Errorf("append release event failed: %w", err)
			}
		}
		return nil
	}

	return repo.withTransaction(ctx, txnFn)
}

func toAny[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
