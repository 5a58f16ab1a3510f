package bookingRepo

import (
	"testing"

	"solace/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestLockKeysCoverDatesAndCatalogAddons(t *testing.T) {
	booking := &models.Booking{ID: "b-1", ProviderID: "prov-1"}
	dates := []models.BookingDate{
		{BookingID: "b-1", Date: "2025-06-10"},
		{BookingID: "b-1", Date: "2025-06-11"},
	}
	addons := []models.BookingAddon{
		{BookingID: "b-1", AddonID: "addon-1", Name: "Casket Spray", Quantity: 1},
		// Ad hoc custom lines reference nothing shared, so no lock.
		{BookingID: "b-1", Name: "Custom dove release", Quantity: 1},
	}

	keys := lockKeys(booking, dates, addons)
	assert.Equal(t, []string{
		"date:prov-1:2025-06-10",
		"date:prov-1:2025-06-11",
		"addon:addon-1",
	}, keys)
}

func TestIsWriteRace(t *testing.T) {
	assert.True(t, isWriteRace(mongo.CommandError{Name: "WriteConflict", Code: 112}))
	assert.True(t, isWriteRace(mongo.CommandError{Labels: []string{"TransientTransactionError"}}))
	assert.True(t, isWriteRace(mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}))

	assert.False(t, isWriteRace(assert.AnError))
	assert.False(t, isWriteRace(mongo.CommandError{Name: "NoSuchTransaction"}))
}
