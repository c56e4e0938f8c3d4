package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modabridge/storefront/internal/core/service"
)

func TestStatusTracker(t *testing.T) {

	t.Run("StartsIdle", func(t *testing.T) {
		tr := service.NewStatusTracker(0)
		assert.Equal(t, service.SaveIdle, tr.State())
	})

	t.Run("BeginSetsSaving", func(t *testing.T) {
		tr := service.NewStatusTracker(0)
		tr.Begin()
		assert.Equal(t, service.SaveSaving, tr.State())
	})

	t.Run("SettleSuccessHoldsSavedThenIdles", func(t *testing.T) {
		tr := service.NewStatusTracker(20 * time.Millisecond)

		tr.Begin()
		tr.Settle(nil)
		assert.Equal(t, service.SaveSaved, tr.State())

		assert.Eventually(t, func() bool {
			return tr.State() == service.SaveIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("SettleFailureHoldsErrorThenIdles", func(t *testing.T) {
		tr := service.NewStatusTracker(20 * time.Millisecond)

		tr.Begin()
		tr.Settle(errors.New("remote write failed"))
		assert.Equal(t, service.SaveError, tr.State())

		assert.Eventually(t, func() bool {
			return tr.State() == service.SaveIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("NewSaveSupersedesScheduledReset", func(t *testing.T) {
		tr := service.NewStatusTracker(20 * time.Millisecond)

		tr.Begin()
		tr.Settle(nil)
		tr.Begin()

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, service.SaveSaving, tr.State())
	})

	t.Run("StaleResetNeverFlipsALaterSave", func(t *testing.T) {
		tr := service.NewStatusTracker(time.Millisecond)

		// Tight settle/begin cycles leave fired-but-unobserved reset
		// timers behind; none of them may touch the save in flight.
		for range 50 {
			tr.Begin()
			tr.Settle(nil)
		}
		tr.Begin()

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, service.SaveSaving, tr.State())
	})
}
