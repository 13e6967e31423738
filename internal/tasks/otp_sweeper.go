package tasks

import (
	"log"

	"github.com/klsociety/governance-records-api/internal/otp"
	"github.com/robfig/cron/v3"
)

// OTPSweeper periodically drops expired one-time passwords so the store
// does not grow with abandoned reset requests.
type OTPSweeper struct {
	store *otp.Store
	cron  *cron.Cron
}

func NewOTPSweeper(store *otp.Store) *OTPSweeper {
	return &OTPSweeper{
		store: store,
		cron:  cron.New(),
	}
}

// Start schedules the sweep every five minutes.
func (t *OTPSweeper) Start() {
	if _, err := t.cron.AddFunc("@every 5m", func() {
		t.store.Sweep()
	}); err != nil {
		log.Fatalf("Failed to schedule OTP sweep: %v", err)
	}

	t.cron.Start()
}

// Stop halts the scheduler. Running jobs finish on their own.
func (t *OTPSweeper) Stop() {
	t.cron.Stop()
}
