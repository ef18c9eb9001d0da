package chrono

import (
	"testing"
	"time"

	"routerscrape/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func TestStandardImpl(t *testing.T) {
	rome, err := NewStandardImpl("Europe/Rome")
	require.NoError(t, err)
	require.Equal(t, "Europe/Rome", rome.Location().String())
	require.Equal(t, rome.Location(), rome.Now().Location())

	_, err = NewStandardImpl("Mars/Olympus_Mons")
	require.Error(t, err)
}

func TestCronRejectsBadSchedule(t *testing.T) {
	clock := FixedImpl{At: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)}
	cron := NewStandardCron(clock, &telemetry.Recorder{})
	defer cron.Stop()

	require.NoError(t, cron.Cron("*/15 * * * *", func() {}))
	require.Error(t, cron.Cron("every tuesday", func() {}))
}
