package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		now   time.Time
		start time.Time
		end   time.Time
	}{
		{
			now:   time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC),
			start: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			// 跨年
			now:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			start: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			// 闰年2月
			now:   time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC),
			start: time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		start, end := previousMonth(c.now)
		assert.True(t, start.Equal(c.start), "start for %s", c.now)
		assert.True(t, end.Equal(c.end), "end for %s", c.now)
	}
}
