package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "night"},
		{4, "night"},
		{5, "early morning"},
		{6, "morning"},
		{8, "morning"},
		{9, "late morning"},
		{11, "late morning"},
		{12, "noon"},
		{13, "afternoon"},
		{16, "afternoon"},
		{17, "early evening"},
		{18, "early evening"},
		{19, "evening"},
		{20, "evening"},
		{21, "late evening"},
		{22, "late evening"},
		{23, "night"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeOfDay(tt.hour), "hour %d", tt.hour)
	}
}

func TestRelativeTo(t *testing.T) {
	now := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		delta time.Duration
		want  string
	}{
		{0, "right now"},
		{30 * time.Second, "right now"},
		{-45 * time.Second, "right now"},
		{time.Minute, "in 1 minute"},
		{5 * time.Minute, "in 5 minutes"},
		{-5 * time.Minute, "5 minutes ago"},
		{59*time.Minute + 45*time.Second, "in about 1 hour"},
		{90 * time.Minute, "in about 2 hours"},
		{3 * time.Hour, "in about 3 hours"},
		{-3 * time.Hour, "about 3 hours ago"},
		{23*time.Hour + 45*time.Minute, "in 1 day"},
		{24 * time.Hour, "in 1 day"},
		{48 * time.Hour, "in 2 days"},
		{-72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTo(now.Add(tt.delta), now), "delta %s", tt.delta)
	}
}
