package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/scout/internal/analytics"
)

func TestPercent_Locale(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.English, "66.67%"},
		{language.German, "66,67%"},
		{language.French, "66,67%"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, percent(message.NewPrinter(tt.tag), 200.0/3))
		})
	}
}

func TestRenderStandings_Locale(t *testing.T) {
	records := []analytics.Record{{TeamNum: 1678, Played: 3, Wins: 2, WinRate: 200.0 / 3}}

	out := renderStandings(message.NewPrinter(language.German), records)
	assert.Contains(t, out, "66,67%")
	assert.Contains(t, out, "1678", "team numbers are not grouped")
}
