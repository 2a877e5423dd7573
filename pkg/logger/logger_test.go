package logx

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		conf Config
		want zerolog.Level
	}{
		{Config{}, zerolog.InfoLevel},
		{Config{Level: "warn"}, zerolog.WarnLevel},
		{Config{Level: " ERROR "}, zerolog.ErrorLevel},
		{Config{Level: "loud"}, zerolog.InfoLevel},
		{Config{Level: "warn", Debug: true}, zerolog.DebugLevel},
	}
	for _, tc := range cases {
		if got := level(&tc.conf); got != tc.want {
			t.Fatalf("level(%+v) = %s, want %s", tc.conf, got, tc.want)
		}
	}
}

func TestInitSetsGlobalLevel(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	Init(Config{Level: "error"})
	if got := log.Logger.GetLevel(); got != zerolog.ErrorLevel {
		t.Fatalf("GetLevel() = %s, want error", got)
	}

	Init()
	if got := log.Logger.GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("GetLevel() = %s, want info", got)
	}
}
