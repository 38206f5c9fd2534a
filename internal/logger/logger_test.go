package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	previous := Log.GetLevel()
	t.Cleanup(func() { Log.SetLevel(previous) })

	SetLevel("debug")
	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", Log.GetLevel())
	}

	SetLevel(" WARN ")
	if Log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", Log.GetLevel())
	}

	SetLevel("chatty")
	if Log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected fallback to info, got %s", Log.GetLevel())
	}
}

func TestInitSelectsFormatterByEnvironment(t *testing.T) {
	previousFormatter := Log.Formatter
	previousLevel := Log.GetLevel()
	t.Cleanup(func() {
		Log.SetFormatter(previousFormatter)
		Log.SetLevel(previousLevel)
	})

	Init("info", "production")
	if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter in production, got %T", Log.Formatter)
	}

	Init("info", "development")
	if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("expected text formatter in development, got %T", Log.Formatter)
	}
}
