package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestJSONOutputCarriesServiceAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "aerive-client", Output: &buf})

	ctx := logg.WithUserID(context.Background(), "U1")
	logg.Info(ctx, "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["service"] != "aerive-client" {
		t.Fatalf("service = %v", line["service"])
	}
	if line["user_id"] != "U1" {
		t.Fatalf("user_id = %v", line["user_id"])
	}
	if line["message"] != "hello" {
		t.Fatalf("message = %v", line["message"])
	}
}

func TestConsoleFormatIsNotJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logg := New(Options{ServiceName: "aerive-client", Output: &buf, Format: "console"})

	logg.Info(context.Background(), "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err == nil {
		t.Fatalf("console format emitted JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("message missing from console output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("debug")
	}
	if ParseLevel(" WARN ") != zerolog.WarnLevel {
		t.Fatal("warn with whitespace and case")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty defaults to info")
	}
	if ParseLevel("nope") != zerolog.InfoLevel {
		t.Fatal("unknown defaults to info")
	}
}
