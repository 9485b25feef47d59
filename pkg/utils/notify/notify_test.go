package notify_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	notify "github.com/cvoctl-io/cvoctl/pkg/utils/notify"
	"github.com/cvoctl-io/cvoctl/pkg/utils/timer"
)

func TestWriteMessage_ErrorType(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ErrorType,
		Content: "test error",
		Writer:  &out,
	})

	got := out.String()
	want := "✗ test error\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_ErrorType_WithFormatting(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ErrorType,
		Content: "error: %s (%d)",
		Args:    []any{"failed", 42},
		Writer:  &out,
	})

	got := out.String()
	want := "✗ error: failed (42)\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_WarningType(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.WarningType,
		Content: "test warning",
		Writer:  &out,
	})

	got := out.String()
	want := "⚠ test warning\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_SuccessType(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "test success",
		Writer:  &out,
	})

	got := out.String()
	want := "✔ test success\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_ActivityType(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "test activity",
		Writer:  &out,
	})

	got := out.String()
	want := "► test activity\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_InfoType(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.InfoType,
		Content: "test info",
		Writer:  &out,
	})

	got := out.String()
	want := "ℹ test info\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_TitleType_DefaultEmoji(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: "test title",
		Writer:  &out,
	})

	got := out.String()
	want := "ℹ️ test title\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_TitleType_CustomEmoji(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.TitleType,
		Content: "release the workload",
		Emoji:   "🔓",
		Writer:  &out,
	})

	got := out.String()
	want := "🔓 release the workload\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_MultiLineContentIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "first line\nsecond line\n\nthird line",
		Writer:  &out,
	})

	got := out.String()
	want := "✔ first line\n  second line\n\n  third line\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestWriteMessage_SuccessWithTimer_EmitsTimingBlock(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tmr := timer.New()
	tmr.Start()

	time.Sleep(time.Millisecond)

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "done",
		Timer:   tmr,
		Writer:  &out,
	})

	got := out.String()

	if !strings.HasPrefix(got, "✔ done\n") {
		t.Fatalf("expected success line first, got %q", got)
	}

	if !strings.Contains(got, "⏲ current: ") {
		t.Fatalf("expected stage timing line, got %q", got)
	}

	if !strings.Contains(got, "total:  ") {
		t.Fatalf("expected total timing line, got %q", got)
	}
}

func TestWriteMessage_ErrorWithTimer_NoTimingBlock(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tmr := timer.New()
	tmr.Start()

	notify.WriteMessage(notify.Message{
		Type:    notify.ErrorType,
		Content: "boom",
		Timer:   tmr,
		Writer:  &out,
	})

	got := out.String()
	want := "✗ boom\n"

	if got != want {
		t.Fatalf("timing must be success-only. want %q, got %q", want, got)
	}
}

func TestErrorf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "failed to %s", "fetch")

	got := out.String()
	want := "✗ failed to fetch\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestActivityf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Activityf(&out, "patching %s/%s", "openshift-monitoring", "prometheus-operator")

	got := out.String()
	want := "► patching openshift-monitoring/prometheus-operator\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}

func TestSuccessWithTimerf_NilTimer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, nil, "override applied")

	got := out.String()
	want := "✔ override applied\n"

	if got != want {
		t.Fatalf("output mismatch. want %q, got %q", want, got)
	}
}
