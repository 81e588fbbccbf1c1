package utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestSplitWork(t *testing.T) {
	const workSize = 1000

	var seen [workSize]atomic.Int32
	err := SplitWork(context.Background(), 0, workSize, func(_ context.Context, workIndex uint64, _ int) error {
		seen[workIndex].Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Fatalf("work index %d ran %d times", i, n)
		}
	}
}

func TestSplitWorkError(t *testing.T) {
	errBoom := errors.New("boom")

	err := SplitWork(context.Background(), 4, 100, func(_ context.Context, workIndex uint64, _ int) error {
		if workIndex == 10 {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected %v, got %v", errBoom, err)
	}
}

func TestSplitWorkEmpty(t *testing.T) {
	err := SplitWork(context.Background(), 8, 0, func(context.Context, uint64, int) error {
		t.Fatal("no work expected")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSiUnits(t *testing.T) {
	tests := []struct {
		number float64
		want   string
	}{
		{12, "12.00 "},
		{1500, "1.50 K"},
		{2500000, "2.50 M"},
		{3000000000, "3.00 G"},
		{4000000000000, "4.00 T"},
	}

	for _, tt := range tests {
		if got := SiUnits(tt.number, 2); got != tt.want {
			t.Errorf("SiUnits(%v) = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestLogLevels(t *testing.T) {
	var out bytes.Buffer

	oldOutput, oldLevel := LogOutput, GlobalLogLevel
	defer func() {
		LogOutput, GlobalLogLevel = oldOutput, oldLevel
	}()

	LogOutput = &out
	GlobalLogLevel = LogLevelError | LogLevelInfo

	Logf("test", "hello %d", 1)
	Debugf("test", "hidden")
	Errorf("test", "failure %s", "here")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "[test] INFO hello 1") {
		t.Errorf("unexpected info line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[test] ERROR failure here") {
		t.Errorf("unexpected error line %q", lines[1])
	}
}

func TestPanicf(t *testing.T) {
	oldOutput := LogOutput
	defer func() {
		LogOutput = oldOutput
	}()
	LogOutput = &bytes.Buffer{}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "broken 42") {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()

	Panicf("broken %d", 42)
}

func TestJSONRoundTrip(t *testing.T) {
	type entry struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}

	data, err := MarshalJSON(entry{Name: "BLAKE512", Size: 64})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"name":"BLAKE512","size":64}` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var decoded []entry
	if err = NewJSONDecoder(strings.NewReader(`[{"name":"a","size":1}]`)).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0].Name != "a" || decoded[0].Size != 1 {
		t.Fatalf("unexpected decode %+v", decoded)
	}

	if err = NewJSONDecoder(strings.NewReader(`{"name":"a","extra":true}`)).Decode(&entry{}); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestJSONIndent(t *testing.T) {
	data, err := MarshalJSONIndent([]string{"BMW512"}, "\t")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[\n\t\"BMW512\"\n]" {
		t.Fatalf("unexpected encoding %q", data)
	}

	var decoded []string
	if err = UnmarshalJSON(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0] != "BMW512" {
		t.Fatalf("unexpected decode %v", decoded)
	}
}

func TestLogNoticeAndDebug(t *testing.T) {
	var out bytes.Buffer

	oldOutput, oldLevel := LogOutput, GlobalLogLevel
	defer func() {
		LogOutput, GlobalLogLevel = oldOutput, oldLevel
	}()
	LogOutput = &out

	GlobalLogLevel = LogLevelError | LogLevelInfo
	Noticef("test", "hidden")
	if IsLogLevelDebug() {
		t.Fatal("debug reported without the debug level")
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}

	GlobalLogLevel |= LogLevelNotice | LogLevelDebug
	Noticef("test", "progress %d", 2)
	Debugf("test", "detail")
	if !IsLogLevelDebug() {
		t.Fatal("debug level not reported")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "[test] NOTICE progress 2") || !strings.HasSuffix(lines[1], "[test] DEBUG detail") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLogCaller(t *testing.T) {
	var out bytes.Buffer

	oldOutput, oldFile, oldFunc := LogOutput, LogFile, LogFunc
	defer func() {
		LogOutput, LogFile, LogFunc = oldOutput, oldFile, oldFunc
	}()
	LogOutput = &out

	LogFile = true
	Errorf("test", "with file")
	LogFunc = true
	Errorf("test", "with function")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.Contains(lines[0], " utils_test.go:") || !strings.HasSuffix(lines[0], "[test] ERROR with file") {
		t.Errorf("unexpected line %q", lines[0])
	}
	if !strings.Contains(lines[1], ":TestLogCaller [test] ERROR with function") {
		t.Errorf("unexpected line %q", lines[1])
	}
}
