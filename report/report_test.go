package report

import (
	"strings"
	"testing"
)

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9}
	end := &TextSpan{StartLine: 5, StartCol: 1, EndLine: 6, EndCol: 3}

	span := NewSpanOver(start, end)

	if span.StartLine != 2 || span.StartCol != 4 {
		t.Fatalf("expected span to start at 2:4, got %d:%d", span.StartLine, span.StartCol)
	}

	if span.EndLine != 6 || span.EndCol != 3 {
		t.Fatalf("expected span to end at 6:3, got %d:%d", span.EndLine, span.EndCol)
	}
}

func TestReportICEPanics(t *testing.T) {
	defer func() {
		x := recover()
		if x == nil {
			t.Fatal("expected ReportICE to panic")
		}

		ice, ok := x.(*ICEError)
		if !ok {
			t.Fatalf("expected *ICEError payload, got %T", x)
		}

		if ice.Message != "composite type populated twice" {
			t.Fatalf("unexpected ICE message: %s", ice.Message)
		}

		if !strings.HasPrefix(ice.Error(), "internal compiler error: ") {
			t.Fatalf("unexpected ICE error string: %s", ice.Error())
		}
	}()

	ReportICE("composite type populated %s", "twice")
}

func TestCatchErrorsConvertsLocalErrors(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("/tmp/nonexistent.oo", "nonexistent.oo")

		panic(Raise(&TextSpan{StartLine: 1}, "undefined symbol `%s`", "x"))
	}()

	if !AnyErrors() {
		t.Fatal("expected the caught error to be recorded")
	}
}

func TestCatchErrorsConvertsStdErrors(t *testing.T) {
	InitReporter(LogLevelSilent)

	func() {
		defer CatchErrors("/tmp/nonexistent.oo", "nonexistent.oo")

		panic(Raise(nil, "spanless error"))
	}()

	if !AnyErrors() {
		t.Fatal("expected the caught error to be recorded")
	}
}
