package log

import "testing"

func TestParseLevelDefaultsToInfoOnUnknownInput(t *testing.T) {
	if ParseLevel("bogus") != Info {
		t.Fatalf("expected an unrecognized level string to default to Info")
	}
	if ParseLevel("DEBUG") != Debug {
		t.Fatalf("expected level parsing to be case-insensitive")
	}
	if ParseLevel("warning") != Warn {
		t.Fatalf("expected \"warning\" to parse as Warn")
	}
}

func TestLevelStringRoundTrips(t *testing.T) {
	for _, lv := range []Level{Debug, Info, Warn, Error} {
		if ParseLevel(lv.String()) != lv {
			t.Fatalf("level %v did not round-trip through its string form %q", lv, lv.String())
		}
	}
}

func TestLoggerDoesNotPanicAtAnyLevel(t *testing.T) {
	lg := New(Debug)
	lg.Debugf("debug message", "k", "v")
	lg.Infof("info message")
	lg.Warnf("warn message", "a", 1, "b", 2)
	lg.Errorf("error message", "odd")
}
