package envutil

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PB_TEST_INT", "12")
	t.Setenv("PB_TEST_BAD_INT", "twelve")
	t.Setenv("PB_TEST_BOOL", "Yes")
	t.Setenv("PB_TEST_DUR", "90s")
	t.Setenv("PB_TEST_DUR_SECS", "30")
	t.Setenv("PB_TEST_LIST", " a, ,b ,")

	if got := Int("PB_TEST_INT", 1); got != 12 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := Int("PB_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got=%d", got)
	}
	if got := Bool("PB_TEST_BOOL", false); !got {
		t.Fatalf("Bool: got=%v", got)
	}
	if got := Bool("PB_TEST_UNSET_BOOL", true); !got {
		t.Fatalf("Bool default: got=%v", got)
	}
	if got := Duration("PB_TEST_DUR", 0); got != 90*time.Second {
		t.Fatalf("Duration: got=%v", got)
	}
	if got := Duration("PB_TEST_DUR_SECS", 0); got != 30*time.Second {
		t.Fatalf("Duration seconds: got=%v", got)
	}
	if got := List("PB_TEST_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got=%v", got)
	}
	if got := String("PB_TEST_UNSET", "dflt"); got != "dflt" {
		t.Fatalf("String default: got=%q", got)
	}
}
