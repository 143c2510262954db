package build

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateApplicationLocated, "application-located"},
		{StateEnvironmentCleared, "environment-cleared"},
		{StateFailed, "failed"},
		{State(99), "state(99)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Fatalf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if got := OutcomeSkipped.String(); got != "skipped" {
		t.Fatalf("OutcomeSkipped.String() = %q, want %q", got, "skipped")
	}
	if got := Outcome(5).String(); got != "outcome(5)" {
		t.Fatalf("Outcome(5).String() = %q, want %q", got, "outcome(5)")
	}
}
