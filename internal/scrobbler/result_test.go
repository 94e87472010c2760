package scrobbler

import "testing"

func TestResult_String(t *testing.T) {
	tests := []struct {
		result Result
		want   string
	}{
		{ResultOK, "ok"},
		{ResultIgnored, "ignored"},
		{ResultErrorAuth, "error-auth"},
		{ResultErrorOther, "error-other"},
		{Result(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.result, got, tt.want)
		}
	}
}

func TestAnyResult(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty", nil, false},
		{"single ok", []Result{ResultOK}, true},
		{"all ignored", []Result{ResultIgnored, ResultIgnored}, false},
		{"ok among failures", []Result{ResultOK, ResultErrorOther}, true},
		{"failures only", []Result{ResultErrorAuth, ResultErrorOther}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnyResult(tt.results, ResultOK); got != tt.want {
				t.Errorf("AnyResult(%v, OK) = %v, want %v", tt.results, got, tt.want)
			}
		})
	}
}

func TestAllResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    bool
	}{
		{"empty is false", nil, false},
		{"all ignored", []Result{ResultIgnored, ResultIgnored}, true},
		{"mixed", []Result{ResultIgnored, ResultOK}, false},
		{"single ignored", []Result{ResultIgnored}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllResults(tt.results, ResultIgnored); got != tt.want {
				t.Errorf("AllResults(%v, Ignored) = %v, want %v", tt.results, got, tt.want)
			}
		})
	}
}
