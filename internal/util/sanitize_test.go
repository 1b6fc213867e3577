package util

import "testing"

func TestSanitizeSessionName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "linear-r1h2", want: "linear-r1h2"},
		{name: "dots", input: "ip.v4", want: "ip_v4"},
		{name: "colon", input: "net:1", want: "net_1"},
		{name: "spaces", input: "my net", want: "my_net"},
		{name: "case preserved", input: "LoopNet", want: "LoopNet"},
		{name: "collapse underscores", input: "a..b", want: "a_b"},
		{name: "trim", input: ".hidden.", want: "hidden"},
		{name: "underscores preserved", input: "r1_h2", want: "r1_h2"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeSessionName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeSessionName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
