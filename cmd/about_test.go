package cmd

import (
	"strings"
	"testing"
)

func TestAboutCommand(t *testing.T) {
	output := captureStdout(t, func() {
		runAbout(nil, nil)
	})

	tests := []struct {
		name     string
		contains string
	}{
		{"has header", "tend"},
		{"has version label", "Version"},
		{"has repository label", "Repo"},
		{"has repository URL", "https://github.com/tendhq/tend"},
		{"has license label", "License"},
		{"has license type", "MIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(output, tt.contains) {
				t.Errorf("output missing %q\nGot: %s", tt.contains, output)
			}
		})
	}
}
