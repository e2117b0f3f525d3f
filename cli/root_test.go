// Copyright © 2026 The vagrant-kubeadm-kubernetes authors

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/viriatis/vagrant-kubeadm-kubernetes/migrate"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
	}
	for _, tc := range cases {
		input, want := tc.input, tc.want
		var out bytes.Buffer
		got := confirm(strings.NewReader(input), &out)
		assert.Equal(t, want, got, "input %q", input)
		assert.Contains(t, out.String(), "Continue?")
	}
}

func TestPrintSummary(t *testing.T) {
	summary := migrate.RunSummary{
		Converted: 1,
		Skipped:   1,
		Failed:    1,
		Results: []migrate.Result{
			{VM: "node01", Outcome: migrate.OutcomeConverted},
			{VM: "node02", Outcome: migrate.OutcomeSkipped, Reason: "already migrated"},
			{VM: "node03", Outcome: migrate.OutcomeFailed, Reason: "medium locked"},
		},
	}

	var out bytes.Buffer
	printSummary(&out, summary)

	text := out.String()
	assert.Contains(t, text, "node01")
	assert.Contains(t, text, "converted")
	assert.Contains(t, text, "already migrated")
	assert.Contains(t, text, "medium locked")
	assert.Contains(t, text, "Converted: 1  Skipped: 1  Failed: 1")
}
