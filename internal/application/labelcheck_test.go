package application_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/mergegate/internal/application"
)

func TestIsBlocked(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		labels []string
		want   bool
	}{
		{name: "present", label: "do-not-merge", labels: []string{"wip", "do-not-merge"}, want: true},
		{name: "absent", label: "do-not-merge", labels: []string{"wip", "ready"}, want: false},
		{name: "nil labels", label: "do-not-merge", labels: nil, want: false},
		{name: "empty labels", label: "do-not-merge", labels: []string{}, want: false},
		{name: "case sensitive", label: "do-not-merge", labels: []string{"DO-NOT-MERGE"}, want: false},
		{name: "no trimming", label: "do-not-merge", labels: []string{" do-not-merge"}, want: false},
		{name: "substring does not match", label: "block", labels: []string{"blocked"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, application.IsBlocked(tt.label, tt.labels))
		})
	}
}

func TestCheckBlockingLabel_WritesNoticeOnlyWhenBlocked(t *testing.T) {
	var out bytes.Buffer

	blocked := application.CheckBlockingLabel(&out, "do-not-merge", []string{"wip", "do-not-merge"})
	assert.True(t, blocked)
	assert.Equal(t, application.BlockedNotice+"\n", out.String())

	out.Reset()
	blocked = application.CheckBlockingLabel(&out, "do-not-merge", []string{"wip"})
	assert.False(t, blocked)
	assert.Empty(t, out.String())
}
