package labels

import (
	"testing"

	"github.com/steveyegge/backlog/internal/types"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		labels    []string
		prefix    string
		want      string
		wantFound bool
	}{
		{
			name:      "no labels",
			labels:    nil,
			prefix:    types.PrefixEpic,
			wantFound: false,
		},
		{
			name:      "no label with prefix",
			labels:    []string{"priority:high", "type:feature"},
			prefix:    types.PrefixEpic,
			wantFound: false,
		},
		{
			name:      "exact suffix returned",
			labels:    []string{"priority:high", "epic:booking-payment"},
			prefix:    types.PrefixEpic,
			want:      "booking-payment",
			wantFound: true,
		},
		{
			name:      "first occurrence wins on duplicate prefixes",
			labels:    []string{"priority:high", "priority:low"},
			prefix:    types.PrefixPriority,
			want:      "high",
			wantFound: true,
		},
		{
			name:      "empty suffix is still a match",
			labels:    []string{"epic:"},
			prefix:    types.PrefixEpic,
			want:      "",
			wantFound: true,
		},
		{
			name:      "prefix must be at the start",
			labels:    []string{"my-epic:thing"},
			prefix:    types.PrefixEpic,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Decode(tt.labels, tt.prefix)
			if found != tt.wantFound {
				t.Fatalf("Decode() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(types.PrefixPriority, "high"); got != "priority:high" {
		t.Errorf("Encode() = %q, want %q", got, "priority:high")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name      string
		labels    []string
		want      string
		wantFound bool
	}{
		{
			name:      "no status label",
			labels:    []string{"epic:search", "priority:low"},
			wantFound: false,
		},
		{
			name:      "unknown status value is not syncable",
			labels:    []string{"status:blocked"},
			wantFound: false,
		},
		{
			name:      "backlog",
			labels:    []string{"type:bug", "status:backlog"},
			want:      "status:backlog",
			wantFound: true,
		},
		{
			name:      "first status label in issue order wins",
			labels:    []string{"status:done", "status:backlog"},
			want:      "status:done",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := StatusLabel(tt.labels)
			if found != tt.wantFound {
				t.Fatalf("StatusLabel() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("StatusLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
