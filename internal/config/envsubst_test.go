package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("MPPLUG_T_KEY", "abc123")
	t.Setenv("MPPLUG_T_EMPTY", "")
	t.Setenv("MPPLUG_T_PORT", "9000")

	tests := []struct {
		name    string
		in      string
		want    string
		missing []string
	}{
		{
			name: "plain reference",
			in:   `api_key = "${MPPLUG_T_KEY}"`,
			want: `api_key = "abc123"`,
		},
		{
			name: "set but empty is kept for plain references",
			in:   `user = "${MPPLUG_T_EMPTY}"`,
			want: `user = ""`,
		},
		{
			name:    "unset reference is left in place",
			in:      `api_key = "${MPPLUG_T_NEVER_SET_1}"`,
			want:    `api_key = "${MPPLUG_T_NEVER_SET_1}"`,
			missing: []string{"MPPLUG_T_NEVER_SET_1"},
		},
		{
			name: "default used when empty",
			in:   `port = ${MPPLUG_T_EMPTY:-8484}`,
			want: `port = 8484`,
		},
		{
			name: "default used when unset, may be empty",
			in:   `api_key = "${MPPLUG_T_NEVER_SET_2:-}"`,
			want: `api_key = ""`,
		},
		{
			name: "environment beats default",
			in:   `port = ${MPPLUG_T_PORT:-8484}`,
			want: `port = 9000`,
		},
		{
			name:    "required reports its message",
			in:      `api_key = "${MPPLUG_T_EMPTY:? set the emby api key }"`,
			want:    `api_key = "${MPPLUG_T_EMPTY:? set the emby api key }"`,
			missing: []string{"MPPLUG_T_EMPTY: set the emby api key"},
		},
		{
			name:    "several on one line",
			in:      `${MPPLUG_T_KEY}/${MPPLUG_T_NEVER_SET_3}/${MPPLUG_T_EMPTY:-x}`,
			want:    `abc123/${MPPLUG_T_NEVER_SET_3}/x`,
			missing: []string{"MPPLUG_T_NEVER_SET_3"},
		},
		{
			name: "dollar without braces is untouched",
			in:   `pattern = "$HOME [\s.]+DV"`,
			want: `pattern = "$HOME [\s.]+DV"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.missing, missing)
		})
	}
}
