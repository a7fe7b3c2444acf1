package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate flag and value",
			args:         []string{"-a", ":5000", "-x", "ignored"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", ":5000"},
		},
		{
			name:         "flag=value form",
			args:         []string{"--config=conf.json", "-d=dsn"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=conf.json"},
		},
		{
			name:         "flag without value followed by another flag",
			args:         []string{"-v", "-a", ":5000"},
			allowedFlags: []string{"-v", "-a"},
			want:         []string{"-v", "-a", ":5000"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-a", ":5000"},
			allowedFlags: []string{"-b"},
			want:         []string{},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"app", "-c", "conf.json", "-a", ":5000"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"app", "-config=other.json"}
	assert.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"app", "-a", ":5000"}
	assert.Equal(t, "", JsonConfigFlags())
}
