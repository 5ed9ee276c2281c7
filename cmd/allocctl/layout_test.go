package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/alloc"
)

func TestLayoutCommand(t *testing.T) {
	tests := []struct {
		name        string
		cfg         traceConfig
		wantContain []string
	}{
		{
			name:        "fresh arena has one block",
			cfg:         traceConfig{capacity: 64, backing: "heap"},
			wantContain: []string{"[0] header 0  data 24  size 40  next end"},
		},
		{
			name:        "split leaves the remainder block",
			cfg:         traceConfig{capacity: 64, backing: "heap", sizes: []int{8}},
			wantContain: []string{"1 allocated, 0 failed", "[0] header 32  data 56  size 8  next end"},
		},
		{
			name:        "exhausted arena",
			cfg:         traceConfig{capacity: 64, backing: "heap", sizes: []int{8, 8, 8}},
			wantContain: []string{"2 allocated, 1 failed", "Free list: empty"},
		},
		{
			name:        "grouped offsets",
			cfg:         traceConfig{capacity: 4096, backing: "heap", sizes: []int{1000}},
			wantContain: []string{"[0] header 1,024  data 1,048  size 3,048  next end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			output, err := captureOutput(t, func() error {
				return runLayout(tt.cfg)
			})
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, []string{"invalid"})
		})
	}
}

func TestLayoutCommand_JSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	t.Cleanup(func() { jsonOut = false })

	output, err := captureOutput(t, func() error {
		return runLayout(traceConfig{capacity: 64, backing: "heap", sizes: []int{8}})
	})
	require.NoError(t, err)

	var res layoutResult
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Allocated)
	assert.Equal(t, []alloc.Block{{Offset: 32, Data: 56, Size: 8, Next: -1}}, res.Blocks)
}
