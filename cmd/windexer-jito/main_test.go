package main

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockHash(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: strings.Repeat("ab", 32)},
		{name: "not hex", input: "zz", wantErr: "invalid block hash"},
		{name: "too short", input: "abcd", wantErr: "want 32 bytes, got 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := parseBlockHash(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, byte(0xab), hash[0])
			assert.Equal(t, byte(0xab), hash[31])
		})
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"validate", "replay"}, names)
}

func TestReplayRejectsReversedRange(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"replay", "--start", "10", "--stop", "5"})
	root.SilenceErrors = true

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start slot")
}

func TestValidateCommandRuns(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"validate", "--slot", "100"})

	assert.NoError(t, root.Execute())
}

func TestValidateCommandReportsRestakingFailure(t *testing.T) {
	t.Setenv("WINDEXER_RESTAKING_MIN_STAKE", "2000000")
	root := newRootCmd()
	root.SetArgs([]string{"validate"})
	root.SilenceErrors = true

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stake")
}

func TestReplayItemsStopsAtMaxSlot(t *testing.T) {
	items := replayItems(math.MaxUint64-2, math.MaxUint64, 10, 1)

	require.Len(t, items, 3)
	assert.Equal(t, uint64(math.MaxUint64-2), items[0].Slot)
	assert.Equal(t, uint64(math.MaxUint64), items[2].Slot)
	assert.Equal(t, uint64(math.MaxUint64-1), items[2].ParentSlot)
}

func TestReplayItemsSlotZero(t *testing.T) {
	items := replayItems(0, 1, 10, 1)

	require.Len(t, items, 2)
	assert.Equal(t, uint64(0), items[0].ParentSlot)
	assert.Equal(t, uint64(0), items[1].ParentSlot)
}

func TestReplaySingleMaxSlot(t *testing.T) {
	maxSlot := strconv.FormatUint(math.MaxUint64, 10)
	root := newRootCmd()
	root.SetArgs([]string{"replay", "--start", maxSlot, "--stop", maxSlot, "--concurrency", "1"})

	assert.NoError(t, root.Execute())
}

func TestReplayRejectsOversizedRange(t *testing.T) {
	cases := []struct {
		name  string
		start string
		stop  string
	}{
		{name: "full uint64 range", start: "0", stop: strconv.FormatUint(math.MaxUint64, 10)},
		{name: "one past the cap", start: "0", stop: strconv.Itoa(maxReplaySlots)},
		{name: "wide range", start: "0", stop: "1000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs([]string{"replay", "--start", tc.start, "--stop", tc.stop})
			root.SilenceErrors = true

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exceeds")
		})
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("WINDEXER_LOG_LEVEL", "verbose")
	root := newRootCmd()
	root.SetArgs([]string{"validate"})
	root.SilenceErrors = true

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}
