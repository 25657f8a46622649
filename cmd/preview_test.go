package cmd

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPreview_CalendarMonths(t *testing.T) {
	out, err := run(t, "preview",
		"--unlock", "calendar-months", "--number", "1",
		"--now", "2026-01-31T20:10:00Z", "--lang", "en")

	require.NoError(t, err)
	assert.Contains(t, out, "earliest: 2026-01-31 20:30 Sat")
	assert.Contains(t, out, "latest:   2026-02-28 23:59:59.999 Sat")
	assert.Contains(t, out, "next:     2026-03 opens 2026-02-01 00:00")
	assert.Contains(t, out, "[en] Furthest booking right now would be February 28. March will become available on February 1 at midnight.")
	assert.NotContains(t, out, "[ja]")
}

func TestPreview_ClampsNonPositive(t *testing.T) {
	out, err := run(t, "preview",
		"--unlock", "daily", "--unit", "days", "--number", "-5",
		"--closest", "advance", "--days", "0",
		"--now", "2026-03-10T10:01:00Z")

	require.NoError(t, err)
	assert.Contains(t, out, "latest:   2026-03-11 23:59:59.999")
	assert.Contains(t, out, "earliest: 2026-03-11 10:15")
	assert.Contains(t, out, "[ja] 現在の最短予約可能日は3月11日水曜日です。")
}

func TestPreview_RejectsUnknownValues(t *testing.T) {
	_, err := run(t, "preview", "--unlock", "weekly")
	assert.Error(t, err)

	_, err = run(t, "preview", "--lang", "fr")
	assert.Error(t, err)

	_, err = run(t, "preview", "--now", "yesterday")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "bookingwin dev (commit=none")

	out, err = run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestKeys(t *testing.T) {
	out, err := run(t, "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "export COOKIE_HASH_KEY=")
	assert.Contains(t, out, "export COOKIE_BLOCK_KEY=")
}

func TestKeys_DotenvAndBlockSize(t *testing.T) {
	out, err := run(t, "keys", "--dotenv", "--block-size", "16")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	hash, ok := strings.CutPrefix(lines[0], "COOKIE_HASH_KEY=")
	require.True(t, ok, lines[0])
	block, ok := strings.CutPrefix(lines[1], "COOKIE_BLOCK_KEY=")
	require.True(t, ok, lines[1])

	raw, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	raw, err = base64.StdEncoding.DecodeString(block)
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	_, err = run(t, "keys", "--block-size", "20")
	assert.Error(t, err)
}
