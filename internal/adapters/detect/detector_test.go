package detect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/internal/adapters/detect"
	"github.com/depvet/depvet/internal/core/domain"
)

func touch(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDetect_Lockfiles(t *testing.T) {
	tests := []struct {
		lockfile string
		content  string
		want     domain.Agent
	}{
		{"package-lock.json", "{}", domain.AgentNPM},
		{"npm-shrinkwrap.json", "{}", domain.AgentNPM},
		{"pnpm-lock.yaml", "lockfileVersion: '9.0'\n", domain.AgentPnpm},
		{"vlt-lock.json", "{}", domain.AgentVlt},
		{"bun.lock", "{}", domain.AgentBun},
		{"bun.lockb", "", domain.AgentBun},
		{"yarn.lock", "# yarn lockfile v1\n\nleft-pad@^1.3.0:\n", domain.AgentYarnClassic},
		{"yarn.lock", "__metadata:\n  version: 8\n", domain.AgentYarnBerry},
	}

	d := detect.NewDetector()
	for _, tt := range tests {
		dir := t.TempDir()
		touch(t, dir, tt.lockfile, tt.content)

		agent, err := d.Detect(dir)
		require.NoError(t, err, "lockfile %s", tt.lockfile)
		assert.Equal(t, tt.want, agent, "lockfile %s", tt.lockfile)
	}
}

func TestDetect_PackageManagerFieldWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "package.json", `{"name": "demo", "packageManager": "pnpm@9.1.0"}`)
	touch(t, dir, "package-lock.json", "{}")

	d := detect.NewDetector()
	agent, err := d.Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentPnpm, agent)
}

func TestDetect_PackageManagerYarnFlavors(t *testing.T) {
	d := detect.NewDetector()

	dir := t.TempDir()
	touch(t, dir, "package.json", `{"packageManager": "yarn@1.22.19"}`)
	agent, err := d.Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentYarnClassic, agent)

	dir = t.TempDir()
	touch(t, dir, "package.json", `{"packageManager": "yarn@4.0.2"}`)
	agent, err = d.Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentYarnBerry, agent)
}

func TestDetect_DefaultsToNpm(t *testing.T) {
	d := detect.NewDetector()
	agent, err := d.Detect(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.AgentNPM, agent)
}

func TestDetect_BunBeatsOtherLockfiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "bun.lock", "{}")
	touch(t, dir, "package-lock.json", "{}")
	touch(t, dir, "yarn.lock", "# yarn lockfile v1\n")

	d := detect.NewDetector()
	agent, err := d.Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentBun, agent)
}
