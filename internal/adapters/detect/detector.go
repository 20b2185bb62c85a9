// Package detect infers which package manager owns a project.
package detect

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/depvet/depvet/internal/core/domain"
)

// Detector implements ports.AgentDetector by inspecting lockfiles and the
// root manifest.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// lockfileOrder lists lockfiles in detection priority. The yarn.lock entry is
// disambiguated into classic vs berry by its header.
var lockfileOrder = []struct {
	file  string
	agent domain.Agent
}{
	{"bun.lock", domain.AgentBun},
	{"bun.lockb", domain.AgentBun},
	{"vlt-lock.json", domain.AgentVlt},
	{"pnpm-lock.yaml", domain.AgentPnpm},
	{"yarn.lock", domain.AgentYarnClassic},
	{"package-lock.json", domain.AgentNPM},
	{"npm-shrinkwrap.json", domain.AgentNPM},
}

// Detect returns the agent owning dir. Precedence: the manifest's
// packageManager field, then lockfiles, then npm as the default.
func (d *Detector) Detect(dir string) (domain.Agent, error) {
	if agent, ok := fromPackageManagerField(dir); ok {
		return agent, nil
	}

	for _, entry := range lockfileOrder {
		path := filepath.Join(dir, entry.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if entry.agent == domain.AgentYarnClassic {
			return classifyYarn(path)
		}
		return entry.agent, nil
	}
	return domain.AgentNPM, nil
}

// fromPackageManagerField reads the manifest's packageManager field, e.g.
// "pnpm@9.1.0". The manifest is read directly rather than through the store so
// a malformed manifest falls back to lockfile detection instead of failing.
func fromPackageManagerField(dir string) (domain.Agent, bool) {
	m, err := domain.ParseManifestFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return "", false
	}
	field := m.PackageManager()
	if field == "" {
		return "", false
	}
	name, version, _ := strings.Cut(field, "@")
	switch name {
	case "npm":
		return domain.AgentNPM, true
	case "pnpm":
		return domain.AgentPnpm, true
	case "vlt":
		return domain.AgentVlt, true
	case "bun":
		return domain.AgentBun, true
	case "yarn":
		if strings.HasPrefix(version, "1.") || version == "1" {
			return domain.AgentYarnClassic, true
		}
		return domain.AgentYarnBerry, true
	}
	return "", false
}

// classifyYarn distinguishes classic (v1) from berry (v2+) lockfiles. Berry
// lockfiles are YAML and open with a __metadata block; classic ones carry a
// "# yarn lockfile v1" comment.
func classifyYarn(path string) (domain.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read yarn.lock")
	}
	head := string(data)
	if len(head) > 2048 {
		head = head[:2048]
	}
	if strings.Contains(head, "__metadata:") {
		return domain.AgentYarnBerry, nil
	}
	return domain.AgentYarnClassic, nil
}
