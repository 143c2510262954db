package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// What a build produces.
type Contents string

const (
	PackageZip Contents = "packageZip" // Package directory plus "<packageDir>.zip".
	ToxFiles   Contents = "toxFiles"   // Package directory only.
)

// How the application is started.
type LaunchMode string

const (
	LaunchDirect LaunchMode = "direct" // toxbuild runs the executable with the project file.
	LaunchTDM    LaunchMode = "tdm"    // "tdm run" starts the application.
)

const (
	defaultProjectDir = "TouchDesigner"
	defaultAppName    = "TouchDesigner"
)

// A build-settings document. Read-only once loaded.
type Settings struct {
	DestDir       string            `json:"destDir" yaml:"destDir"`
	PackageDir    string            `json:"packageDir" yaml:"packageDir"`
	LogFile       string            `json:"logFile" yaml:"logFile"`
	ProjectFile   string            `json:"projectFile" yaml:"projectFile"`
	TDVersion     string            `json:"tdVersion" yaml:"tdVersion"`
	BuildContents Contents          `json:"buildContents" yaml:"buildContents"`
	EnvVars       map[string]string `json:"envVars" yaml:"envVars"`
	UseTDM        bool              `json:"useTdm" yaml:"useTdm"`

	ProjectDir    string     `json:"projectDir,omitempty" yaml:"projectDir,omitempty"`       // tdm working directory.
	LaunchMode    LaunchMode `json:"launchMode,omitempty" yaml:"launchMode,omitempty"`       // Defaults to [LaunchDirect].
	TrimGitSuffix bool       `json:"trimGitSuffix,omitempty" yaml:"trimGitSuffix,omitempty"` // Strip ".git" from SM_REPO.
	AppName       string     `json:"appName,omitempty" yaml:"appName,omitempty"`             // Installed application name.
}

// Reads, defaults and validates the document at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	s, err := Parse(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decodes, defaults and validates a document.
func Parse(data []byte, asYAML bool) (*Settings, error) {
	var s Settings
	if asYAML {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.ProjectDir == "" {
		s.ProjectDir = defaultProjectDir
	}
	if s.LaunchMode == "" {
		s.LaunchMode = LaunchDirect
	}
	if s.AppName == "" {
		s.AppName = defaultAppName
	}
}

// Checks the document for values a build cannot run with.
func (s *Settings) Validate() error {
	switch s.BuildContents {
	case PackageZip, ToxFiles:
	default:
		return fmt.Errorf("%w: build contents %q should be %s or %s", ErrInvalid, s.BuildContents, PackageZip, ToxFiles)
	}

	switch s.LaunchMode {
	case LaunchDirect, LaunchTDM:
	default:
		return fmt.Errorf("%w: launch mode %q should be %s or %s", ErrInvalid, s.LaunchMode, LaunchDirect, LaunchTDM)
	}

	required := []struct{ name, value string }{
		{"destDir", s.DestDir},
		{"logFile", s.LogFile},
		{"tdVersion", s.TDVersion},
	}
	if s.BuildContents == PackageZip {
		required = append(required, struct{ name, value string }{"packageDir", s.PackageDir})
	}
	if s.LaunchMode == LaunchDirect {
		required = append(required, struct{ name, value string }{"projectFile", s.ProjectFile})
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalid, f.name)
		}
	}

	for k := range s.EnvVars {
		if k == "" || strings.ContainsAny(k, "=\x00") {
			return fmt.Errorf("%w: invalid environment variable name %q", ErrInvalid, k)
		}
	}

	return nil
}

// Reports whether "tdm install" runs before the application: requested
// explicitly, or implied by launching through tdm.
func (s *Settings) InstallsDependencies() bool {
	return s.UseTDM || s.LaunchMode == LaunchTDM
}

// Returns the archive path of a packageZip build.
func (s *Settings) ArchivePath() string {
	return filepath.Clean(s.PackageDir) + ".zip"
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
