package session

import (
	"os"
	"path/filepath"

	"oolong/report"
	"oolong/target"

	"github.com/pelletier/go-toml"
)

// ProfileFileName is the name of the build profile file at a project root.
const ProfileFileName = "oolong-build.toml"

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	Target    string `toml:"target"`
	DebugInfo string `toml:"debug-info"`
	OptLevel  int    `toml:"opt-level"`
}

// LoadProfile loads the build profile in the given project directory and
// creates the session it describes.  Missing fields fall back to defaults: the
// host target, no debug information, no optimization.
func LoadProfile(projectDir string) *Session {
	buff, err := os.ReadFile(filepath.Join(projectDir, ProfileFileName))
	if err != nil {
		report.ReportFatal("unable to read build profile in `%s`: %s", projectDir, err.Error())
		return nil
	}

	profile := &tomlProfile{}
	if err := toml.Unmarshal(buff, profile); err != nil {
		report.ReportFatal("error parsing build profile in `%s`: %s", projectDir, err.Error())
		return nil
	}

	return sessionFromProfile(projectDir, profile)
}

// sessionFromProfile validates a decoded profile and converts it to a session.
func sessionFromProfile(projectDir string, profile *tomlProfile) *Session {
	sess := New(target.Default(), DebugInfoNone)
	sess.WorkingDir = projectDir

	if profile.Target != "" {
		spec, ok := target.Lookup(profile.Target)
		if !ok {
			report.ReportFatal("unsupported target `%s`", profile.Target)
			return nil
		}

		sess.Target = spec
	}

	switch profile.DebugInfo {
	case "", "none":
		sess.DebugInfo = DebugInfoNone
	case "limited":
		sess.DebugInfo = DebugInfoLimited
	case "full":
		sess.DebugInfo = DebugInfoFull
	default:
		report.ReportFatal("invalid debug-info level `%s`: expected none, limited, or full", profile.DebugInfo)
		return nil
	}

	if profile.OptLevel < 0 || 3 < profile.OptLevel {
		report.ReportFatal("invalid opt-level %d: expected 0 through 3", profile.OptLevel)
		return nil
	}

	sess.OptLevel = profile.OptLevel

	return sess
}
