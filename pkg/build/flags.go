// SPDX-License-Identifier: MIT
//
// Package build provides the build information embedded into the binary at
// link time, such as the application name, build timestamp, Git commit hash,
// and semantic version:
//
//	go build -ldflags "-X bitpat/pkg/build.buildVersion=v1.2.0 ..."
//
// Development builds run without these flags and report "unknown".
package build

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFlag is returned by Initialize for every flag left empty at link time.
var ErrMissingFlag = errors.New("build flag not set")

// Info describes the running binary.
type Info struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// String renders the version line, e.g. "bitpat v1.2.0 (abcdef1, 2025-04-13)".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", i.Name, i.Version, i.Commit, i.Time)
}

const (
	defaultName        = "bitpat"
	defaultDescription = "Generate bit patterns and dilute integers into sparse words"
	unknown            = "unknown"
)

// Package-level variables for build information. These are populated by -ldflags
// during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildInfo    = defaultInfo()
)

func defaultInfo() *Info {
	return &Info{
		Name:        defaultName,
		Description: defaultDescription,
		Time:        unknown,
		Commit:      unknown,
		Version:     unknown,
	}
}

// Initialize copies the ldflags variables into the build information. Flags
// that were not set keep their default and are reported together in the
// returned error, which wraps ErrMissingFlag. Callers may treat it as a warning.
func Initialize() error {
	var missing []string
	set := func(dst *string, val, name string) {
		if val == "" {
			missing = append(missing, name)
			return
		}
		*dst = val
	}

	set(&buildInfo.Name, buildName, "BuildName")
	set(&buildInfo.Time, buildTime, "BuildTime")
	set(&buildInfo.Commit, buildCommit, "BuildCommit")
	set(&buildInfo.Version, buildVersion, "BuildVersion")

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFlag, strings.Join(missing, ", "))
	}
	return nil
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *Info {
	return buildInfo
}
