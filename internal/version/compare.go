package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
)

// DevelopmentVersion marks an unreleased build; it is compatible with everything.
const DevelopmentVersion = "main"

// CheckVersionCompatibility checks that a config written for configVersion can
// be run by a binary at binaryVersion.
//
// Major and minor versions must match; patch versions may differ. The check is
// skipped when either side is "main".
//
//   - binary 1.2.1, config 1.2.0 -> OK
//   - binary 1.3.0, config 1.2.0 -> ERROR (minor differs)
//   - binary 2.0.0, config 1.2.0 -> ERROR (major differs)
func CheckVersionCompatibility(binaryVersion, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if binaryVersion == DevelopmentVersion || configVersion == DevelopmentVersion {
		return nil
	}

	binarySemver, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid binary version '%s'", binaryVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if binarySemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"major version mismatch: binary is %d.x.x but config requires %d.x.x",
			binarySemver.Major(), configSemver.Major())
	}

	if binarySemver.Minor() != configSemver.Minor() {
		return errors.Newf(errors.ErrCodeIncompatibleVersion,
			"minor version mismatch: binary is %d.%d.x but config requires %d.%d.x",
			binarySemver.Major(), binarySemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
