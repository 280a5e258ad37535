package config

import (
	"os"

	"git.home.luguber.info/inful/demoapi/internal/errors"
)

const defaultConfigTemplate = `# demoapi service configuration
server:
  host: 0.0.0.0
  port: 8000
  read_timeout: 15s
  write_timeout: 30s
  shutdown_timeout: 10s

sampler:
  # How often host statistics are sampled into the registry.
  interval: 10s
  disk_path: /
  # Simulated active database connection range, inclusive.
  connections_min: 10
  connections_max: 50

logging:
  # debug, info, warn, error
  level: info
  # text or json
  format: text
`

// Init writes a commented default configuration file at path. An existing
// file is only overwritten when force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.ValidationError("configuration file already exists, use --force to overwrite").
				WithContext("path", path)
		}
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "writing configuration file").
			WithContext("path", path)
	}
	return nil
}
