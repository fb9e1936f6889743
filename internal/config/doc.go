// Package config manages user-level settings stored at ~/.factoryai/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the submodules directory, and resolves the suite root directory the CLI
// operates on.
package config
