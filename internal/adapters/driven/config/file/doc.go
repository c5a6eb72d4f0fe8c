// Package file stores the settings as config.toml on the local disk.
package file
