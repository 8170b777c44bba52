package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by every command.
const (
	FlagConfig     = "config"
	FlagEnvFile    = "env-file"
	FlagServer     = "server"
	FlagStore      = "store"
	FlagDB         = "db"
	FlagPassphrase = "passphrase"
	FlagPageSize   = "page-size"
	FlagTimeout    = "timeout"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
)

// RegisterFlags declares the command-line overrides on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to a YAML config file")
	fs.String(FlagEnvFile, ".env", "path to a .env file")
	fs.String(FlagServer, d.ServerURL, "server URL")
	fs.String(FlagStore, d.Store.Driver, "credential store driver (bolt or sqlite)")
	fs.String(FlagDB, d.Store.Path, "path to the local credential store")
	fs.String(FlagPassphrase, "", "passphrase for encrypting stored tokens (prefer TODOKEEPER_PASSPHRASE)")
	fs.Int(FlagPageSize, d.PageSize, "default page size")
	fs.Duration(FlagTimeout, d.Timeout, "HTTP request timeout")
	fs.String(FlagLogLevel, d.Log.Level, "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, d.Log.Format, "log format (text or json)")
}

// ApplyFlags overrides c with the flags the user set explicitly.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		*dst, err = fs.GetString(name)
	}

	str(FlagServer, &c.ServerURL)
	str(FlagStore, &c.Store.Driver)
	str(FlagDB, &c.Store.Path)
	str(FlagPassphrase, &c.Store.Passphrase)
	str(FlagLogLevel, &c.Log.Level)
	str(FlagLogFormat, &c.Log.Format)
	if err != nil {
		return err
	}

	if fs.Changed(FlagPageSize) {
		if c.PageSize, err = fs.GetInt(FlagPageSize); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if c.Timeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	return nil
}
