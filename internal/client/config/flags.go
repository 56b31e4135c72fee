package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the authentication API
//	-d string   storage driver: sqlite, redis or memory
//	-f string   sqlite database file
//	-r string   redis address
//	-m string   login mode: tolerate or exclusive
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-l string   log level: debug, info, warn or error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-f", "-r", "-m", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "authentication API base URL")
	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "session storage driver (sqlite|redis|memory)")
	fs.StringVar(&cfg.SQLiteFile, "f", cfg.SQLiteFile, "sqlite database file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LoginMode, "m", cfg.LoginMode, "login mode (tolerate|exclusive)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	return nil
}
