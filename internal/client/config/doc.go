// Package config loads runtime configuration for the MyBestVenue shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   authentication API base URL
//	-d string   session storage driver (sqlite|redis|memory)
//	-f string   sqlite database file
//	-r string   redis address
//	-m string   login mode (tolerate|exclusive)
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "storage_driver": "sqlite",
//	  "sqlite_file": "mybestvenue.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "mybestvenue:session:",
//	  "login_mode": "tolerate"
//	}
package config
