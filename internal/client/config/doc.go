// Package config loads runtime configuration for the request desk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. JSON, YAML and TOML
//     are accepted; the format follows the file extension.
//  3. A .env file in the working directory, then environment variables with
//     the REQDESK_ prefix.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server url (scheme and host)
//	-p string   api prefix
//	-d string   local database path
//	-i int      poll interval (seconds)
//	-l string   log level
//
// # File keys
//
//	{
//	  "server_url": "http://localhost:10000",
//	  "api_prefix": "/api",
//	  "db_path": "requestdesk.db",
//	  "poll_interval": "5s",
//	  "debounce_window": "350ms",
//	  "request_timeout": "15s",
//	  "page_size": 10,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The same keys in upper case, prefixed with REQDESK_, are read from the
// environment (REQDESK_SERVER_URL, REQDESK_POLL_INTERVAL, ...).
package config
