// Package config loads runtime configuration for the feed client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the feed backend REST API
//	-t string   API bearer token
//	-d string   SQLite DSN of the local draft store
//	-p int      feed page size
//
// # JSON schema
//
//	{
//	  "api_endpoint_addr": "https://feed.example.com",
//	  "api_token": "secret",
//	  "database_dsn": "feedclient.db",
//	  "page_size": 20,
//	  "s3_endpoint": "https://accountid.r2.cloudflarestorage.com",
//	  "s3_region": "auto",
//	  "s3_bucket": "feed-media",
//	  "s3_access_key": "...",
//	  "s3_secret_key": "...",
//	  "s3_public_base_url": "https://media.example.com"
//	}
//
// Primary API
//
//   - type Config                     — holds the API, storage and upload settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
