package config

// Config holds runtime settings for the feed client.
//
// Fields:
//   - APIEndpointAddr: base URL of the feed backend REST API.
//   - APIToken: bearer token sent with every API request.
//   - DatabaseDSN: SQLite DSN of the local draft store.
//   - PageSize: number of posts requested per feed page.
//
// The S3* fields describe the bucket attachments are uploaded to;
// S3Endpoint is only needed for S3-compatible storage such as R2 or MinIO.
type Config struct {
	APIEndpointAddr string
	APIToken        string
	DatabaseDSN     string
	PageSize        int

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpointAddr = "http://127.0.0.1:8080"
	c.DatabaseDSN = "feedclient.db"
	c.PageSize = 20
	c.S3Region = "auto"
	c.S3Bucket = "feed-media"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
