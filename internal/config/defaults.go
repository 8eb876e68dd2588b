package config

import "time"

// ApplyDefaults fills zero-valued fields with development-friendly defaults.
// Production deployments are expected to override connection endpoints and
// credentials via file or DEEPDOCK_* environment variables.
func ApplyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.MaxBodySize == 0 {
		c.Server.MaxBodySize = 1 << 20 // 1 MiB
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = 50
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 100
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.User == "" {
		c.Database.User = "deepdock"
	}
	if c.Database.DBName == "" {
		c.Database.DBName = "deepdock"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = 2
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = time.Hour
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 30 * time.Minute
	}
	if c.Database.MigrationPath == "" {
		c.Database.MigrationPath = "migrations"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.MinIdleConns == 0 {
		c.Redis.MinIdleConns = 2
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}
	if c.Redis.DefaultTTL == 0 {
		c.Redis.DefaultTTL = time.Hour
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "deepdock"
	}

	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "deepdock-worker"
	}
	if c.Kafka.AutoOffsetReset == "" {
		c.Kafka.AutoOffsetReset = "earliest"
	}
	if c.Kafka.BatchTimeout == 0 {
		c.Kafka.BatchTimeout = 100 * time.Millisecond
	}
	if c.Kafka.ProducerRetries == 0 {
		c.Kafka.ProducerRetries = 3
	}

	if c.Milvus.Addr == "" {
		c.Milvus.Addr = "localhost:19530"
	}
	if c.Milvus.Collection == "" {
		c.Milvus.Collection = "ligand_descriptors"
	}
	if c.Milvus.IndexType == "" {
		c.Milvus.IndexType = "IVF_FLAT"
	}
	if c.Milvus.NList == 0 {
		c.Milvus.NList = 128
	}
	if c.Milvus.DefaultTopK == 0 {
		c.Milvus.DefaultTopK = 10
	}

	if c.MinIO.Endpoint == "" {
		c.MinIO.Endpoint = "localhost:9000"
	}
	if c.MinIO.Bucket == "" {
		c.MinIO.Bucket = "deepdock-exports"
	}
	if c.MinIO.PresignExpiry == 0 {
		c.MinIO.PresignExpiry = 24 * time.Hour
	}

	if c.Sources.PubChemBaseURL == "" {
		c.Sources.PubChemBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	}
	if c.Sources.RCSBBaseURL == "" {
		c.Sources.RCSBBaseURL = "https://files.rcsb.org"
	}
	if c.Sources.AlphaFoldBaseURL == "" {
		c.Sources.AlphaFoldBaseURL = "https://alphafold.ebi.ac.uk"
	}
	if c.Sources.RequestTimeout == 0 {
		c.Sources.RequestTimeout = 10 * time.Second
	}

	if c.Worker.Concurrency == 0 {
		c.Worker.Concurrency = 4
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.RetryBackoff == 0 {
		c.Worker.RetryBackoff = 2 * time.Second
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
		c.Metrics.Enabled = true
	}
}
