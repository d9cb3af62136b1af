package config

import "time"

const (
	// Storage backends
	BackendMinio = "minio"
	BackendS3    = "s3"
	BackendLocal = "local"

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Attachment download timeout
	DownloadTimeout = 2 * time.Minute

	// Timeout for forwarding an activity entry to the log chat
	TelegramLogTimeout = 10 * time.Second

	// Rows read back from the database when tailing the activity log
	ActivityTailRows = 500
)
