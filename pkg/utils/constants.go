package utils

// Names used for on-disk state under the data directory.
const (
	AppName        = "siacli"
	PendingDBName  = "pending.db"
	ConfigFileName = "siacli.yaml"
)
