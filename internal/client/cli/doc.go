// Package cli is the maintenance command line over the local chat state:
// recent conversations, read markers and persisted options.
//
// Usage:
//
//	chatcore [-c config.json] [-d chat.db] [-w 168h] [-b slog|zap] [-l level] <command> [args]
//
// Commands:
//
//	recents          print recent recipient groups as JSON
//	forget <id>...   remove the recent group made of the given ids and the local identity
//	prune            delete expired read markers
//	options          print the effective options as JSON
//	help             list commands
package cli
