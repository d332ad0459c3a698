package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Clan API defaults
	DefaultClanBaseURL = "https://api.clashroyale.com/v1"
	DefaultClanTag     = "#228UCY92"
	DefaultClanTimeout = 30 * time.Second

	// Report defaults
	DefaultReportWindow = 24 * time.Hour
	DefaultReportDetail = "date"

	// Notification defaults
	DefaultNotifyKind = "webhook"
	DefaultNotifyURL  = "https://notify-api.line.me/api/notify"

	// Scheduler defaults
	DefaultReportTask     = "inactivity_report"
	DefaultReportSchedule = "0 0 9 * * *" // every day at 09:00
)

// Environment variables accepted for the credentials besides the CLANWATCH_ ones.
const (
	EnvClanAccessKey = "CR_ACCESS_KEY"
	EnvNotifyToken   = "LINE_NOTIFY_ACCESS_TOKEN"
)

var defaults = map[string]any{
	"log.level": DefaultLogLevel,
	"log.json":  DefaultLogJSON,

	"clan.base_url":   DefaultClanBaseURL,
	"clan.tag":        DefaultClanTag,
	"clan.access_key": "",
	"clan.timeout":    DefaultClanTimeout,

	"report.window": DefaultReportWindow,
	"report.detail": DefaultReportDetail,

	"notify.kind":             DefaultNotifyKind,
	"notify.url":              DefaultNotifyURL,
	"notify.token":            "",
	"notify.telegram_chat_id": "",

	"scheduler.run_on_start":                     false,
	"scheduler.tasks.inactivity_report.enabled":  true,
	"scheduler.tasks.inactivity_report.schedule": DefaultReportSchedule,
}
