// Package loop provides scheduler.EventLoop implementations backed by
// existing job runners, for running tickflow timers in delegated mode.
//
// CronLoop uses robfig/cron constant-delay schedules. GocronLoop uses
// gocron duration jobs and accepts an injected clock. Both round intervals
// below one second up to one second and key timers by positive identifiers.
package loop
