// Package gitjobs wires the domain-specific single-shot jobs named in
// spec.md section 4.1 onto internal/asyncjob's generic runner, and the
// external-command job onto internal/jobqueue's dynamic queue.
package gitjobs

// Notification names which async result just landed, the tag the event
// dispatcher's update_async switches on (spec.md section 4.8, step 6).
type Notification int

const (
	NotifyFetch Notification = iota
	NotifyPush
	NotifyPull
	NotifyBranches
	NotifyTags
	NotifyBlame
)
