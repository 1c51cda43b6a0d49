package gitjobs

import (
	"github.com/theorlangur/gitui/internal/gitx"
	"github.com/theorlangur/gitui/internal/jobqueue"
)

// ExternCmdJob runs a user-supplied shell command on the dynamic queue's
// worker goroutine. Grounded on the original gitui's AsyncJobExternCmd.
type ExternCmdJob struct {
	Dir string
	Cmd string
}

func (j ExternCmdJob) Run(feedback chan<- jobqueue.Feedback) jobqueue.Feedback {
	res := gitx.RunExternCommand(j.Dir, j.Cmd)
	return ExternCmdFeedback{Result: res}
}

func (j ExternCmdJob) ShouldStop() bool { return false }

// ExternCmdApplier is implemented by the application state so
// ExternCmdFeedback.Visit can apply the captured output to the
// external-command popup without jobqueue depending on app internals.
type ExternCmdApplier interface {
	ApplyExternCmdResult(gitx.ExternCmdResult)
}

// ExternCmdFeedback carries the captured stdout/stderr/exit status, applied
// to the external-command popup on the main thread.
type ExternCmdFeedback struct {
	Result gitx.ExternCmdResult
}

func (f ExternCmdFeedback) Visit(app any) {
	if a, ok := app.(ExternCmdApplier); ok {
		a.ApplyExternCmdResult(f.Result)
	}
}
