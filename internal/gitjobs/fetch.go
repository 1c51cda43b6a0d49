package gitjobs

import (
	"github.com/theorlangur/gitui/internal/asyncjob"
	"github.com/theorlangur/gitui/internal/gitx"
)

// FetchJob fetches all remotes, optionally with basic-auth credentials.
// Grounded on the original gitui's AsyncFetchJob (asyncgit/src/fetch_job.rs):
// a single request->response transition, no partial progress.
type FetchJob struct {
	Repo *gitx.Repo
	Cred *gitx.BasicAuthCredential
}

func (j FetchJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	err := j.Repo.FetchAll(j.Cred)
	return NotifyFetch, err
}

// FetchAsExternCmdJob delegates the fetch to a user-configured base
// command instead of the in-process git plumbing, mirroring the original
// AsyncFetchAsExternCmdJob variant.
type FetchAsExternCmdJob struct {
	Repo    *gitx.Repo
	BaseCmd string
}

func (j FetchAsExternCmdJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	err := j.Repo.ExecExternGitCommand(j.BaseCmd, "")
	return NotifyFetch, err
}
