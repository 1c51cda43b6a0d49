package gitjobs

import (
	"github.com/theorlangur/gitui/internal/asyncjob"
	"github.com/theorlangur/gitui/internal/gitx"
)

// PushJob pushes ref to remote.
type PushJob struct {
	Repo        *gitx.Repo
	Remote, Ref string
	Kind        gitx.PushType
	Force       bool
	SetUpstream bool
	Cred        *gitx.BasicAuthCredential
}

func (j PushJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	err := j.Repo.Push(j.Remote, j.Ref, j.Kind, j.Force, j.SetUpstream, j.Cred)
	return NotifyPush, err
}

// PullJob fetches then merges or rebases onto the upstream of HEAD.
type PullJob struct {
	Repo   *gitx.Repo
	Rebase bool
	Cred   *gitx.BasicAuthCredential
}

func (j PullJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	err := j.Repo.PullMerge(j.Rebase, j.Cred)
	return NotifyPull, err
}
