package gitjobs

import (
	"github.com/theorlangur/gitui/internal/asyncjob"
	"github.com/theorlangur/gitui/internal/commitid"
	"github.com/theorlangur/gitui/internal/gitmodel"
	"github.com/theorlangur/gitui/internal/gitx"
)

// BranchesJob refreshes the branch list.
type BranchesJob struct {
	Repo   *gitx.Repo
	Result []gitmodel.Branch
}

func (j *BranchesJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	branches, err := j.Repo.Branches()
	j.Result = branches
	return NotifyBranches, err
}

// TagsJob refreshes the commit->tags overlay.
type TagsJob struct {
	Repo   *gitx.Repo
	Result gitmodel.TagSet
}

func (j *TagsJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	tags, err := j.Repo.Tags()
	j.Result = tags
	return NotifyTags, err
}

// BlameJob computes the blame table for one file at one commit.
type BlameJob struct {
	Repo     *gitx.Repo
	FilePath string
	Commit   commitid.ID
	Result   gitmodel.Blame
}

func (j *BlameJob) Run(p asyncjob.RunParams[Notification]) (Notification, error) {
	b, err := j.Repo.Blame(j.FilePath, j.Commit)
	j.Result = b
	return NotifyBlame, err
}
