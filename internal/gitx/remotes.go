package gitx

import (
	"fmt"

	"github.com/theorlangur/gitui/internal/buildinfo"
)

// userAgentEnv sets GIT_HTTP_USER_AGENT so a remote's access log can
// distinguish gitui's own fetch/push traffic from a plain git CLI.
func userAgentEnv() []string {
	return []string{"GIT_HTTP_USER_AGENT=gitui/" + buildinfo.Version()}
}

// BasicAuthCredential carries optional HTTP basic-auth for fetch/push.
type BasicAuthCredential struct {
	Username string
	Password string
}

func (c *BasicAuthCredential) env() []string {
	if c == nil {
		return nil
	}
	// The credential is exported as GITUI_BASIC_AUTH_USER/_PASS, keeping it
	// out of argv. No GIT_ASKPASS or credential helper is installed, and git
	// itself does not read these variables.
	return []string{
		"GITUI_BASIC_AUTH_USER=" + c.Username,
		"GITUI_BASIC_AUTH_PASS=" + c.Password,
	}
}

// FetchAll runs `git fetch --all`, optionally with basic-auth credentials.
func (r *Repo) FetchAll(cred *BasicAuthCredential) error {
	_, err := r.runWithEnv(append(userAgentEnv(), cred.env()...), "fetch", "--all", "--prune")
	if err != nil {
		return fmt.Errorf("gitx: fetch: %w", err)
	}
	return nil
}

// PushType selects what a push operation pushes.
type PushType int

const (
	PushBranch PushType = iota
	PushTag
)

// Push pushes branch (or tag) to remote, optionally force and/or with
// upstream tracking set.
func (r *Repo) Push(remote, ref string, kind PushType, force, setUpstream bool, cred *BasicAuthCredential) error {
	args := []string{"push"}
	if force {
		args = append(args, "--force-with-lease")
	}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, ref)
	if _, err := r.runWithEnv(append(userAgentEnv(), cred.env()...), args...); err != nil {
		return fmt.Errorf("gitx: push: %w", err)
	}
	return nil
}

// PushTags pushes all local tags to remote.
func (r *Repo) PushTags(remote string, cred *BasicAuthCredential) error {
	if _, err := r.runWithEnv(append(userAgentEnv(), cred.env()...), "push", remote, "--tags"); err != nil {
		return fmt.Errorf("gitx: push tags: %w", err)
	}
	return nil
}

// PullMerge fetches then merges (or rebases) the upstream of the current
// branch.
func (r *Repo) PullMerge(rebase bool, cred *BasicAuthCredential) error {
	if err := r.FetchAll(cred); err != nil {
		return err
	}
	args := []string{"merge", "@{u}"}
	if rebase {
		args = []string{"rebase", "@{u}"}
	}
	if _, err := r.run(args...); err != nil {
		return fmt.Errorf("gitx: pull: %w", err)
	}
	return nil
}

func (r *Repo) runWithEnv(extraEnv []string, args ...string) (string, error) {
	if len(extraEnv) == 0 {
		return r.run(args...)
	}
	return runGitWithEnv(r.Path, extraEnv, args...)
}
