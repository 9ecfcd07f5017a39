// Package gh wraps the GitHub CLI as the tracker and project-board
// collaborators. All calls shell out to the gh binary, which owns auth and
// transport; this package only builds arguments and decodes JSON.
package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotInstalled is returned when the gh binary is not on PATH.
	ErrNotInstalled = errors.New("gh CLI not found")

	// ErrNoStatusField is returned when a project has no single-select
	// field named "Status".
	ErrNoStatusField = errors.New("status field not found in project")
)

// runner executes a gh invocation and returns its stdout.
type runner func(ctx context.Context, args ...string) ([]byte, error)

// Client invokes the gh CLI against one repository. An empty repo means the
// current directory's repository context; board queries resolve it lazily.
type Client struct {
	repo string // "owner/name", may be empty
	run  runner
}

// New creates a Client, verifying the gh binary is available.
func New(repo string) (*Client, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, fmt.Errorf("%w (install from https://cli.github.com/)", ErrNotInstalled)
	}
	c := &Client{repo: repo}
	c.run = c.execGH
	return c, nil
}

func (c *Client) execGH(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("gh %s failed: %w: %s",
				args[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("gh %s failed: %w", args[0], err)
	}
	return out, nil
}

// Label is a tracker label as returned by gh --json.
type Label struct {
	Name string `json:"name"`
}

// Account is an assignee as returned by gh --json.
type Account struct {
	Login string `json:"login"`
}

// Milestone is the milestone object on an issue, when present.
type Milestone struct {
	Title string `json:"title"`
}

// RawIssue is the full issue payload from gh issue view.
type RawIssue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Labels    []Label    `json:"labels"`
	Assignees []Account  `json:"assignees"`
	Milestone *Milestone `json:"milestone"`
	State     string     `json:"state"`
	URL       string     `json:"url"`
}

// IssueSummary is the reduced payload from gh issue list.
type IssueSummary struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Labels    []Label   `json:"labels"`
	Assignees []Account `json:"assignees"`
}

// ListOptions filter an issue list query. The result is always sorted
// ascending by creation time (oldest first) by the query itself.
type ListOptions struct {
	State  string // defaults to "open"
	Labels []string
}

// ListIssues queries open issues matching all given labels, oldest first.
func (c *Client) ListIssues(ctx context.Context, opts ListOptions) ([]IssueSummary, error) {
	state := opts.State
	if state == "" {
		state = "open"
	}

	args := []string{"issue", "list", "--state", state}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	for _, l := range opts.Labels {
		args = append(args, "--label", l)
	}
	args = append(args,
		"--json", "number,title,createdAt,labels,assignees",
		"--jq", "sort_by(.createdAt)")

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var issues []IssueSummary
	if err := json.Unmarshal(out, &issues); err != nil {
		return nil, fmt.Errorf("parsing issue list: %w", err)
	}
	return issues, nil
}

// ViewIssue fetches the full payload for one issue.
func (c *Client) ViewIssue(ctx context.Context, number int) (*RawIssue, error) {
	args := []string{"issue", "view", strconv.Itoa(number),
		"--json", "number,title,body,labels,assignees,milestone,state,url"}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var issue RawIssue
	if err := json.Unmarshal(out, &issue); err != nil {
		return nil, fmt.Errorf("parsing issue #%d: %w", number, err)
	}
	return &issue, nil
}

// IssueLabels fetches just the label names for one issue.
func (c *Client) IssueLabels(ctx context.Context, number int) ([]string, error) {
	args := []string{"issue", "view", strconv.Itoa(number), "--json", "labels"}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Labels []Label `json:"labels"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("parsing labels for issue #%d: %w", number, err)
	}

	names := make([]string, 0, len(payload.Labels))
	for _, l := range payload.Labels {
		names = append(names, l.Name)
	}
	return names, nil
}

// CreateIssue creates an issue and returns its URL.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labelList []string) (string, error) {
	args := []string{"issue", "create", "--title", title, "--body", body}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	for _, l := range labelList {
		args = append(args, "-l", l)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// resolveRepo returns the owner and name of the target repository, asking
// gh for the current directory's repo when none was configured.
func (c *Client) resolveRepo(ctx context.Context) (owner, name string, err error) {
	if c.repo == "" {
		out, err := c.run(ctx, "repo", "view", "--json", "nameWithOwner")
		if err != nil {
			return "", "", err
		}
		var payload struct {
			NameWithOwner string `json:"nameWithOwner"`
		}
		if err := json.Unmarshal(out, &payload); err != nil {
			return "", "", fmt.Errorf("parsing repo view: %w", err)
		}
		c.repo = payload.NameWithOwner
	}

	owner, name, ok := strings.Cut(c.repo, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid repository %q (want owner/name)", c.repo)
	}
	return owner, name, nil
}
