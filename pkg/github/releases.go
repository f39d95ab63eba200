// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package github wraps the small part of the GitHub REST API that is needed to publish a release,
// so that callers see plain structs and a single error type.
//
// https://docs.github.com/en/rest/releases/releases#create-a-release
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	gogithub "github.com/google/go-github/v56/github"
)

const DefaultBaseURL = "https://api.github.com/"

type Client struct {
	// BaseURL is the REST API root; for GitHub Enterprise Server, either "https://HOST/" or
	// "https://HOST/api/v3/".
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	// Token is sent as a bearer credential.
	Token string
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = "github.com/datawire/releasegate"
	}
}

func (c Client) api() (*gogithub.Client, error) {
	c.fillDefaults()
	api := gogithub.NewClient(c.HTTPClient)
	api.UserAgent = c.UserAgent
	if c.Token != "" {
		api = api.WithAuthToken(c.Token)
	}
	return api.WithEnterpriseURLs(c.BaseURL, c.BaseURL)
}

type HTTPError struct {
	Status     string
	StatusCode int
	// Message is the "message" field of GitHub's error document, if there was one.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %s", e.Status)
}

func newHTTPError(resp *http.Response, err error) *HTTPError {
	httpErr := &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	var (
		errResp   *gogithub.ErrorResponse
		rateLimit *gogithub.RateLimitError
	)
	switch {
	case errors.As(err, &errResp):
		httpErr.Message = errResp.Message
	case errors.As(err, &rateLimit):
		httpErr.Message = rateLimit.Message
	}
	return httpErr
}

var reRepository = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidateRepository checks that repo is of the form "OWNER/NAME".
func ValidateRepository(repo string) error {
	if !reRepository.MatchString(repo) || strings.Contains(repo, "..") {
		return fmt.Errorf("invalid repository %q: must be of the form OWNER/NAME", repo)
	}
	return nil
}

type ReleaseRequest struct {
	TagName         string
	TargetCommitish string // optional
	Name            string
	Body            string
	Draft           bool
	Prerelease      bool
}

type Release struct {
	ID      int64
	TagName string
	Name    string
	HTMLURL string
}

// CreateRelease creates a release (and with it, the tag named by req.TagName, if it does not
// already exist) in the repository "OWNER/NAME".  It makes exactly one request; failures are not
// retried.  Any response other than "201 Created" is an *HTTPError.
func (c Client) CreateRelease(ctx context.Context, repo string, req ReleaseRequest) (*Release, error) {
	if err := ValidateRepository(repo); err != nil {
		return nil, err
	}
	if req.TagName == "" {
		return nil, fmt.Errorf("create release in %s: empty tag name", repo)
	}
	api, err := c.api()
	if err != nil {
		return nil, fmt.Errorf("create release in %s: %w", repo, err)
	}

	body := &gogithub.RepositoryRelease{
		TagName:    gogithub.String(req.TagName),
		Name:       gogithub.String(req.Name),
		Body:       gogithub.String(req.Body),
		Draft:      gogithub.Bool(req.Draft),
		Prerelease: gogithub.Bool(req.Prerelease),
	}
	if req.TargetCommitish != "" {
		body.TargetCommitish = gogithub.String(req.TargetCommitish)
	}

	owner, name, _ := strings.Cut(repo, "/")
	rel, resp, err := api.Repositories.CreateRelease(ctx, owner, name, body)
	if resp != nil && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create release in %s: %w", repo, newHTTPError(resp.Response, err))
	}
	if err != nil {
		return nil, fmt.Errorf("create release in %s: %w", repo, err)
	}
	return &Release{
		ID:      rel.GetID(),
		TagName: rel.GetTagName(),
		Name:    rel.GetName(),
		HTMLURL: rel.GetHTMLURL(),
	}, nil
}
