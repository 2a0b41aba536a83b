package search

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"go.uber.org/zap"
)

const (
	RemotiveName = "remotive"

	remotiveBaseURL = "https://remotive.com/api/remote-jobs"

	// 60 calls per minute.
	remotiveMaxCalls = 60
	remotiveWindow   = time.Minute
)

// Remotive searches remote-only jobs through the public Remotive API. The API
// needs no credentials and takes no location; every posting it returns is
// remote by definition.
type Remotive struct {
	client
	category string
	baseURL  string
}

// NewRemotive creates the Remotive adapter. Category is optional and narrows
// the search to one Remotive job category.
func NewRemotive(category string, deps *ProviderDeps) *Remotive {
	return &Remotive{
		client:   newClient(RemotiveName, deps, remotiveMaxCalls, remotiveWindow),
		category: category,
		baseURL:  remotiveBaseURL,
	}
}

func (r *Remotive) Name() string { return RemotiveName }

type remotiveResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

type remotiveResult struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"candidate_required_location"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	PublicationDate string `json:"publication_date"`
}

// Search implements Provider. The location parameter is validated but not
// forwarded; Remotive has no notion of one.
func (r *Remotive) Search(ctx context.Context, p Params) ([]*jobs.Job, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Location is provider-irrelevant; drop it so cache keys do not fragment.
	p.Location = ""

	return r.guardedSearch(ctx, p, func(ctx context.Context) ([]*jobs.Job, error) {
		return r.fetch(ctx, p)
	})
}

func (r *Remotive) fetch(ctx context.Context, p Params) ([]*jobs.Job, error) {
	q := url.Values{}
	q.Set("search", p.Query)
	if r.category != "" {
		q.Set("category", r.category)
	}

	var response remotiveResponse
	if err := r.getJSON(ctx, r.baseURL, q, nil, &response); err != nil {
		return nil, err
	}

	records := make([]*jobs.Job, 0, len(response.Jobs))
	for _, raw := range response.Jobs {
		var item remotiveResult
		if err := json.Unmarshal(raw, &item); err != nil {
			r.logger.Warn("skipping unparsable job item", zap.Error(err))
			continue
		}

		location := item.Location
		if location == "" {
			location = "Remote"
		}

		job := jobs.New(item.Title, item.CompanyName, location, item.Description, RemotiveName)
		job.ApplyURL = item.URL
		job.DatePosted = item.PublicationDate
		job.JobType = "Remote"

		records = append(records, job)
	}

	return records, nil
}
