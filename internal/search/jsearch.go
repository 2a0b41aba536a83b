package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"go.uber.org/zap"
)

const (
	JSearchName = "jsearch"

	jsearchBaseURL = "https://jsearch.p.rapidapi.com/search"
	jsearchHost    = "jsearch.p.rapidapi.com"

	// 50 calls per minute.
	jsearchMaxCalls = 50
	jsearchWindow   = time.Minute
)

// JSearch searches jobs through the JSearch API on RapidAPI.
type JSearch struct {
	client
	apiKey  string
	baseURL string
}

// NewJSearch creates the JSearch adapter. An empty RapidAPI key is allowed;
// the adapter then answers every search with an empty list.
func NewJSearch(apiKey string, deps *ProviderDeps) *JSearch {
	return &JSearch{
		client:  newClient(JSearchName, deps, jsearchMaxCalls, jsearchWindow),
		apiKey:  apiKey,
		baseURL: jsearchBaseURL,
	}
}

func (j *JSearch) Name() string { return JSearchName }

type jsearchResponse struct {
	Data []json.RawMessage `json:"data"`
}

type jsearchResult struct {
	Title       string   `json:"job_title"`
	Employer    string   `json:"employer_name"`
	City        string   `json:"job_city"`
	Country     string   `json:"job_country"`
	Description string   `json:"job_description"`
	SalaryMin   *float64 `json:"job_min_salary"`
	SalaryMax   *float64 `json:"job_max_salary"`
	ApplyLink   string   `json:"job_apply_link"`
	PostedAt    string   `json:"job_posted_at_datetime_utc"`
	Employment  string   `json:"job_employment_type"`
}

// Search implements Provider.
func (j *JSearch) Search(ctx context.Context, p Params) ([]*jobs.Job, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if j.apiKey == "" {
		j.logger.Warn("rapidapi key not configured, skipping search")
		return []*jobs.Job{}, nil
	}

	return j.guardedSearch(ctx, p, func(ctx context.Context) ([]*jobs.Job, error) {
		return j.fetch(ctx, p)
	})
}

func (j *JSearch) fetch(ctx context.Context, p Params) ([]*jobs.Job, error) {
	q := url.Values{}
	q.Set("query", p.Query)
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("num_pages", "1")
	q.Set("results_per_page", strconv.Itoa(capLimit(p.Limit)))
	if p.Location != "" {
		q.Set("location", p.Location)
	}

	headers := map[string]string{
		"X-RapidAPI-Key":  j.apiKey,
		"X-RapidAPI-Host": jsearchHost,
	}

	var response jsearchResponse
	if err := j.getJSON(ctx, j.baseURL, q, headers, &response); err != nil {
		var httpErr *httpError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusForbidden:
				return nil, errors.New("access denied, verify API credentials and subscription")
			case http.StatusTooManyRequests:
				return nil, errors.New("rate limit exceeded, try again later")
			}
		}
		return nil, err
	}

	records := make([]*jobs.Job, 0, len(response.Data))
	for _, raw := range response.Data {
		var item jsearchResult
		if err := json.Unmarshal(raw, &item); err != nil {
			j.logger.Warn("skipping unparsable job item", zap.Error(err))
			continue
		}

		location := item.City
		if location == "" {
			location = item.Country
		}

		job := jobs.New(item.Title, item.Employer, location, item.Description, JSearchName)
		job.SalaryMin = item.SalaryMin
		job.SalaryMax = item.SalaryMax
		job.ApplyURL = item.ApplyLink
		job.DatePosted = item.PostedAt
		job.JobType = item.Employment

		records = append(records, job)
	}

	return records, nil
}
