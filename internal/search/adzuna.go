package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Omkolamkar/AiResumeAnalyzer/internal/jobs"
	"go.uber.org/zap"
)

const (
	AdzunaName = "adzuna"

	adzunaBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	adzunaDefaultCountry = "in"

	// 100 calls per hour.
	adzunaMaxCalls = 100
	adzunaWindow   = time.Hour
)

// Adzuna searches jobs through the Adzuna REST API.
type Adzuna struct {
	client
	appID   string
	appKey  string
	country string
	baseURL string
}

// NewAdzuna creates the Adzuna adapter. Empty credentials are allowed; the
// adapter then answers every search with an empty list.
func NewAdzuna(appID, appKey, country string, deps *ProviderDeps) *Adzuna {
	if country == "" {
		country = adzunaDefaultCountry
	}
	return &Adzuna{
		client:  newClient(AdzunaName, deps, adzunaMaxCalls, adzunaWindow),
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: adzunaBaseURL,
	}
}

func (a *Adzuna) Name() string { return AdzunaName }

type adzunaResponse struct {
	Results []json.RawMessage `json:"results"`
}

type adzunaResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	RedirectURL string   `json:"redirect_url"`
	Created     string   `json:"created"`
	Contract    string   `json:"contract_type"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// Search implements Provider.
func (a *Adzuna) Search(ctx context.Context, p Params) ([]*jobs.Job, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if a.appID == "" || a.appKey == "" {
		a.logger.Warn("credentials not configured, skipping search")
		return []*jobs.Job{}, nil
	}

	return a.guardedSearch(ctx, p, func(ctx context.Context) ([]*jobs.Job, error) {
		return a.fetch(ctx, p)
	})
}

func (a *Adzuna) fetch(ctx context.Context, p Params) ([]*jobs.Job, error) {
	searchURL := fmt.Sprintf("%s/%s/search/%d", a.baseURL, a.country, p.Page)

	q := url.Values{}
	q.Set("app_id", a.appID)
	q.Set("app_key", a.appKey)
	q.Set("what", p.Query)
	q.Set("where", p.Location)
	q.Set("results_per_page", strconv.Itoa(capLimit(p.Limit)))

	var response adzunaResponse
	if err := a.getJSON(ctx, searchURL, q, nil, &response); err != nil {
		return nil, err
	}

	records := make([]*jobs.Job, 0, len(response.Results))
	for _, raw := range response.Results {
		var item adzunaResult
		if err := json.Unmarshal(raw, &item); err != nil {
			a.logger.Warn("skipping unparsable job item", zap.Error(err))
			continue
		}

		job := jobs.New(item.Title, item.Company.DisplayName, item.Location.DisplayName, item.Description, AdzunaName)
		job.SalaryMin = item.SalaryMin
		job.SalaryMax = item.SalaryMax
		job.ApplyURL = item.RedirectURL
		job.DatePosted = item.Created
		job.JobType = item.Contract

		records = append(records, job)
	}

	return records, nil
}
