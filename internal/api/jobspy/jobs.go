package jobspy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// DefaultSites are the boards every query is run against.
var DefaultSites = []string{"indeed", "linkedin", "glassdoor", "zip_recruiter"}

type SearchParams struct {
	Sites         []string
	SearchTerm    string
	Location      string
	ResultsWanted int
	HoursOld      int
	IsRemote      bool
	CountryIndeed string
}

func (c *Client) SearchJobs(ctx context.Context, params SearchParams) ([]Job, error) {
	queryParams := url.Values{}

	sites := params.Sites
	if len(sites) == 0 {
		sites = DefaultSites
	}
	for _, s := range sites {
		queryParams.Add("site_name", s)
	}

	queryParams.Set("search_term", params.SearchTerm)

	if params.Location != "" {
		queryParams.Set("location", params.Location)
	}

	if params.ResultsWanted > 0 {
		queryParams.Set("results_wanted", strconv.Itoa(params.ResultsWanted))
	}

	if params.HoursOld > 0 {
		queryParams.Set("hours_old", strconv.Itoa(params.HoursOld))
	}

	if params.IsRemote {
		queryParams.Set("is_remote", "true")
	}

	if params.CountryIndeed != "" {
		queryParams.Set("country_indeed", params.CountryIndeed)
	}

	data, err := c.get(ctx, "/api/v1/search_jobs", queryParams)
	if err != nil {
		c.logger.Error("failed to search jobs",
			zap.String("search_term", params.SearchTerm),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search jobs: %w", err)
	}

	var response SearchResponse
	if err := c.parseResponse(data, &response); err != nil {
		c.logger.Error("failed to parse search response", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("jobs found",
		zap.Int("count", response.Count),
		zap.Int("returned", len(response.Jobs)),
		zap.String("search_term", params.SearchTerm),
	)

	return response.Jobs, nil
}
