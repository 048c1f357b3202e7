// Package jobsearch queries a third-party job listing source for postings
// matching the analysis output. Enrichment is best effort: callers log and
// substitute an empty list on any failure.
package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// fallbackKeyword is used when the analysis yields no roles or skills.
const fallbackKeyword = "software engineer"

// Query describes one job search.
type Query struct {
	Keyword         string
	Location        string
	ExperienceLevel string
	Limit           int
	Page            int
}

// Posting is one job listing. Field names follow the listing source's
// payload, which the dashboard renders as-is.
type Posting struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	Location    string `json:"location"`
	Date        string `json:"date,omitempty"`
	AgoTime     string `json:"agoTime,omitempty"`
	Salary      string `json:"salary,omitempty"`
	JobURL      string `json:"jobUrl"`
}

// Searcher is the search surface used by the analysis pipeline.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Posting, error)
}

// BuildQuery derives the search keyword from the analysis output.
// Preference order: top recommended role title plus top strong skill, then
// the top three strong skills, then a generic placeholder.
func BuildQuery(roleTitles, strongSkills []string, location, experienceLevel string, limit int) Query {
	keyword := fallbackKeyword
	switch {
	case len(roleTitles) > 0 && len(strongSkills) > 0:
		keyword = strings.TrimSpace(roleTitles[0] + " " + strongSkills[0])
	case len(strongSkills) > 0:
		top := strongSkills
		if len(top) > 3 {
			top = top[:3]
		}
		keyword = strings.Join(top, " ")
	case len(roleTitles) > 0:
		keyword = roleTitles[0]
	}

	return Query{
		Keyword:         keyword,
		Location:        strings.TrimSpace(location),
		ExperienceLevel: strings.TrimSpace(experienceLevel),
		Limit:           limit,
		Page:            0,
	}
}

// Usable reports whether a search is worth attempting: a search needs a
// location or at least one strong skill to target.
func Usable(location string, strongSkills []string) bool {
	return strings.TrimSpace(location) != "" || len(strongSkills) > 0
}

// Client queries a JSON-over-HTTPS job listing endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a job search client for the given endpoint.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("JOB_SEARCH_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Search fetches postings for the query. The list is bounded by q.Limit even
// when the source returns more.
func (c *Client) Search(ctx context.Context, q Query) ([]Posting, error) {
	params := url.Values{}
	params.Set("keyword", q.Keyword)
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.ExperienceLevel != "" {
		params.Set("experience_level", q.ExperienceLevel)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	params.Set("page", strconv.Itoa(q.Page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("job search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("job search: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("job search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var postings []Posting
	if err := json.Unmarshal(body, &postings); err != nil {
		return nil, fmt.Errorf("job search: parse body: %w", err)
	}
	if q.Limit > 0 && len(postings) > q.Limit {
		postings = postings[:q.Limit]
	}
	return postings, nil
}

var _ Searcher = (*Client)(nil)
