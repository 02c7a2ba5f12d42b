package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

// MaxResults is the hard cap on a single search; there is no pagination.
const MaxResults = 10

// Field is the search dimension chosen by the user.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldISBN   Field = "isbn"
)

// Valid reports whether f is one of the supported search fields.
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldAuthor, FieldISBN:
		return true
	}
	return false
}

// Query describes one outbound search.
type Query struct {
	Field Field
	Text  string
	Limit int
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(baseURL, userAgent string, rps int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   baseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// docFields is what search.json is asked to return; everything else in the
// upstream schema is dead weight for us.
const docFields = "title,author_name,isbn,cover_i,ebook_access,first_publish_year,ratings_average"

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Doc is one raw volume entry from search.json. Fields are routinely absent
// in wild data; zero values are expected and handled downstream.
type Doc struct {
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	ISBN             []string `json:"isbn"`
	CoverID          int64    `json:"cover_i"`
	EbookAccess      string   `json:"ebook_access"`
	FirstPublishYear int      `json:"first_publish_year"`
	RatingsAverage   Rating   `json:"ratings_average"`
}

// Rating tolerates the number, string, and null forms ratings_average takes
// in wild data. Anything unparseable decodes as 0 rather than failing the
// sibling fields of the doc.
type Rating float64

func (r *Rating) UnmarshalJSON(data []byte) error {
	*r = Rating(ParseRating(string(data)))
	return nil
}

// ParseRating coerces a raw rating token to a number. Invalid or missing
// input maps to 0, never to an error.
func ParseRating(s string) float64 {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Search runs one field-filtered query against search.json and returns the
// raw docs in API relevance order. A transport failure or non-2xx status is
// returned as a single error; there are no retries.
func (c *Client) Search(ctx context.Context, q Query) ([]Doc, error) {
	limit := q.Limit
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	params := url.Values{}
	switch q.Field {
	case FieldAuthor:
		params.Set("author", q.Text)
	case FieldISBN:
		params.Set("q", "isbn:"+q.Text)
	default:
		params.Set("title", q.Text)
	}
	params.Set("fields", docFields)
	params.Set("limit", strconv.Itoa(limit))

	u := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary search: unexpected status code: %d", resp.StatusCode)
	}

	var res SearchResponse
	if err := jsoniter.ConfigFastest.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("openlibrary search: decode response: %w", err)
	}
	if len(res.Docs) > limit {
		res.Docs = res.Docs[:limit]
	}
	return res.Docs, nil
}
