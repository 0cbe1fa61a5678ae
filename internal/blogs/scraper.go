// Package blogs scrapes the public Heart It Out blog and normalizes listing
// cards and article pages. Pages are fetched fresh on every call; nothing is
// cached or persisted.
package blogs

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mindhaven/internal/models"
	"mindhaven/internal/observability"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

const (
	browserUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	wordsPerMin     = 200
	defaultAuthor   = "Heart It Out Team"
	defaultCategory = "Mental Health"
)

// Card is one entry on the blog listing page. The site's `.card-text` element
// holds the read-time label, not a summary.
type Card struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	ReadTime    string `json:"readTime"`
	PublishedAt string `json:"publishedAt"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url"`
}

// Article is a fully scraped blog post.
type Article struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	HeroURL     string   `json:"hero_url"`
	Content     string   `json:"content"`
	ReadTime    string   `json:"read_time"`
	Tags        []string `json:"tags"`
	OriginalURL string   `json:"originalUrl"`
}

// Scraper fetches and parses blog pages from a single base site.
type Scraper struct {
	baseURL   string
	http      *http.Client
	sanitizer *bluemonday.Policy
	logger    *observability.UpstreamLogger
}

// NewScraper builds a scraper rooted at baseURL.
func NewScraper(baseURL string) *Scraper {
	return &Scraper{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		sanitizer: bluemonday.UGCPolicy(),
		logger:    observability.NewUpstreamLogger("blog"),
	}
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.http.Do(req)
	if err != nil {
		observability.UpstreamFetchErrors.WithLabelValues("blog").Inc()
		s.logger.LogError(ctx, "fetch", err)
		return nil, models.NewUpstreamFetchError("blog", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observability.UpstreamFetchErrors.WithLabelValues("blog").Inc()
		err := fmt.Errorf("GET %s: status %d", pageURL, resp.StatusCode)
		s.logger.LogError(ctx, "fetch", err)
		return nil, models.NewUpstreamFetchError("blog", err)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, models.NewParseError(fmt.Sprintf("parse %s", pageURL), err)
	}
	return doc, nil
}

// absolutize resolves href against the scraper's base when it is relative.
func (s *Scraper) absolutize(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

// slugFromURL extracts the slug path segment after /blogs/ with any trailing
// slash trimmed. Returns "" when the URL does not contain a blog path.
func slugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := u.Path
	idx := strings.Index(path, "/blogs/")
	if idx < 0 {
		return ""
	}
	slug := strings.TrimSuffix(path[idx+len("/blogs/"):], "/")
	return slug
}

// FetchListing scrapes the blog index and returns one card per article.
// Cards missing a title or detail link are dropped. A page that parses but
// contains no cards yields an empty slice.
func (s *Scraper) FetchListing(ctx context.Context) ([]Card, error) {
	defer observability.TrackScrape("listing")()

	doc, err := s.fetch(ctx, s.baseURL+"/blogs/")
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0)
	doc.Find(".card").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".card-title").First().Text())
		href, _ := sel.Find("a.btn").First().Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return
		}

		detailURL := s.absolutize(href)
		slug := slugFromURL(detailURL)
		if slug == "" {
			// Positional fallback keeps the card addressable even when the
			// link shape changes upstream.
			slug = fmt.Sprintf("blog-%d", len(cards))
		}

		img, _ := sel.Find(".card-img img").First().Attr("src")

		cards = append(cards, Card{
			Slug:        slug,
			Title:       title,
			Category:    strings.TrimSpace(sel.Find(".card-category p").First().Text()),
			ReadTime:    strings.TrimSpace(sel.Find(".card-text").First().Text()),
			PublishedAt: time.Now().Format("January 2, 2006"),
			ImageURL:    s.absolutize(strings.TrimSpace(img)),
			URL:         detailURL,
		})
	})

	return cards, nil
}

// FetchArticle scrapes a single article page by slug.
func (s *Scraper) FetchArticle(ctx context.Context, slug string) (*Article, error) {
	defer observability.TrackScrape("article")()

	slug = strings.Trim(slug, "/")
	articleURL := fmt.Sprintf("%s/blogs/%s/", s.baseURL, slug)
	doc, err := s.fetch(ctx, articleURL)
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("h1.blog-title").First().Text())
	if title == "" {
		return nil, models.NewParseError(fmt.Sprintf("article %q has no title", slug), nil)
	}

	contentSel := doc.Find(".blog-text-sec").First()
	rawHTML, err := contentSel.Html()
	if err != nil {
		return nil, models.NewParseError(fmt.Sprintf("article %q content", slug), err)
	}
	content := s.sanitizer.Sanitize(rawHTML)

	author := strings.TrimSpace(doc.Find(".blog-author").First().Text())
	if author == "" {
		author = defaultAuthor
	}

	date := time.Now().Format("January 2, 2006")
	if raw := strings.TrimSpace(doc.Find(".blog-date").First().Text()); raw != "" {
		if parsed, err := dateparse.ParseAny(raw); err == nil {
			date = parsed.Format("January 2, 2006")
		}
	}

	category := strings.TrimSpace(doc.Find(".card-category p").First().Text())
	if category == "" {
		category = defaultCategory
	}

	hero, _ := doc.Find("img.blog-hero-img").First().Attr("src")

	return &Article{
		Slug:        slug,
		Title:       title,
		Author:      author,
		Date:        date,
		Category:    category,
		HeroURL:     s.absolutize(strings.TrimSpace(hero)),
		Content:     content,
		ReadTime:    readTime(contentSel.Text()),
		Tags:        []string{},
		OriginalURL: articleURL,
	}, nil
}

// readTime estimates reading time at 200 words per minute, rounded up,
// minimum one minute.
func readTime(text string) string {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMin))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
