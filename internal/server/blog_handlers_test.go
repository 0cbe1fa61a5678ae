package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="card">
  <div class="card-img"><img src="/media/anxiety.jpg"></div>
  <div class="card-category"><p>Anxiety</p></div>
  <h5 class="card-title">Managing Anxious Thoughts</h5>
  <p class="card-text">4 min read</p>
  <a class="btn" href="/blogs/managing-anxious-thoughts/">Read More</a>
</div>
<div class="card">
  <h5 class="card-title">No Link Card</h5>
</div>
</body></html>`

const articleHTML = `<html><body>
<h1 class="blog-title">Managing Anxious Thoughts</h1>
<p class="blog-author">Dr. Rhea Varma</p>
<p class="blog-date">March 5, 2024</p>
<img class="blog-hero-img" src="/media/anxiety-hero.jpg">
<div class="blog-text-sec">
  <p>Anxiety often builds in quiet moments.</p>
  <script>alert("tracked")</script>
</div>
</body></html>`

func setupBlogTest(t *testing.T, handler http.HandlerFunc) *fiber.App {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.BlogBaseURL = srv.URL

	app, _, _ := setupServerTest(t, cfg)
	return app
}

func TestGetBlogs(t *testing.T) {
	app := setupBlogTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blogs/", r.URL.Path)
		w.Write([]byte(listingHTML))
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/blogs", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The card without a detail link is dropped.
	assert.EqualValues(t, 1, body["count"])
	blogs, _ := body["blogs"].([]any)
	require.Len(t, blogs, 1)

	card, _ := blogs[0].(map[string]any)
	assert.Equal(t, "managing-anxious-thoughts", card["slug"])
	assert.Equal(t, "Managing Anxious Thoughts", card["title"])
	assert.Equal(t, "Anxiety", card["category"])
	assert.Equal(t, "4 min read", card["readTime"])
	assert.NotEmpty(t, card["publishedAt"])
}

func TestGetBlogsUpstreamDown(t *testing.T) {
	app := setupBlogTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/blogs", nil, "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_FETCH", body["code"])
}

func TestGetBlogArticle(t *testing.T) {
	app := setupBlogTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/blogs/managing-anxious-thoughts/", r.URL.Path)
		w.Write([]byte(articleHTML))
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/blogs/managing-anxious-thoughts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	article, _ := body["article"].(map[string]any)
	require.NotNil(t, article)
	assert.Equal(t, "managing-anxious-thoughts", article["slug"])
	assert.Equal(t, "Managing Anxious Thoughts", article["title"])
	assert.Equal(t, "Dr. Rhea Varma", article["author"])
	assert.Equal(t, "March 5, 2024", article["date"])
	assert.Equal(t, "1 min read", article["read_time"])
	assert.NotEmpty(t, article["originalUrl"])

	content, _ := article["content"].(string)
	assert.Contains(t, content, "quiet moments")
	assert.NotContains(t, content, "script")
}

func TestGetBlogArticleNotFound(t *testing.T) {
	app := setupBlogTest(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/blogs/gone", nil, "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_FETCH", body["code"])
}
