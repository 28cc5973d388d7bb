package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/giftlists/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("€")
	require.NoError(t, err)
	return r
}

func render(t *testing.T, lists []models.GiftList, state ViewState) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, lists, state))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func sampleLists() []models.GiftList {
	return []models.GiftList{
		{
			Owner: "Alice",
			Title: "Alice's list",
			URL:   "https://choisiroffrir.com/1",
			Presents: []models.Present{
				{Title: "Book", Price: models.NewPrice("20"), Preference: 3, DetailsLink: "https://choisiroffrir.com/d/1"},
				{Title: "Trip", Price: models.NewPrice("Sans limite"), LinkSuggestion: models.NoSuggestion},
			},
		},
		{
			Owner: "Bob",
			Title: "T",
			Presents: []models.Present{
				{Title: "Kite", Preference: 5, Price: models.NewPrice("no limit"), LinkSuggestion: "https://shop.example/kite", ImageURL: "https://img.example/kite.png"},
				{Title: "Ball", Preference: 2, Price: models.NewPrice("no price")},
			},
		},
		{Owner: "Chloé", Title: "Empty"},
	}
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestRender_TabsInOrder(t *testing.T) {
	doc := render(t, sampleLists(), ViewState{})

	assert.Equal(t, []string{"Alice", "Bob", "Chloé"}, texts(doc.Find("button.tab-btn")))
	assert.Equal(t, 3, doc.Find(".tab-content").Length())
}

func TestRender_InitialStateSelectsFirstTab(t *testing.T) {
	doc := render(t, sampleLists(), ViewState{})

	active := doc.Find("button.tab-btn.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Alice", active.Text())

	visible := doc.Find(".tab-content:not([hidden])")
	require.Equal(t, 1, visible.Length())
	id, _ := visible.Attr("id")
	assert.Equal(t, "panel-0", id)
}

func TestRender_SelectingEachTab(t *testing.T) {
	lists := sampleLists()
	for k := range lists {
		doc := render(t, lists, ViewState{SelectedIndex: k})

		doc.Find("button.tab-btn").Each(func(i int, s *goquery.Selection) {
			assert.Equal(t, i == k, s.HasClass("active"), "tab %d with %d selected", i, k)
		})
		doc.Find(".tab-content").Each(func(i int, s *goquery.Selection) {
			_, hidden := s.Attr("hidden")
			assert.Equal(t, i != k, hidden, "panel %d with %d selected", i, k)
		})
	}
}

func TestRender_OutOfRangeSelectionFallsBackToFirst(t *testing.T) {
	for _, idx := range []int{-1, 3, 99} {
		doc := render(t, sampleLists(), ViewState{SelectedIndex: idx})
		assert.Equal(t, "Alice", doc.Find("button.tab-btn.active").Text())
	}
}

func TestRender_PresentCards(t *testing.T) {
	doc := render(t, sampleLists(), ViewState{})

	alice := doc.Find("#panel-0")
	assert.Equal(t, []string{"Book", "Trip"}, texts(alice.Find(".present-title")))
	assert.Equal(t, []string{"20€", "no price"}, texts(alice.Find(".present-price")))
	assert.Equal(t, []string{"Preference: 3", "Preference: 0"}, texts(alice.Find(".present-preference")))
	assert.Equal(t, 0, alice.Find(".present-link").Length(), "sentinel suggestion must not render a link")
	assert.Equal(t, 0, alice.Find(".present-img").Length())

	links := alice.Find("a.details-link")
	require.Equal(t, 2, links.Length())
	href, ok := links.First().Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://choisiroffrir.com/d/1", href)
	_, ok = links.Last().Attr("href")
	assert.False(t, ok, "missing details link renders without a target")

	title := alice.Find("h2 a.list-link")
	assert.Equal(t, "Alice's list", title.Text())
	target, _ := title.Attr("target")
	assert.Equal(t, "_blank", target)

	bob := doc.Find("#panel-1")
	assert.Equal(t, []string{"no price", "no price"}, texts(bob.Find(".present-price")))
	suggestion := bob.Find(".present-link")
	require.Equal(t, 1, suggestion.Length())
	href, _ = suggestion.Attr("href")
	assert.Equal(t, "https://shop.example/kite", href)

	img := bob.Find(".present-img")
	require.Equal(t, 1, img.Length())
	onerror, _ := img.Attr("onerror")
	assert.Contains(t, onerror, "display='none'")
}

func TestRender_ZeroLists(t *testing.T) {
	doc := render(t, nil, ViewState{})

	assert.Equal(t, 1, doc.Find(".tabs").Length())
	assert.Equal(t, 0, doc.Find("button.tab-btn").Length())
	assert.Equal(t, 0, doc.Find(".tab-content").Length())
}

func TestRender_WelcomeMessageIsSanitized(t *testing.T) {
	lists := []models.GiftList{{
		Owner:          "Mallory",
		WelcomeMessage: `<b>Hello</b><script>alert(1)</script><img src=x onerror="alert(2)">`,
		URL:            "javascript:alert(3)",
		Title:          "<i>t</i>",
	}}
	doc := render(t, lists, ViewState{})

	welcome := doc.Find(".welcome")
	assert.Equal(t, 1, welcome.Find("b").Length())
	assert.Equal(t, 0, doc.Find("script").Length())
	_, hasHandler := welcome.Find("img").Attr("onerror")
	assert.False(t, hasHandler)

	href, _ := doc.Find("a.list-link").Attr("href")
	assert.NotContains(t, href, "javascript:")
	assert.Equal(t, "<i>t</i>", doc.Find("a.list-link").Text())
}

func TestPage_States(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		name  string
		snap  Snapshot
		check func(t *testing.T, doc *goquery.Document)
	}{
		{
			name: "loading",
			snap: Snapshot{State: StateLoading},
			check: func(t *testing.T, doc *goquery.Document) {
				assert.Equal(t, 1, doc.Find("#lists .spinner").Length())
				refresh, _ := doc.Find(`meta[http-equiv="refresh"]`).Attr("content")
				assert.Contains(t, refresh, "url=/?tab=1")
				assert.Equal(t, 0, doc.Find(".tabs").Length())
			},
		},
		{
			name: "failed",
			snap: Snapshot{State: StateFailed},
			check: func(t *testing.T, doc *goquery.Document) {
				assert.Equal(t, ErrorMessage, doc.Find("#lists .error").Text())
				assert.Equal(t, 1, doc.Find("#lists").Children().Length())
				assert.Equal(t, 0, doc.Find(".tabs").Length())
				assert.Equal(t, 0, doc.Find(".spinner").Length())
				assert.Equal(t, 0, doc.Find(`meta[http-equiv="refresh"]`).Length())
			},
		},
		{
			name: "ready",
			snap: Snapshot{State: StateReady, Lists: sampleLists()},
			check: func(t *testing.T, doc *goquery.Document) {
				assert.Equal(t, 3, doc.Find("#lists button.tab-btn").Length())
				assert.Equal(t, "Bob", doc.Find("button.tab-btn.active").Text())
				assert.Equal(t, 0, doc.Find(".error").Length())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Page(&buf, tt.snap, ViewState{SelectedIndex: 1}))
			doc, err := goquery.NewDocumentFromReader(&buf)
			require.NoError(t, err)

			state, _ := doc.Find("#lists").Attr("data-state")
			assert.Equal(t, tt.snap.State.String(), state)
			tt.check(t, doc)
		})
	}
}

func TestStaticHandler_ServesStylesheet(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".tab-btn.active")
}

func TestClampSelection(t *testing.T) {
	assert.Equal(t, 0, ClampSelection(0, 0))
	assert.Equal(t, 0, ClampSelection(2, 2))
	assert.Equal(t, 1, ClampSelection(1, 2))
	assert.Equal(t, 0, ClampSelection(-3, 2))
}
