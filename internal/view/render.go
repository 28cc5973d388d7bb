// Package view renders gift lists: the tabbed HTML view, the page around
// it, and a plain-text form for chat.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Kerhoff/giftlists/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ErrorMessage is the single message shown for every pipeline failure.
const ErrorMessage = "Could not load the lists."

// ViewState is the interaction state of the tabbed view.
type ViewState struct {
	SelectedIndex int
}

// Renderer renders lists with fixed presentation settings.
type Renderer struct {
	tmpl     *template.Template
	policy   *bluemonday.Policy
	currency string
}

// NewRenderer parses the embedded templates.
func NewRenderer(currency string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{
		tmpl:     tmpl,
		policy:   bluemonday.UGCPolicy(),
		currency: currency,
	}, nil
}

// StaticHandler serves the embedded stylesheet.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type tabView struct {
	Index  int
	Owner  string
	Active bool
}

type presentView struct {
	models.Present
	PriceLabel     string
	PreferenceText string
	ShowSuggestion bool
}

type panelView struct {
	Index    int
	Visible  bool
	List     models.GiftList
	Welcome  template.HTML
	Presents []presentView
}

type listsView struct {
	Tabs   []tabView
	Panels []panelView
}

type pageView struct {
	State    string
	Selected int
	Loading  bool
	Failed   bool
	Ready    bool
	Error    string
	Lists    listsView
}

// Render writes the tab strip and one panel per list. Exactly the tab at
// state.SelectedIndex is active and its panel visible; an out-of-range
// index selects the first tab.
func (r *Renderer) Render(w io.Writer, lists []models.GiftList, state ViewState) error {
	return r.tmpl.ExecuteTemplate(w, "lists", r.buildLists(lists, state))
}

// Page writes the full HTML document for a region snapshot.
func (r *Renderer) Page(w io.Writer, snap Snapshot, state ViewState) error {
	pv := pageView{
		State:    snap.State.String(),
		Selected: max(state.SelectedIndex, 0),
		Loading:  snap.State == StateLoading || snap.State == StateIdle,
		Failed:   snap.State == StateFailed,
		Ready:    snap.State == StateReady,
		Error:    ErrorMessage,
	}
	if pv.Ready {
		pv.Lists = r.buildLists(snap.Lists, state)
	}
	return r.tmpl.ExecuteTemplate(w, "page", pv)
}

// ClampSelection maps a requested tab index onto [0, n).
func ClampSelection(index, n int) int {
	if index < 0 || index >= n {
		return 0
	}
	return index
}

func (r *Renderer) buildLists(lists []models.GiftList, state ViewState) listsView {
	selected := ClampSelection(state.SelectedIndex, len(lists))

	lv := listsView{
		Tabs:   make([]tabView, 0, len(lists)),
		Panels: make([]panelView, 0, len(lists)),
	}
	for i, list := range lists {
		lv.Tabs = append(lv.Tabs, tabView{Index: i, Owner: list.Owner, Active: i == selected})

		panel := panelView{
			Index:    i,
			Visible:  i == selected,
			List:     list,
			Welcome:  template.HTML(r.policy.Sanitize(list.WelcomeMessage)),
			Presents: make([]presentView, 0, len(list.Presents)),
		}
		for _, p := range list.Presents {
			panel.Presents = append(panel.Presents, presentView{
				Present:        p,
				PriceLabel:     p.Price.Label(r.currency),
				PreferenceText: p.PreferenceLabel(),
				ShowSuggestion: p.HasSuggestion(),
			})
		}
		lv.Panels = append(lv.Panels, panel)
	}
	return lv
}
