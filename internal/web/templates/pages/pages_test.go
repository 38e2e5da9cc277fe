package pages_test

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/web/templates/components"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
	"github.com/mcoot/clubroster/internal/web/templates/pages"
)

func TestPlayersEscapesUserText(t *testing.T) {
	hostile := `<script>alert("x")</script>`
	data := pages.PlayersData{
		PageData: layout.PageData{
			Title:       "Players",
			DisplayName: `<b>Admin</b>`,
			Flash:       &layout.FlashMessage{Type: `info" onclick="x`, Message: hostile},
		},
		Query: `"><img src=x>`,
		Results: components.ResultsData{
			Players: []model.Player{{ID: 7, Name: hostile, Email: "a&b@club.com", DUPRRating: 4.25}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, pages.Players(data).Render(t.Context(), &buf))
	html := buf.String()

	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, "<img src=x>")
	assert.NotContains(t, html, "<b>Admin</b>")

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("script").Length(), "only the htmx script tag")
	assert.Equal(t, `"><img src=x>`, doc.Find("input#search").AttrOr("value", ""))
	assert.Equal(t, `<b>Admin</b>`, doc.Find(".nav-user").Text())
	assert.Equal(t, `info" onclick="x`, doc.Find(".flash").AttrOr("data-flash", ""))
	assert.False(t, doc.Find(".flash").Is("[onclick]"))
	assert.Equal(t, hostile, doc.Find(".player-name").Text())
	assert.Equal(t, "a&b@club.com", doc.Find(".player-email").Text())
	assert.Equal(t, "7", doc.Find("li.player").AttrOr("data-id", ""))
	assert.Equal(t, "DUPR 4.3", doc.Find(".player-rating").Text())
	assert.Equal(t, "Players | Pickleball Organiser", doc.Find("title").Text())
}

func TestLoginCarriesNextAsField(t *testing.T) {
	data := pages.LoginData{
		PageData: layout.PageData{Title: "Sign In"},
		Email:    `x@y.com" autofocus="`,
		Error:    "Invalid email or password",
		Next:     "/players?search=amy&x=1",
	}

	var buf bytes.Buffer
	require.NoError(t, pages.Login(data).Render(t.Context(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	form := doc.Find("#login-form")
	assert.Equal(t, "/login", form.AttrOr("action", ""))
	assert.Equal(t, "/players?search=amy&x=1", form.Find("input[name=next]").AttrOr("value", ""))
	assert.Equal(t, `x@y.com" autofocus="`, doc.Find("#email").AttrOr("value", ""))
	assert.False(t, doc.Find("#email").Is("[autofocus]"))
	assert.Equal(t, "Invalid email or password", doc.Find("#login-error").Text())
	assert.Equal(t, 0, doc.Find("nav").Length())
}

func TestResultsEmptyMessageOnlyWithoutPlayers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, components.Results(components.ResultsData{EmptyMessage: model.NoMatchesMessage("<zz>")}).Render(t.Context(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, `No players found matching "<zz>"`, doc.Find("#results .empty").Text())
	assert.Equal(t, 0, doc.Find("ul.players").Length())

	buf.Reset()
	require.NoError(t, components.Results(components.ResultsData{}).Render(t.Context(), &buf))
	doc, err = goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#results").Length())
	assert.Equal(t, 0, doc.Find(".empty").Length())
}
