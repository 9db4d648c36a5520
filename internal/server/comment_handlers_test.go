package server

import (
	"net/http"
	"net/url"
	"testing"

	"newsdesk/internal/models"
	"newsdesk/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newText = url.Values{"text": {"Новый текст комментария"}}

func TestEditComment_Author(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	news := env.mustNews()
	comment := env.mustComment(news, author)

	var original models.Comment
	require.NoError(t, env.db.First(&original, comment.ID).Error)

	resp := env.do(http.MethodPost, URLFor(RouteEdit, comment.ID), requestOpts{as: author, form: newText})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, URLFor(RouteDetail, news.ID)+"#comments", resp.Header.Get("Location"))

	var updated models.Comment
	require.NoError(t, env.db.First(&updated, comment.ID).Error)
	assert.Equal(t, newText.Get("text"), updated.Text)
	assert.True(t, updated.CreatedAt.Equal(original.CreatedAt))
}

func TestEditComment_OtherUser(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	reader := env.mustUser("Читатель")
	comment := env.mustComment(env.mustNews(), author)

	resp := env.do(http.MethodPost, URLFor(RouteEdit, comment.ID), requestOpts{as: reader, form: newText})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var stored models.Comment
	require.NoError(t, env.db.First(&stored, comment.ID).Error)
	assert.Equal(t, comment.Text, stored.Text)
}

func TestEditComment_BadWords(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	comment := env.mustComment(env.mustNews(), author)

	resp := env.do(http.MethodPost, URLFor(RouteEdit, comment.ID), requestOpts{
		as:   author,
		json: true,
		form: url.Values{"text": {"ну ты и " + moderation.BadWords[1]}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Form *Form `json:"form"`
	}
	env.decode(resp, &view)
	require.NotNil(t, view.Form)
	assert.Equal(t, []string{moderation.Warning}, view.Form.Errors["text"])

	var stored models.Comment
	require.NoError(t, env.db.First(&stored, comment.ID).Error)
	assert.Equal(t, comment.Text, stored.Text)
}

func TestEditCommentPage_PrefillsText(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	comment := env.mustComment(env.mustNews(), author)

	resp := env.do(http.MethodGet, URLFor(RouteEdit, comment.ID), requestOpts{as: author, json: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Form *Form `json:"form"`
	}
	env.decode(resp, &view)
	require.NotNil(t, view.Form)
	assert.Equal(t, "Текст комментария", view.Form.Values["text"])
}

func TestDeleteComment_Author(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	news := env.mustNews()
	comment := env.mustComment(news, author)

	resp := env.do(http.MethodPost, URLFor(RouteDelete, comment.ID), requestOpts{as: author})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, URLFor(RouteDetail, news.ID)+"#comments", resp.Header.Get("Location"))
	assert.Zero(t, env.commentCount())
}

func TestDeleteComment_OtherUser(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	reader := env.mustUser("Читатель")
	comment := env.mustComment(env.mustNews(), author)

	resp := env.do(http.MethodPost, URLFor(RouteDelete, comment.ID), requestOpts{as: reader})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(1), env.commentCount())
}

func TestDeleteComment_Anonymous(t *testing.T) {
	env := setupNewsTestServer(t)
	author := env.mustUser("Автор")
	comment := env.mustComment(env.mustNews(), author)
	target := URLFor(RouteDelete, comment.ID)

	resp := env.do(http.MethodPost, target, requestOpts{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, URLFor(RouteLogin)+"?next="+target, resp.Header.Get("Location"))
	assert.Equal(t, int64(1), env.commentCount())
}
