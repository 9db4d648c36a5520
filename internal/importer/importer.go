// Package importer loads news items from RSS and Atom feeds.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/repository"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// maxTitleLength matches the width of the news title column.
const maxTitleLength = 250

// Importer converts feed items to News and stores the ones not seen yet.
type Importer struct {
	parser *gofeed.Parser
	news   repository.NewsRepository
}

// Result summarizes one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

func New(news repository.NewsRepository) *Importer {
	return &Importer{parser: gofeed.NewParser(), news: news}
}

// ImportURL fetches and imports the feed at url.
func (im *Importer) ImportURL(ctx context.Context, url string) (Result, error) {
	feed, err := im.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse feed: %w", err)
	}
	return im.importFeed(ctx, feed)
}

// ImportReader imports a feed document read from r.
func (im *Importer) ImportReader(ctx context.Context, r io.Reader) (Result, error) {
	feed, err := im.parser.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse feed: %w", err)
	}
	return im.importFeed(ctx, feed)
}

func (im *Importer) importFeed(ctx context.Context, feed *gofeed.Feed) (Result, error) {
	res := Result{Fetched: len(feed.Items)}
	batch := make([]*models.News, 0, len(feed.Items))
	seen := make(map[string]struct{}, len(feed.Items))

	for _, item := range feed.Items {
		news := FeedItemToNews(item)
		if _, dup := seen[news.Title]; dup {
			res.Skipped++
			continue
		}
		seen[news.Title] = struct{}{}

		exists, err := im.news.ExistsByTitle(ctx, news.Title)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		batch = append(batch, news)
	}

	if err := im.news.CreateBatch(ctx, batch); err != nil {
		return res, err
	}
	res.Imported = len(batch)

	middleware.Logger.InfoContext(ctx, "feed imported",
		"feed", feed.Title, "fetched", res.Fetched, "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

// FeedItemToNews maps a feed item onto a News value. HTML in the item body
// is reduced to plain text.
func FeedItemToNews(item *gofeed.Item) *models.News {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "(Без заголовка)"
	}
	title = truncate(title, maxTitleLength)

	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}
	text := HTMLToText(body)
	if text == "" {
		text = title
	}

	var date time.Time
	switch {
	case item.PublishedParsed != nil:
		date = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		date = *item.UpdatedParsed
	default:
		date = time.Now()
	}

	return &models.News{Title: title, Text: text, Date: date}
}

// HTMLToText strips markup, keeping one paragraph per block element.
func HTMLToText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("script, style").Remove()

	var paragraphs []string
	blocks := doc.Find("p, li, h1, h2, h3, h4, blockquote")
	if blocks.Length() == 0 {
		paragraphs = append(paragraphs, doc.Text())
	} else {
		blocks.Each(func(_ int, s *goquery.Selection) {
			paragraphs = append(paragraphs, s.Text())
		})
	}

	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
