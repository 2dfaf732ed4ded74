// Package market fetches recent sector news and derives a lightweight
// market context: relevance-ranked articles, an aggregate sentiment, and
// the dominant trend keywords.
package market

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/deckscore/pkg/newsapi"
)

// Sentiment is the aggregate tone of recent sector headlines.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Article is a ranked news article.
type Article struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Source         string `json:"source"`
	URL            string `json:"url"`
	PublishedAt    string `json:"publishedAt"`
	RelevanceScore int    `json:"relevanceScore"`
}

// Data is the assembled market context for a sector.
type Data struct {
	Sector    string    `json:"sector"`
	Articles  []Article `json:"articles"`
	Sentiment Sentiment `json:"sentiment"`
	Trends    []string  `json:"trends"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// lookback bounds how far back article search reaches.
const lookback = 7 * 24 * time.Hour

// Fetcher assembles market context from a news provider.
type Fetcher struct {
	client   newsapi.Client
	pageSize int
}

// NewFetcher creates a Fetcher. A nil client yields a nil Fetcher, which
// callers treat as "market context disabled".
func NewFetcher(client newsapi.Client, pageSize int) *Fetcher {
	if client == nil {
		return nil
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Fetcher{client: client, pageSize: pageSize}
}

// Fetch retrieves and ranks recent articles for the sector. Headline
// sentiment is best effort; a failed top-headlines call degrades to the
// neutral sentiment rather than failing the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, sector string) (Data, error) {
	everything, err := f.client.Everything(ctx, newsapi.EverythingRequest{
		Query:    buildQuery(sector),
		From:     time.Now().Add(-lookback),
		Language: "en",
		SortBy:   "publishedAt",
		PageSize: f.pageSize,
	})
	if err != nil {
		return Data{}, eris.Wrap(err, "market: fetch articles")
	}

	ranked := rankArticles(everything.Articles, sector)

	sentiment := SentimentNeutral
	headlines, err := f.client.TopHeadlines(ctx, newsapi.TopHeadlinesRequest{
		Category: "business",
		Country:  "us",
		PageSize: 20,
	})
	if err != nil {
		zap.L().Warn("market: headlines unavailable, defaulting sentiment to neutral",
			zap.String("sector", sector),
			zap.Error(err))
	} else {
		sentiment = analyzeSentiment(headlines.Articles)
	}

	return Data{
		Sector:    sector,
		Articles:  ranked,
		Sentiment: sentiment,
		Trends:    extractTrends(ranked),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func buildQuery(sector string) string {
	sector = strings.TrimSpace(sector)
	if sector == "" {
		return "startup OR investment OR funding OR venture capital"
	}
	return sector + " AND (startup OR investment OR funding OR \"venture capital\")"
}

var businessTerms = []string{
	"startup", "investment", "funding", "venture", "ipo", "acquisition",
	"valuation", "revenue", "growth",
}

// rankArticles scores each article for relevance to the sector and sorts
// descending. Sector mention is worth 30 per field, sector keywords 20,
// generic business terms 10, capped at 100.
func rankArticles(raw []newsapi.Article, sector string) []Article {
	sectorLower := strings.ToLower(strings.TrimSpace(sector))
	keywords := strings.Fields(sectorLower)

	out := make([]Article, 0, len(raw))
	for _, a := range raw {
		text := strings.ToLower(a.Title + " " + a.Description)

		score := 0
		if sectorLower != "" && strings.Contains(text, sectorLower) {
			score += 30
		}
		for _, kw := range keywords {
			if len(kw) > 2 && strings.Contains(text, kw) {
				score += 20
			}
		}
		for _, term := range businessTerms {
			if strings.Contains(text, term) {
				score += 10
			}
		}
		if score > 100 {
			score = 100
		}

		out = append(out, Article{
			Title:          a.Title,
			Description:    a.Description,
			Source:         a.Source.Name,
			URL:            a.URL,
			PublishedAt:    a.PublishedAt,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

var positiveWords = []string{
	"growth", "success", "profit", "gain", "rise", "surge", "boom",
	"record", "strong", "rally", "breakthrough", "expansion",
}

var negativeWords = []string{
	"loss", "decline", "fall", "crash", "crisis", "layoff", "bankruptcy",
	"recession", "weak", "drop", "plunge", "fraud",
}

// analyzeSentiment tallies positive and negative words across headlines.
// One side must beat the other by a 1.2x margin to leave neutral.
func analyzeSentiment(articles []newsapi.Article) Sentiment {
	positive := 0
	negative := 0
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description)
		for _, w := range positiveWords {
			positive += strings.Count(text, w)
		}
		for _, w := range negativeWords {
			negative += strings.Count(text, w)
		}
	}

	switch {
	case float64(positive) > float64(negative)*1.2:
		return SentimentPositive
	case float64(negative) > float64(positive)*1.2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

var trendKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "automation",
	"blockchain", "crypto", "fintech", "saas", "cloud", "cybersecurity",
	"healthtech", "biotech", "climate", "sustainability", "remote work",
	"e-commerce", "mobile", "data analytics", "iot", "5g",
}

// extractTrends tallies trend keywords across the top 20 ranked articles
// and returns the five most frequent. Ties break alphabetically so the
// output is stable for identical inputs.
func extractTrends(articles []Article) []string {
	limit := len(articles)
	if limit > 20 {
		limit = 20
	}

	counts := make(map[string]int)
	for _, a := range articles[:limit] {
		text := strings.ToLower(a.Title + " " + a.Description)
		for _, kw := range trendKeywords {
			if strings.Contains(text, kw) {
				counts[kw]++
			}
		}
	}

	trends := make([]string, 0, len(counts))
	for kw := range counts {
		trends = append(trends, kw)
	}
	sort.Slice(trends, func(i, j int) bool {
		if counts[trends[i]] != counts[trends[j]] {
			return counts[trends[i]] > counts[trends[j]]
		}
		return trends[i] < trends[j]
	})

	if len(trends) > 5 {
		trends = trends[:5]
	}
	return trends
}
