/**
 * @description
 * Display heuristics for news articles.
 * Derives commodity/region/catalyst tags, the "breaking" flag and an estimated
 * read time from unstructured title/description text via static keyword lists.
 * First match wins; these are presentation hints, not parsing.
 *
 * @dependencies
 * - internal/models
 */

package services

import (
	"strings"
	"time"

	"github.com/resource-capital/backend/internal/models"
)

const (
	breakingWindow   = 2 * time.Hour
	wordsPerMinute   = 200
	catalystDrill    = "drill_result"
	catalystEarnings = "earnings"
	catalystFiling   = "filing"
	catalystProd     = "production_update"
	catalystMA       = "m&a"
)

// keyword lists are ordered; the first hit wins
var commodityKeywords = []struct {
	tag      string
	keywords []string
}{
	{"Gold", []string{"gold", "au "}},
	{"Silver", []string{"silver"}},
	{"Copper", []string{"copper"}},
	{"Lithium", []string{"lithium"}},
	{"Uranium", []string{"uranium"}},
	{"Nickel", []string{"nickel"}},
	{"Zinc", []string{"zinc"}},
	{"Potash", []string{"potash"}},
}

var regionKeywords = []struct {
	tag      string
	keywords []string
}{
	{"Ontario", []string{"ontario", "timmins", "red lake"}},
	{"Quebec", []string{"quebec", "abitibi", "val-d'or"}},
	{"British Columbia", []string{"british columbia", "golden triangle"}},
	{"Yukon", []string{"yukon"}},
	{"Nunavut", []string{"nunavut"}},
	{"Saskatchewan", []string{"saskatchewan", "athabasca"}},
	{"Nevada", []string{"nevada"}},
	{"Latin America", []string{"mexico", "peru", "chile", "argentina", "ecuador"}},
	{"Africa", []string{"ghana", "mali", "burkina", "tanzania", "drc"}},
}

var catalystKeywords = []struct {
	tag      string
	keywords []string
}{
	{catalystDrill, []string{"drill", "intercept", "assay", "intersects", "grades"}},
	{catalystEarnings, []string{"earnings", "quarterly results", "financial results", "q1", "q2", "q3", "q4"}},
	{catalystFiling, []string{"ni 43-101", "technical report", "feasibility", "pea", "prospectus", "filing"}},
	{catalystProd, []string{"production", "mill", "throughput", "ounces produced", "commissioning"}},
	{catalystMA, []string{"acquisition", "merger", "takeover", "buyout"}},
}

// ClassifyArticle derives persisted tags from title+description.
// Called at ingest time so tags survive into the DB row.
func ClassifyArticle(article *models.NewsArticle) {
	text := strings.ToLower(article.Title + " " + article.Description)

	article.Commodity = firstMatch(text, commodityKeywords)
	article.Region = firstMatch(text, regionKeywords)
	article.Catalyst = firstMatch(text, catalystKeywords)

	var tags []string
	if article.Commodity != "" {
		tags = append(tags, article.Commodity)
	}
	if article.Region != "" {
		tags = append(tags, article.Region)
	}
	if article.Catalyst != "" {
		tags = append(tags, article.Catalyst)
	}
	article.Tags = tags
}

// DecorateArticle computes the read-side display fields
func DecorateArticle(article *models.NewsArticle, now time.Time) {
	article.Breaking = article.PublishedAt != nil && now.Sub(*article.PublishedAt) <= breakingWindow && now.After(*article.PublishedAt)
	article.ReadTimeMins = EstimateReadTime(article.Title + " " + article.Description)
}

// EstimateReadTime returns reading minutes at 200 wpm, minimum 1
func EstimateReadTime(text string) int {
	words := len(strings.Fields(text))
	mins := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		mins++
	}
	if mins < 1 {
		mins = 1
	}
	return mins
}

func firstMatch(text string, lists []struct {
	tag      string
	keywords []string
}) string {
	for _, entry := range lists {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.tag
			}
		}
	}
	return ""
}
