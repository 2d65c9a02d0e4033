package services

import (
	"strings"
	"testing"
	"time"

	"github.com/resource-capital/backend/internal/models"
)

func TestClassifyArticleCommodity(t *testing.T) {
	article := &models.NewsArticle{Title: "Gold miner strikes high-grade zone"}
	ClassifyArticle(article)
	if article.Commodity != "Gold" {
		t.Fatalf("commodity: got %q, want Gold", article.Commodity)
	}

	other := &models.NewsArticle{Title: "Copper outlook improves on supply deficit"}
	ClassifyArticle(other)
	if other.Commodity != "Copper" {
		t.Fatalf("commodity: got %q, want Copper", other.Commodity)
	}
}

func TestClassifyArticleFirstMatchWins(t *testing.T) {
	// Gold precedes copper in the keyword list, so a headline naming both tags as Gold
	article := &models.NewsArticle{Title: "Gold and copper intercepts at Abitibi project"}
	ClassifyArticle(article)
	if article.Commodity != "Gold" {
		t.Fatalf("commodity: got %q, want Gold", article.Commodity)
	}
	if article.Region != "Quebec" {
		t.Fatalf("region: got %q, want Quebec", article.Region)
	}
	if article.Catalyst != catalystDrill {
		t.Fatalf("catalyst: got %q, want %q", article.Catalyst, catalystDrill)
	}
}

func TestClassifyArticleCatalystTypes(t *testing.T) {
	cases := map[string]string{
		"Company reports quarterly results":            catalystEarnings,
		"NI 43-101 technical report filed for project": catalystFiling,
		"Mill throughput hits record in December":      catalystProd,
		"Board approves merger with rival":             catalystMA,
	}
	for title, want := range cases {
		article := &models.NewsArticle{Title: title}
		ClassifyArticle(article)
		if article.Catalyst != want {
			t.Fatalf("title %q: catalyst got %q, want %q", title, article.Catalyst, want)
		}
	}
}

func TestClassifyArticleTagsCollectMatches(t *testing.T) {
	article := &models.NewsArticle{Title: "Silver producer in Nevada posts earnings"}
	ClassifyArticle(article)

	joined := strings.Join(article.Tags, ",")
	for _, want := range []string{"Silver", "Nevada", catalystEarnings} {
		if !strings.Contains(joined, want) {
			t.Fatalf("tags %v missing %q", article.Tags, want)
		}
	}
}

func TestDecorateArticleBreaking(t *testing.T) {
	now := time.Now()

	recent := now.Add(-30 * time.Minute)
	article := &models.NewsArticle{Title: "Halt lifted", PublishedAt: &recent}
	DecorateArticle(article, now)
	if !article.Breaking {
		t.Fatal("article published 30 minutes ago should be breaking")
	}

	stale := now.Add(-3 * time.Hour)
	article = &models.NewsArticle{Title: "Old news", PublishedAt: &stale}
	DecorateArticle(article, now)
	if article.Breaking {
		t.Fatal("article published 3 hours ago should not be breaking")
	}

	article = &models.NewsArticle{Title: "No date"}
	DecorateArticle(article, now)
	if article.Breaking {
		t.Fatal("article without a publish date should not be breaking")
	}
}

func TestEstimateReadTime(t *testing.T) {
	if got := EstimateReadTime("short headline"); got != 1 {
		t.Fatalf("short text read time: got %d, want 1", got)
	}

	long := strings.Repeat("word ", 450)
	if got := EstimateReadTime(long); got != 3 {
		t.Fatalf("450 words read time: got %d, want 3", got)
	}
}
