// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/pdiddy/wikilearn/internal/wiki"
	"github.com/pdiddy/wikilearn/pkg/types"
)

// fakeFetcher serves canned articles by title.
type fakeFetcher struct {
	articles map[string]*types.Article
	calls    []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, title string) (*types.Article, error) {
	f.calls = append(f.calls, title)
	if a, ok := f.articles[title]; ok {
		return a, nil
	}
	return nil, wiki.ErrPageMissing
}

func wildAnimalFetcher() *fakeFetcher {
	return &fakeFetcher{articles: map[string]*types.Article{
		"wild animals": {
			Title:   "Wild animal",
			Summary: "Wild animals live in the wild.",
			URL:     "https://en.wikipedia.org/wiki/Wild_animal",
		},
	}}
}

func TestLookupOnce(t *testing.T) {
	f := wildAnimalFetcher()
	phrase, article, err := lookupOnce(context.Background(), f, "Can you tell me about wild animals?")
	if err != nil {
		t.Fatalf("lookupOnce: %v", err)
	}
	if phrase != "wild animals" {
		t.Errorf("phrase = %q", phrase)
	}
	if article.Title != "Wild animal" {
		t.Errorf("Title = %q", article.Title)
	}
}

func TestLookupOnceNoTopic(t *testing.T) {
	_, _, err := lookupOnce(context.Background(), wildAnimalFetcher(), "Why?")
	if err == nil || !strings.Contains(err.Error(), "rephras") {
		t.Errorf("err = %v, want rephrase hint", err)
	}
}

func TestLookupOnceMissingPage(t *testing.T) {
	_, _, err := lookupOnce(context.Background(), &fakeFetcher{}, "Tell me about wild animals.")
	if err == nil || !strings.Contains(err.Error(), "no Wikipedia article") {
		t.Errorf("err = %v, want missing-article message", err)
	}
}

func TestLookupInteractiveRetriesUntilSuccess(t *testing.T) {
	f := wildAnimalFetcher()
	// First statement has no extractable topic, second one works.
	in := strings.NewReader("Why?\nCan you tell me about wild animals?\n")
	var out strings.Builder

	phrase, article, err := lookupInteractive(context.Background(), f, in, &out, 5)
	if err != nil {
		t.Fatalf("lookupInteractive: %v", err)
	}
	if phrase != "wild animals" || article.Title != "Wild animal" {
		t.Errorf("phrase = %q, title = %q", phrase, article.Title)
	}
	if !strings.Contains(out.String(), "rephrase your statement") {
		t.Errorf("prompt output missing rephrase message:\n%s", out.String())
	}
}

func TestLookupInteractiveMissingPageReprompts(t *testing.T) {
	f := wildAnimalFetcher()
	in := strings.NewReader("Tell me about Zorblaxia.\nTell me about wild animals.\n")
	var out strings.Builder

	phrase, _, err := lookupInteractive(context.Background(), f, in, &out, 5)
	if err != nil {
		t.Fatalf("lookupInteractive: %v", err)
	}
	if phrase != "wild animals" {
		t.Errorf("phrase = %q", phrase)
	}
	if !strings.Contains(out.String(), "unable to find a Wikipedia page") {
		t.Errorf("prompt output missing missing-page message:\n%s", out.String())
	}
}

func TestLookupInteractiveMaxAttempts(t *testing.T) {
	in := strings.NewReader("Why?\nWhy?\nWhy?\n")
	var out strings.Builder

	_, _, err := lookupInteractive(context.Background(), wildAnimalFetcher(), in, &out, 3)
	if err == nil || !strings.Contains(err.Error(), "3 attempts") {
		t.Errorf("err = %v, want attempt limit", err)
	}
}

func TestLookupInteractiveEOF(t *testing.T) {
	_, _, err := lookupInteractive(context.Background(), wildAnimalFetcher(), strings.NewReader(""), &strings.Builder{}, 5)
	if err == nil {
		t.Fatal("expected error on EOF")
	}
}
