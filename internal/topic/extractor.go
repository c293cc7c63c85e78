// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topic extracts the subject of a free-text learning request with
// shallow part-of-speech heuristics.
package topic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ErrNoTopic is returned when neither heuristic finds a usable noun phrase.
// Callers own the rephrase loop.
var ErrNoTopic = errors.New("no topic found in statement")

// Extract returns the keyphrase the statement asks about. It prefers the
// object of a preposition ("tell me about wild animals" → "wild animals")
// and falls back to the last direct object ("I want to eat italian food" →
// "italian food").
func Extract(statement string) (string, error) {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return "", ErrNoTopic
	}

	doc, err := prose.NewDocument(statement, prose.WithExtraction(false))
	if err != nil {
		return "", fmt.Errorf("parsing statement: %w", err)
	}
	tokens := doc.Tokens()

	if phrase := prepositionalObject(tokens); phrase != "" {
		return phrase, nil
	}
	if phrase := directObject(tokens); phrase != "" {
		return phrase, nil
	}
	return "", ErrNoTopic
}

// isNoun reports whether tag is a Penn Treebank noun tag (NN, NNS, NNP, NNPS).
func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// isModifier reports whether tag can modify a head noun inside the phrase
// we return: adjectives and compound nouns.
func isModifier(tag string) bool {
	return strings.HasPrefix(tag, "JJ") || isNoun(tag)
}

func isVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

// prepositionalObject returns the noun phrase governed by the first
// preposition in the statement, or "" when no preposition has one. The
// phrase is the head noun plus its contiguous adjective and compound-noun
// modifiers; determiners and possessives are skipped.
func prepositionalObject(tokens []prose.Token) string {
	for i, tok := range tokens {
		if tok.Tag != "IN" && tok.Tag != "TO" {
			continue
		}
		if phrase := nounPhraseAfter(tokens, i+1); phrase != "" {
			return phrase
		}
	}
	return ""
}

// nounPhraseAfter collects the first noun phrase starting at or after start.
// It requires the phrase to begin within the next few tokens so a
// preposition at the front of one clause does not capture a noun from a
// later clause.
func nounPhraseAfter(tokens []prose.Token, start int) string {
	const window = 4

	i := start
	// Skip determiners and possessive pronouns ("the", "my").
	for i < len(tokens) && (tokens[i].Tag == "DT" || tokens[i].Tag == "PRP$") {
		i++
	}
	if i-start > window {
		return ""
	}

	var words []string
	sawNoun := false
	for ; i < len(tokens) && isModifier(tokens[i].Tag); i++ {
		words = append(words, tokens[i].Text)
		if isNoun(tokens[i].Tag) {
			sawNoun = true
		}
	}
	if !sawNoun {
		return ""
	}
	// Trim trailing adjectives so the phrase ends at its head noun.
	for len(words) > 0 && !isNoun(tokens[i-1].Tag) {
		words = words[:len(words)-1]
		i--
	}
	return strings.Join(words, " ")
}

// directObject scans the statement from the end and returns the last noun
// phrase that follows a verb and is not governed by a preposition. The
// direct object we care about is likely at the end of the sentence.
func directObject(tokens []prose.Token) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !isNoun(tokens[i].Tag) {
			continue
		}

		// Walk left over the phrase's modifiers.
		start := i
		for start > 0 && isModifier(tokens[start-1].Tag) {
			start--
		}

		// Skip the phrase when its governor is a preposition; that case
		// belongs to prepositionalObject and already failed.
		prev := start - 1
		for prev >= 0 && (tokens[prev].Tag == "DT" || tokens[prev].Tag == "PRP$") {
			prev--
		}
		if prev >= 0 && (tokens[prev].Tag == "IN" || tokens[prev].Tag == "TO") {
			i = start
			continue
		}

		// A direct object needs a verb somewhere to its left.
		hasVerb := false
		for j := 0; j < start; j++ {
			if isVerb(tokens[j].Tag) {
				hasVerb = true
				break
			}
		}
		if !hasVerb {
			i = start
			continue
		}

		words := make([]string, 0, i-start+1)
		for j := start; j <= i; j++ {
			words = append(words, tokens[j].Text)
		}
		return strings.Join(words, " ")
	}
	return ""
}
