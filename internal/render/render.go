// Package render turns a card face into displayable question/answer HTML.
// Templates use mustache substitution ({{Front}}, {{Back}}, {{FrontSide}});
// media references ([sound:...] tags and img src attributes) are rewritten
// through the collection's media resolution surface.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

var (
	soundRe  = regexp.MustCompile(`\[sound:([^\]]+)\]`)
	imgSrcRe = regexp.MustCompile(`(<img[^>]*\ssrc=")([^"]+)(")`)
)

// Rendered is one card face rendered to HTML.
type Rendered struct {
	Question string
	Answer   string
	CSS      string
}

// MediaResolver resolves a display filename to a resource handle, or ""
// while the handle is still being extracted.
type MediaResolver func(name string) string

// Face renders a committed or draft card face against a snapshot.
// media may be nil; media references are then left untouched.
func Face(coll *domain.Collection, face domain.CardFace, media MediaResolver) (Rendered, error) {
	fields, tmpl, css, ok := face.Resolve(coll)
	if !ok {
		return Rendered{}, fmt.Errorf("card face does not resolve: %w", domain.ErrNotFound)
	}

	context := make(map[string]string, len(fields)+1)
	for name, value := range fields {
		context[name] = value
	}

	question, err := mustache.Render(tmpl.Qfmt, context)
	if err != nil {
		return Rendered{}, fmt.Errorf("question template: %w", err)
	}
	question = rewriteMedia(question, media)

	context["FrontSide"] = question
	answer, err := mustache.Render(tmpl.Afmt, context)
	if err != nil {
		return Rendered{}, fmt.Errorf("answer template: %w", err)
	}
	answer = rewriteMedia(answer, media)

	return Rendered{Question: question, Answer: answer, CSS: css}, nil
}

// rewriteMedia replaces sound tags with audio elements and repoints img
// src attributes at resolved handles. Unresolved references keep their
// display name so a re-render after the next notification picks them up.
func rewriteMedia(html string, media MediaResolver) string {
	if media == nil {
		return html
	}
	html = soundRe.ReplaceAllStringFunc(html, func(match string) string {
		name := soundRe.FindStringSubmatch(match)[1]
		if url := media(name); url != "" {
			return `<audio controls src="` + url + `"></audio>`
		}
		return match
	})
	html = imgSrcRe.ReplaceAllStringFunc(html, func(match string) string {
		parts := imgSrcRe.FindStringSubmatch(match)
		if strings.Contains(parts[2], "://") {
			return match
		}
		if url := media(parts[2]); url != "" {
			return parts[1] + url + parts[3]
		}
		return match
	})
	return html
}
