package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article is one livedoor news article, the unit of the corpus.
// The JSON field names are the corpus file format.
type Article struct {
	// URL is the source identifier, the first line of the raw file.
	URL string `json:"url"`

	// Publisher is the category label taken from the containing directory.
	Publisher string `json:"publisher"`

	// CreatedAt is the publication time in UNIX epoch seconds.
	CreatedAt int64 `json:"created_at"`

	// Body is every remaining line joined with a single space.
	Body string `json:"body"`
}

// ID returns the stable record identifier of the article, a name-based
// UUID over every field. Articles that share a URL but differ in any other
// field get distinct ids; only identical records collide.
func (a Article) ID() string {
	var b strings.Builder
	b.WriteString(a.URL)
	b.WriteByte(0)
	b.WriteString(a.Publisher)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(a.CreatedAt, 10))
	b.WriteByte(0)
	b.WriteString(a.Body)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(b.String())).String()
}

// Created returns CreatedAt as a time.Time in UTC.
func (a Article) Created() time.Time {
	return time.Unix(a.CreatedAt, 0).UTC()
}

// Bodies returns the bodies of the articles in order.
func Bodies(articles []Article) []string {
	texts := make([]string, len(articles))
	for i := range articles {
		texts[i] = articles[i].Body
	}
	return texts
}
