// Package raster implements the raster/PDF export pipeline: the rendered
// preview is captured as an image in a headless browser, placed full-bleed
// on a fixed-size page, and the hyperlink hit-regions lost to
// rasterization are reconstructed geometrically from the live DOM layout.
package raster

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// socialDomains is the allow-list of external hosts whose links are
// carried into the PDF. mailto links are always carried.
var socialDomains = []string{"linkedin.com", "github.com"}

// AllowedHref reports whether a hyperlink qualifies for region
// reconstruction: a mailto link, or an external link whose host matches
// the social allow-list.
func AllowedHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	if u.Scheme == "mailto" {
		return u.Opaque != ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ScanLinks parses the rendered preview HTML and returns the set of
// hyperlink hrefs that qualify for PDF link regions. The geometry comes
// from the browser; this scan pins down which measured anchors to keep.
func ScanLinks(htmlContent string) (map[string]bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	hrefs := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if AllowedHref(href) {
			hrefs[href] = true
		}
	})
	return hrefs, nil
}
