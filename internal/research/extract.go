package research

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

const (
	maxHeadings      = 200
	maxHeadingLength = 200
	maxContentLength = 5000
)

// Page is the text extracted from a competitor page. A failed fetch yields
// the zero Page.
type Page struct {
	Title       string
	Description string
	Content     string
	Headings    []string
}

var (
	noiseSel         = cascadia.MustCompile("script, style, nav, footer, header")
	titleSel         = cascadia.MustCompile("title")
	h1Sel            = cascadia.MustCompile("h1")
	headingSel       = cascadia.MustCompile("h1, h2, h3")
	bodySel          = cascadia.MustCompile("body")
	metaDescSel      = cascadia.MustCompile(`meta[name="description"]`)
	ogDescriptionSel = cascadia.MustCompile(`meta[property="og:description"]`)

	whitespaceRe = regexp.MustCompile(`\s+`)
	promoRe      = regexp.MustCompile(`(?i)free|save|best|top|#1|exclusive|limited|guarantee`)
)

// ExtractPage parses raw HTML into a Page.
func ExtractPage(raw string) (Page, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return Page{}, err
	}

	for _, n := range noiseSel.MatchAll(doc) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	var page Page
	if n := cascadia.Query(doc, titleSel); n != nil {
		page.Title = strings.TrimSpace(textContent(n))
	}
	if page.Title == "" {
		if n := cascadia.Query(doc, h1Sel); n != nil {
			page.Title = strings.TrimSpace(textContent(n))
		}
	}

	page.Description = attr(cascadia.Query(doc, metaDescSel), "content")
	if page.Description == "" {
		page.Description = attr(cascadia.Query(doc, ogDescriptionSel), "content")
	}

	for _, n := range headingSel.MatchAll(doc) {
		if len(page.Headings) == maxHeadings {
			break
		}
		text := strings.TrimSpace(textContent(n))
		if text != "" && utf8.RuneCountInString(text) < maxHeadingLength {
			page.Headings = append(page.Headings, text)
		}
	}

	if body := cascadia.Query(doc, bodySel); body != nil {
		content := strings.TrimSpace(whitespaceRe.ReplaceAllString(textContent(body), " "))
		page.Content = truncateRunes(content, maxContentLength)
	}

	return page, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var audienceRules = []struct {
	label    string
	keywords []string
}{
	{"B2B / Business professionals", []string{"business", "enterprise", "team"}},
	{"Women", []string{"women", "her", "she"}},
	{"Men", []string{"men", "him", "his"}},
	{"Parents / Families", []string{"parent", "family", "kid"}},
}

// targetAudience matches keywords as plain substrings, so "her" also
// matches "there". The first matching rule wins.
func targetAudience(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range audienceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return "General audience"
}

// AnalyzeCompetitor turns an extracted page into a competitor insight.
func AnalyzeCompetitor(pageURL string, page Page) models.CompetitorInsight {
	var valueProps, messaging []string
	for _, h := range page.Headings {
		n := utf8.RuneCountInString(h)
		if n > 10 && n < 100 && len(valueProps) < 5 {
			valueProps = append(valueProps, h)
		}
		if promoRe.MatchString(h) && len(messaging) < 3 {
			messaging = append(messaging, h)
		}
	}
	if len(messaging) == 0 {
		messaging = []string{"Value-focused messaging"}
	}
	if len(valueProps) == 0 {
		valueProps = []string{"Quality products/services"}
	}

	name := page.Title
	if name == "" {
		name = hostname(pageURL)
	}

	return models.CompetitorInsight{
		Name:             name,
		URL:              pageURL,
		TargetAudience:   targetAudience(page.Content),
		Messaging:        messaging,
		UniqueValueProps: valueProps,
		SocialPresence:   []models.SocialPresence{},
	}
}

func hostname(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return pageURL
	}
	return u.Hostname()
}
