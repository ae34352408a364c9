package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Houeta/price-refresh/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// ErrPriceNotFound is returned when a page was fetched but no price could be located on it.
var ErrPriceNotFound = errors.New("price not found on page")

const defaultUserAgent = "Mozilla/5.0 (compatible; PriceRefresh/1.0)"

// Extractor is the capability the refresh pipeline depends on: given a URL, return
// a raw price and currency code, or fail.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (models.Quote, error)
}

// Selectors tried in order. Attribute values win over element text.
var (
	priceSelectors = []string{
		`meta[property="product:price:amount"]`,
		`meta[property="og:price:amount"]`,
		`[itemprop="price"]`,
		`[data-price]`,
	}
	currencySelectors = []string{
		`meta[property="product:price:currency"]`,
		`meta[property="og:price:currency"]`,
		`[itemprop="priceCurrency"]`,
	}
	priceAttributes = []string{"content", "data-price", "value"}

	jsonLDPrice    = regexp.MustCompile(`"price"\s*:\s*"?([0-9][0-9.,]*)"?`)
	jsonLDCurrency = regexp.MustCompile(`"priceCurrency"\s*:\s*"([A-Za-z]{3})"`)
	priceChars     = regexp.MustCompile(`[^0-9.,]`)
)

// HTMLExtractor fetches product pages over HTTP and reads the price from common
// structured markup (Open Graph / schema.org microdata / JSON-LD).
type HTMLExtractor struct {
	log       *slog.Logger
	client    *http.Client
	userAgent string
}

// NewHTMLExtractor creates an HTMLExtractor. A zero timeout leaves the client unbounded,
// callers are then expected to bound each call through ctx.
func NewHTMLExtractor(log *slog.Logger, timeout time.Duration, userAgent string) *HTMLExtractor {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTMLExtractor{log: log, client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Extract fetches rawURL and returns the price found on the page.
func (e *HTMLExtractor) Extract(ctx context.Context, rawURL string) (models.Quote, error) {
	resp, err := e.getHTMLResponse(ctx, rawURL)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to get html response: %w", err)
	}
	defer resp.Body.Close()

	return e.parseQuote(ctx, resp.Body)
}

func (e *HTMLExtractor) getHTMLResponse(ctx context.Context, rawURL string) (*http.Response, error) {
	target := strings.TrimSpace(rawURL)
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}

	reqURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product URL %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	e.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", reqURL.String(), err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	return res, nil
}

func (e *HTMLExtractor) parseQuote(ctx context.Context, body io.Reader) (models.Quote, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return models.Quote{}, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	scripts := doc.Find(`script[type="application/ld+json"]`).Text()

	priceText := firstValue(doc, priceSelectors)
	if priceText == "" {
		if m := jsonLDPrice.FindStringSubmatch(scripts); m != nil {
			priceText = m[1]
		}
	}
	if priceText == "" {
		return models.Quote{}, ErrPriceNotFound
	}

	price, err := parsePrice(priceText)
	if err != nil {
		return models.Quote{}, err
	}

	code := firstValue(doc, currencySelectors)
	if code == "" {
		if m := jsonLDCurrency.FindStringSubmatch(scripts); m != nil {
			code = m[1]
		}
	}

	quote := models.Quote{Price: price, CurrencyCode: strings.ToUpper(strings.TrimSpace(code))}
	e.log.DebugContext(ctx, "Parsed quote", "price", quote.Price.String(), "currency", quote.CurrencyCode)

	return quote, nil
}

// firstValue returns the first non-empty attribute or text of the first selector that matches.
func firstValue(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		for _, attr := range priceAttributes {
			if v, ok := node.Attr(attr); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

// parsePrice turns display text such as "₹ 1,299.00" or "1.299,90 €" into a decimal.
// When both separators are present the right-most one is the decimal separator; a lone
// comma is a decimal separator only when followed by exactly two digits.
func parsePrice(text string) (decimal.Decimal, error) {
	clean := priceChars.ReplaceAllString(text, "")
	clean = strings.Trim(clean, ".,")

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0 && len(clean)-lastComma-1 == 2 && strings.Count(clean, ",") == 1:
		clean = strings.Replace(clean, ",", ".", 1)
	case lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	price, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price %q: %w", text, err)
	}
	return price, nil
}
