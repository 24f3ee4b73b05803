package activity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	xhttp "github.com/psm5556/Crisis-Alert/pkg/http"
	"github.com/psm5556/Crisis-Alert/pkg/util"
)

// DefaultSelectors are tried when no script array is found.
var DefaultSelectors = []string{
	".pmi-value",
	"[data-pmi]",
	"td.pmi",
	".report-headline strong",
	"h2 strong",
}

var (
	arrayRe  = regexp.MustCompile(`\[\s*-?\d+(?:\.\d+)?(?:\s*,\s*-?\d+(?:\.\d+)?)+\s*\]`)
	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// ScrapeStrategy reads the latest index value from a public HTML page and
// splices it onto a trend template.
type ScrapeStrategy struct {
	client    *xhttp.Client
	url       string
	selectors []string
	template  []float64
	min, max  float64
}

// NewScrapeStrategy accepts only readings in [30,80].
func NewScrapeStrategy(client *xhttp.Client, url string, selectors []string, template []float64) *ScrapeStrategy {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	if len(template) == 0 {
		template = DefaultTrendTemplate
	}
	return &ScrapeStrategy{
		client:    client,
		url:       url,
		selectors: selectors,
		template:  template,
		min:       30,
		max:       80,
	}
}

func (s *ScrapeStrategy) Name() string { return models.StrategyScrape }

func (s *ScrapeStrategy) Attempt(ctx context.Context, grid []time.Time) (Result, error) {
	if len(grid) == 0 {
		return Result{}, errors.New("empty grid")
	}
	if s.url == "" {
		return Result{}, errors.New("scrape url not configured")
	}

	var body []byte
	if err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     s.url,
		Headers: map[string]string{"Accept": "text/html"},
	}, &body); err != nil {
		return Result{}, fmt.Errorf("get page: %w", err)
	}

	reading, err := s.Extract(body)
	if err != nil {
		return Result{}, err
	}

	out := tile("activity-scrape", s.template, grid)
	out.Points[len(out.Points)-1].Value = reading
	return Result{Series: out}, nil
}

// Extract finds the latest reading in an HTML document: first the trailing
// entry of an array literal inside a script, then the configured selectors.
func (s *ScrapeStrategy) Extract(html []byte) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("parse html: %w", err)
	}

	var rejected []string
	reading, found := 0.0, false

	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, arr := range arrayRe.FindAllString(sel.Text(), -1) {
			nums := numberRe.FindAllString(arr, -1)
			v, ok := util.ParseFloat(nums[len(nums)-1])
			if !ok {
				continue
			}
			if s.plausible(v) {
				reading, found = v, true
				return false
			}
			rejected = append(rejected, fmt.Sprintf("script %.2f", v))
		}
		return true
	})
	if found {
		return reading, nil
	}

	for _, css := range s.selectors {
		doc.Find(css).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := sel.Text()
			if attr, ok := sel.Attr("data-pmi"); ok {
				text = attr
			}
			v, ok := util.FirstDecimal(text)
			if !ok {
				return true
			}
			if s.plausible(v) {
				reading, found = v, true
				return false
			}
			rejected = append(rejected, fmt.Sprintf("%s %.2f", css, v))
			return true
		})
		if found {
			return reading, nil
		}
	}

	if len(rejected) > 0 {
		return 0, fmt.Errorf("implausible readings outside [%g,%g]: %s", s.min, s.max, strings.Join(rejected, ", "))
	}
	return 0, errors.New("no reading found")
}

func (s *ScrapeStrategy) plausible(v float64) bool {
	return v >= s.min && v <= s.max
}
