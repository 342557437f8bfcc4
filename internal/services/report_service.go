package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/surveypulse/surveypulse/internal/utils"
)

// ReportStore exposes the reads the reporting workflow needs. Responses come
// back newest first; the summary's email order and same-rank distribution
// ties follow that order.
type ReportStore interface {
	GetSurvey(id string) (*Survey, error)
	ListResponsesBySurvey(surveyID string) ([]*Response, error)
}

// ReportService derives dashboard statistics from a survey's raw responses.
// All computations are pure, deterministic, and degrade to zero values on
// empty or malformed input; they never surface user-facing errors.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Distribution is the chart-ready breakdown of response groups. The slices
// are parallel and ordered by rating value descending; labels are
// pre-formatted with emoji, answer text, count, and percentage so the chart
// renderer never recomputes them.
type Distribution struct {
	Labels       []string `json:"labels"`
	Values       []int    `json:"values"`
	Colors       []string `json:"colors"`
	BorderColors []string `json:"borderColors"`
}

// ReportSummary is the full reporting view model for one survey.
type ReportSummary struct {
	Survey         *Survey      `json:"survey"`
	TotalResponses int          `json:"totalResponses"`
	RatingCounts   map[int]int  `json:"ratingCounts"`
	AverageRating  float64      `json:"averageRating"`
	TopRating      int          `json:"topRating"`
	ResponseEmails []string     `json:"responseEmails"`
	Responses      []*Response  `json:"responses"`
	Distribution   Distribution `json:"distribution"`
}

// Summary loads the survey and its responses and computes every derived
// statistic in one pass over the stored data.
func (s *ReportService) Summary(surveyID, locale string) (*ReportSummary, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	responses, err := s.store.ListResponsesBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	counts := RatingHistogram(responses)
	return &ReportSummary{
		Survey:         sv,
		TotalResponses: len(responses),
		RatingCounts:   counts,
		AverageRating:  AverageRating(responses),
		TopRating:      TopRating(counts),
		ResponseEmails: UniqueRespondents(responses),
		Responses:      responses,
		Distribution:   RankedDistribution(responses, locale),
	}, nil
}

// RatingHistogram counts responses per rating value. All five buckets are
// always present; a response only increments its bucket when the rating is
// inside 1..5, so corrupt or legacy rows never miscount a bucket.
func RatingHistogram(responses []*Response) map[int]int {
	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range responses {
		if r.Rating >= 1 && r.Rating <= 5 {
			counts[r.Rating]++
		}
	}
	return counts
}

// AverageRating is the arithmetic mean over every response, including
// out-of-range ratings; 0 for an empty set.
func AverageRating(responses []*Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	sum := 0
	for _, r := range responses {
		sum += r.Rating
	}
	return float64(sum) / float64(len(responses))
}

// UniqueRespondents collapses duplicate respondent emails case-sensitively,
// preserving first-appearance order. No normalization is applied.
func UniqueRespondents(responses []*Response) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range responses {
		if _, ok := seen[r.Email]; ok {
			continue
		}
		seen[r.Email] = struct{}{}
		out = append(out, r.Email)
	}
	return out
}

// TopRating returns the bucket with the highest count among the five standard
// buckets. Ties resolve to the lowest rating value; 0 when every bucket is
// empty.
func TopRating(counts map[int]int) int {
	best, bestCount := 0, 0
	for r := 1; r <= 5; r++ {
		if counts[r] > bestCount {
			best, bestCount = r, counts[r]
		}
	}
	return best
}

// RatingAnswer formats a rating as the grouping string shown on the
// dashboard, "<rating> - <localized label>".
func RatingAnswer(locale string, rating int) string {
	key := "rating.unknown"
	if rating >= 1 && rating <= 5 {
		key = "rating." + strconv.Itoa(rating)
	}
	return strconv.Itoa(rating) + " - " + utils.T(locale, key)
}

// RankedDistribution groups responses by their formatted answer string and
// orders the groups by rating value descending (5 first). Unrecognized
// answers sort last; ties keep first-encounter order.
func RankedDistribution(responses []*Response, locale string) Distribution {
	counts := map[string]int{}
	order := []string{}
	for _, r := range responses {
		answer := RatingAnswer(locale, r.Rating)
		if _, ok := counts[answer]; !ok {
			order = append(order, answer)
		}
		counts[answer]++
	}

	total := len(responses)
	sort.SliceStable(order, func(i, j int) bool {
		return ratingFromAnswer(order[i]) > ratingFromAnswer(order[j])
	})

	dist := Distribution{
		Labels:       make([]string, 0, len(order)),
		Values:       make([]int, 0, len(order)),
		Colors:       make([]string, 0, len(order)),
		BorderColors: make([]string, 0, len(order)),
	}
	for _, answer := range order {
		count := counts[answer]
		pct := int(math.Round(float64(count) / float64(total) * 100))
		fill, border := ratingColors(ratingFromAnswer(answer))
		dist.Labels = append(dist.Labels, fmt.Sprintf("%s %s: %d (%%%d)", ratingEmoji(ratingFromAnswer(answer)), answer, count, pct))
		dist.Values = append(dist.Values, count)
		dist.Colors = append(dist.Colors, fill)
		dist.BorderColors = append(dist.BorderColors, border)
	}
	return dist
}

// ratingFromAnswer recovers the numeric rating from a formatted answer
// string by its leading digit; anything unrecognized ranks below 1.
func ratingFromAnswer(answer string) int {
	for r := 5; r >= 1; r-- {
		if strings.HasPrefix(answer, strconv.Itoa(r)) {
			return r
		}
	}
	return 0
}

func ratingEmoji(rating int) string {
	switch rating {
	case 5:
		return "😄"
	case 4:
		return "🙂"
	case 3:
		return "😐"
	case 2:
		return "☹️"
	case 1:
		return "😠"
	default:
		return "📊"
	}
}

func ratingColors(rating int) (fill, border string) {
	switch rating {
	case 5:
		return "rgba(0, 123, 255, 0.9)", "rgb(0, 123, 255)"
	case 4:
		return "rgba(40, 167, 69, 0.9)", "rgb(40, 167, 69)"
	case 3:
		return "rgba(255, 193, 7, 0.9)", "rgb(255, 193, 7)"
	case 2:
		return "rgba(255, 128, 0, 0.9)", "rgb(255, 128, 0)"
	case 1:
		return "rgba(220, 53, 69, 0.9)", "rgb(220, 53, 69)"
	default:
		return "rgba(108, 117, 125, 0.9)", "rgb(108, 117, 125)"
	}
}
