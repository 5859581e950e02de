package review

import "math"

// Stats summarizes ratings: a count, the average rounded to one decimal and a
// count per star value.
type Stats struct {
	TotalReviews     int64   `json:"totalReviews"`
	AverageRating    float64 `json:"averageRating"`
	FiveStarReviews  int64   `json:"fiveStarReviews"`
	FourStarReviews  int64   `json:"fourStarReviews"`
	ThreeStarReviews int64   `json:"threeStarReviews"`
	TwoStarReviews   int64   `json:"twoStarReviews"`
	OneStarReviews   int64   `json:"oneStarReviews"`
}

// RoundTenth rounds half away from zero to one decimal place. Both the store
// aggregate and ComputeStats go through it so they always agree.
func RoundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// ComputeStats derives Stats from a list of reviews already in memory.
func ComputeStats(reviews []Review) Stats {
	var (
		s   Stats
		sum int64
	)
	for _, r := range reviews {
		s.TotalReviews++
		sum += int64(r.Rating)
		s.countStar(r.Rating, 1)
	}
	s.AverageRating = average(sum, s.TotalReviews)
	return s
}

func (s *Stats) countStar(rating int, n int64) {
	switch rating {
	case 5:
		s.FiveStarReviews += n
	case 4:
		s.FourStarReviews += n
	case 3:
		s.ThreeStarReviews += n
	case 2:
		s.TwoStarReviews += n
	case 1:
		s.OneStarReviews += n
	}
}

func average(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return RoundTenth(float64(sum) / float64(count))
}
