package repository

import (
	"sort"

	"github.com/tempizhere/linktrack/internal/models"
)

// Aggregate считает статистику по уже отобранным переходам.
// При равном числе переходов значения сохраняют порядок первого появления.
func Aggregate(clicks []models.ClickRecord) *models.ClickStats {
	stats := &models.ClickStats{
		TotalClicks: int64(len(clicks)),
	}

	visitors := make(map[string]struct{})
	countries := newCounter()
	referrers := newCounter()
	browsers := newCounter()
	devices := newCounter()
	dates := make(map[string]int64)

	for _, click := range clicks {
		if click.IPHash != nil {
			visitors[*click.IPHash] = struct{}{}
		}
		countries.add(click.Country)
		if click.ReferrerDomain != nil {
			referrers.add(click.ReferrerDomain)
		}
		browsers.add(click.Browser)
		device := string(click.Device)
		devices.add(&device)
		dates[click.ClickedAt.UTC().Format(models.DateLayout)]++
	}

	stats.UniqueVisitors = int64(len(visitors))
	stats.TopCountries = models.MapBuckets(countries.top(TopLimit), models.ByCountry)
	stats.TopReferrers = models.MapBuckets(referrers.top(TopLimit), models.ByReferrer)
	stats.TopBrowsers = models.MapBuckets(browsers.top(TopLimit), models.ByBrowser)
	stats.TopDevices = models.MapBuckets(devices.top(TopLimit), models.ByDevice)

	stats.ClicksByDate = make([]models.DateClicks, 0, len(dates))
	for date, n := range dates {
		stats.ClicksByDate = append(stats.ClicksByDate, models.DateClicks{Date: date, Clicks: n})
	}
	sort.Slice(stats.ClicksByDate, func(i, j int) bool {
		return stats.ClicksByDate[i].Date < stats.ClicksByDate[j].Date
	})
	if len(stats.ClicksByDate) > DateLimit {
		stats.ClicksByDate = stats.ClicksByDate[:DateLimit]
	}

	return stats
}

// counter группирует значения, NULL считается отдельной группой
type counter struct {
	index   map[string]int
	nullIdx int
	buckets []models.Bucket
}

func newCounter() *counter {
	return &counter{index: make(map[string]int), nullIdx: -1}
}

func (c *counter) add(value *string) {
	if value == nil {
		if c.nullIdx < 0 {
			c.nullIdx = len(c.buckets)
			c.buckets = append(c.buckets, models.Bucket{})
		}
		c.buckets[c.nullIdx].Clicks++
		return
	}
	i, ok := c.index[*value]
	if !ok {
		v := *value
		i = len(c.buckets)
		c.index[v] = i
		c.buckets = append(c.buckets, models.Bucket{Value: &v})
	}
	c.buckets[i].Clicks++
}

func (c *counter) top(n int) []models.Bucket {
	out := make([]models.Bucket, len(c.buckets))
	copy(out, c.buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Clicks > out[j].Clicks
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
