package main

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"photoframe/weather"
)

const weatherRetryDelay = 30 * time.Second

type weatherSource interface {
	Current(ctx context.Context) (weather.Report, error)
}

// weatherState hands the latest report from the refresher to the slideshow.
type weatherState struct {
	mu     sync.RWMutex
	report weather.Report
}

func (s *weatherState) set(r weather.Report) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}

func (s *weatherState) get() weather.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// refreshWeather fetches a report every interval until ctx is done. A failed
// fetch keeps the previous report and tries again after retry.
func refreshWeather(ctx context.Context, src weatherSource, state *weatherState, interval, retry time.Duration) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		logrus.Info("fetching weather")
		fetchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		report, err := src.Current(fetchCtx)
		cancel()

		next := interval
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logrus.WithError(err).Warnf("failed to get weather, retrying in %s", retry)
			next = retry
		} else {
			state.set(report)
			logrus.WithFields(logrus.Fields{
				"code":        report.Code,
				"temperature": report.Temperature,
			}).Info("weather updated")
		}
		timer.Reset(next)
	}
}
